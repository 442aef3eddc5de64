package anonymize

import (
	"regexp"
)

// Category names a class of sensitive data.
type Category string

const (
	CategoryEmail         Category = "contact-email"
	CategoryPhone         Category = "phone"
	CategoryNationalID    Category = "national-id"
	CategoryAccount       Category = "financial-account"
	CategoryCurrency      Category = "currency-amount"
	CategoryPaymentCard   Category = "payment-card"
	CategoryPostalAddress Category = "postal-address"
)

// RedactionPattern pairs a category with its matcher and replacement.
type RedactionPattern struct {
	Category    Category
	Regex       *regexp.Regexp
	Replacement string
	Description string
}

// Patterns are applied in table order and every pattern sees the output of
// the ones before it. No replacement contains text that any pattern matches.
var patternTable = []RedactionPattern{
	{
		Category:    CategoryEmail,
		Regex:       regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`),
		Replacement: "[email removed]",
		Description: "Email addresses",
	},
	{
		Category:    CategoryPhone,
		Regex:       regexp.MustCompile(`(?i)\b(?:\+?1[-.]?)?\(?\d{3}\)?[-.]?\d{3}[-.]?\d{4}\b`),
		Replacement: "[phone removed]",
		Description: "North American phone numbers",
	},
	{
		Category:    CategoryNationalID,
		Regex:       regexp.MustCompile(`(?i)\b\d{3}-\d{2}-\d{4}\b`),
		Replacement: "[SSN removed]",
		Description: "Social security numbers",
	},
	{
		Category:    CategoryAccount,
		Regex:       regexp.MustCompile(`(?i)\baccount\s*#?\s*:?\s*\d{4,}\b`),
		Replacement: "[account removed]",
		Description: "Account numbers",
	},
	{
		Category:    CategoryCurrency,
		Regex:       regexp.MustCompile(`(?i)\$\s*\d+(?:,\d{3})*(?:\.\d{2})?`),
		Replacement: "$[amount]",
		Description: "Dollar amounts",
	},
	{
		Category:    CategoryPaymentCard,
		Regex:       regexp.MustCompile(`(?i)\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
		Replacement: "[card number removed]",
		Description: "Payment card numbers",
	},
	{
		Category:    CategoryPostalAddress,
		Regex:       regexp.MustCompile(`(?i)\b\d+\s+[\w\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way)\b`),
		Replacement: "[address removed]",
		Description: "Street addresses",
	},
}

// Patterns returns a copy of the full redaction table in application order.
func Patterns() []RedactionPattern {
	out := make([]RedactionPattern, len(patternTable))
	copy(out, patternTable)
	return out
}

// Categories returns every category name in application order.
func Categories() []Category {
	out := make([]Category, len(patternTable))
	for i, p := range patternTable {
		out[i] = p.Category
	}
	return out
}

// CategoryNames returns every category name as a string, in application order.
func CategoryNames() []string {
	out := make([]string, len(patternTable))
	for i, p := range patternTable {
		out[i] = string(p.Category)
	}
	return out
}

// GetPatterns returns the patterns for the given categories. The result
// keeps table order whatever order names are given in; unknown names are
// ignored.
func GetPatterns(names []string) []RedactionPattern {
	wanted := make(map[Category]bool, len(names))
	for _, n := range names {
		wanted[Category(n)] = true
	}

	patterns := make([]RedactionPattern, 0, len(names))
	for _, p := range patternTable {
		if wanted[p.Category] {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
