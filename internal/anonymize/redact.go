package anonymize

// Counts holds per-category match counts for a single redaction.
type Counts map[Category]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Redactor replaces sensitive data with fixed placeholder tokens.
//
// Patterns are applied one after another, so later patterns see the output
// of earlier ones:
//
//	"Call 555-123-4567 about $1,200.00" → "Call [phone removed] about $[amount]"
type Redactor struct {
	patterns []RedactionPattern
}

// NewRedactor creates a Redactor for the named categories. An empty or
// entirely unknown list enables every category.
func NewRedactor(categories []string) *Redactor {
	patterns := GetPatterns(categories)
	if len(patterns) == 0 {
		patterns = Patterns()
	}
	return &Redactor{patterns: patterns}
}

// Categories returns the enabled categories in application order.
func (r *Redactor) Categories() []Category {
	out := make([]Category, len(r.patterns))
	for i, p := range r.patterns {
		out[i] = p.Category
	}
	return out
}

// Redact replaces every match of every enabled pattern and returns the
// redacted text along with how many matches each category had.
func (r *Redactor) Redact(text string) (string, Counts) {
	counts := make(Counts, len(r.patterns))
	result := text

	for _, pattern := range r.patterns {
		matches := pattern.Regex.FindAllStringIndex(result, -1)
		counts[pattern.Category] += len(matches)
		if len(matches) > 0 {
			result = pattern.Regex.ReplaceAllLiteralString(result, pattern.Replacement)
		}
	}

	return result, counts
}

// IsSensitive reports whether text still contains anything an enabled
// pattern would redact.
func (r *Redactor) IsSensitive(text string) bool {
	for _, pattern := range r.patterns {
		if pattern.Regex.MatchString(text) {
			return true
		}
	}
	return false
}
