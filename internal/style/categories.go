package style

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/bimmerbailey/penmark/internal/corpus"
)

// Email categories, in the order they are tested.
const (
	CategoryQuoteRequests      = "quote_requests"
	CategoryDeliveryScheduling = "delivery_scheduling"
	CategoryOrders             = "orders"
	CategoryQuestions          = "questions"
	CategoryGeneral            = "general"
)

const (
	categoryWindow = 200
	sampleLength   = 200

	// DefaultSamplesPerCategory is how many training samples are written
	// for each category.
	DefaultSamplesPerCategory = 5
)

type categoryRule struct {
	name     string
	keywords []string
}

var categoryRules = []categoryRule{
	{CategoryQuoteRequests, []string{"quote", "pricing", "price", "cost", "estimate"}},
	{CategoryDeliveryScheduling, []string{"delivery", "schedule", "ship", "pickup"}},
	{CategoryOrders, []string{"order", "purchase", "buy", "need"}},
	{CategoryQuestions, []string{"question", "wondering", "inquiry", "ask"}},
}

// Group is the emails assigned to one category.
type Group struct {
	Category string
	Emails   []corpus.CleanedRecord
}

// Classify returns the category of a single email. The first rule with a
// keyword in the subject or the start of the body wins.
func Classify(e corpus.CleanedRecord) string {
	subject := strings.ToLower(e.Subject)
	opening := strings.ToLower(head(e.Body, categoryWindow))

	for _, r := range categoryRules {
		for _, kw := range r.keywords {
			if strings.Contains(subject, kw) || strings.Contains(opening, kw) {
				return r.name
			}
		}
	}
	return CategoryGeneral
}

// Categorize groups emails by category. Groups are returned in rule order,
// general last, and empty groups are omitted.
func Categorize(emails []corpus.CleanedRecord) []Group {
	byName := make(map[string][]corpus.CleanedRecord)
	for _, e := range emails {
		c := Classify(e)
		byName[c] = append(byName[c], e)
	}

	var groups []Group
	for _, r := range categoryRules {
		if len(byName[r.name]) > 0 {
			groups = append(groups, Group{Category: r.name, Emails: byName[r.name]})
		}
	}
	if len(byName[CategoryGeneral]) > 0 {
		groups = append(groups, Group{Category: CategoryGeneral, Emails: byName[CategoryGeneral]})
	}
	return groups
}

// ResponsePatterns summarizes each group.
func ResponsePatterns(groups []Group) map[string]ResponsePattern {
	patterns := make(map[string]ResponsePattern, len(groups))
	for _, g := range groups {
		if len(g.Emails) == 0 {
			continue
		}

		total := 0
		for _, e := range g.Emails {
			total += e.WordCount
		}

		patterns[g.Category] = ResponsePattern{
			Count:     len(g.Emails),
			AvgLength: int(math.Round(float64(total) / float64(len(g.Emails)))),
			Sample:    head(g.Emails[0].Body, sampleLength) + "...",
		}
	}
	return patterns
}

// Title returns a category name for display, e.g. "Quote Requests".
func Title(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

const rule80 = "================================================================================"

// WriteTrainingSamples writes up to perCategory samples of each group as
// plain text, for use as few-shot examples.
func WriteTrainingSamples(w io.Writer, author string, groups []Group, perCategory int) error {
	if perCategory <= 0 {
		perCategory = DefaultSamplesPerCategory
	}

	title := "Writing Style - Training Samples"
	if author != "" {
		title = author + " " + title
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	fmt.Fprintf(&b, "# Generated: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s\n\n", rule80)

	for _, g := range groups {
		if len(g.Emails) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n%s\n", rule80)
		fmt.Fprintf(&b, "CATEGORY: %s\n", strings.ToUpper(strings.ReplaceAll(g.Category, "_", " ")))
		fmt.Fprintf(&b, "%s\n\n", rule80)

		for i, e := range g.Emails {
			if i == perCategory {
				break
			}
			fmt.Fprintf(&b, "--- Sample %d ---\n", i+1)
			fmt.Fprintf(&b, "Subject: %s\n", e.Subject)
			fmt.Fprintf(&b, "Length: %d words\n\n", e.WordCount)
			b.WriteString(e.Body)
			b.WriteString("\n\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
