package style

import (
	"regexp"
	"strings"

	"github.com/bimmerbailey/penmark/internal/corpus"
)

const (
	greetingWindow = 100
	signOffWindow  = 150

	defaultGreeting = "Hi [Name],"
)

type rule struct {
	re    *regexp.Regexp
	label string
}

// Greeting rules are tried in order against the start of each body.
var greetingRules = []rule{
	{regexp.MustCompile(`(?i)^Hi\s+\[Customer\],?`), "Hi [Name],"},
	{regexp.MustCompile(`(?i)^Hello\s+\[Customer\],?`), "Hello [Name],"},
	{regexp.MustCompile(`(?i)^Hey\s+\[Customer\],?`), "Hey [Name],"},
	{regexp.MustCompile(`(?i)^Dear\s+\[Customer\],?`), "Dear [Name],"},
	{regexp.MustCompile(`(?i)^\[Customer\],?`), "[Name],"},
	{regexp.MustCompile(`(?i)^Good\s+(?:morning|afternoon|evening)\s+\[Customer\],?`), "Good [time] [Name],"},
}

var signOffWords = []string{"Thanks", "Best", "Best regards", "Regards", "Sincerely", "Cheers"}

func labels(rules []rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.label
	}
	return out
}

func match(rules []rule, text string) (string, bool) {
	for _, r := range rules {
		if r.re.MatchString(text) {
			return r.label, true
		}
	}
	return "", false
}

// AnalyzeGreetings reports which salutation opens each email.
func AnalyzeGreetings(emails []corpus.CleanedRecord) Usage {
	t := newTally(labels(greetingRules))
	for _, e := range emails {
		opening := strings.TrimSpace(head(e.Body, greetingWindow))
		if label, ok := match(greetingRules, opening); ok {
			t.add(label)
		}
	}
	return t.usage(defaultGreeting)
}

// signOffRules builds the sign-off rules for the author. Without an author
// name only the closing words are recognized.
func (a *Analyzer) signOffRules() []rule {
	first := strings.TrimSpace(a.firstName)
	full := strings.TrimSpace(first + " " + strings.TrimSpace(a.lastName))

	rules := make([]rule, 0, len(signOffWords)+1)
	if first == "" {
		for _, w := range signOffWords {
			rules = append(rules, rule{
				re:    regexp.MustCompile(`(?im)` + regexp.QuoteMeta(w) + `,\s*$`),
				label: w + ",",
			})
		}
		return rules
	}

	// Full name first so the longer alternative wins.
	names := `(?:` + regexp.QuoteMeta(full) + `|` + regexp.QuoteMeta(first) + `)`
	for _, w := range signOffWords {
		rules = append(rules, rule{
			re:    regexp.MustCompile(`(?im)` + regexp.QuoteMeta(w) + `,?\s*` + names),
			label: w + ",\n" + first,
		})
	}
	rules = append(rules, rule{
		re:    regexp.MustCompile(`(?im)(?:^|\n)` + regexp.QuoteMeta(first) + `(?:\s+` + regexp.QuoteMeta(strings.TrimSpace(a.lastName)) + `)?$`),
		label: first,
	})
	return rules
}

func (a *Analyzer) defaultSignOff() string {
	if first := strings.TrimSpace(a.firstName); first != "" {
		return "Thanks,\n" + first
	}
	return "Thanks,"
}

// AnalyzeSignOffs reports which closing ends each email.
func (a *Analyzer) AnalyzeSignOffs(emails []corpus.CleanedRecord) Usage {
	rules := a.signOffRules()
	t := newTally(labels(rules))
	for _, e := range emails {
		closing := strings.TrimSpace(tail(e.Body, signOffWindow))
		if label, ok := match(rules, closing); ok {
			t.add(label)
		}
	}
	return t.usage(a.defaultSignOff())
}
