// Package style derives a writing-style profile from anonymized email
// bodies: greeting and sign-off habits, tone, sentence structure, common
// phrases and how replies differ by email category.
package style

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/bimmerbailey/penmark/internal/config"
	"github.com/bimmerbailey/penmark/internal/corpus"
	"github.com/bimmerbailey/penmark/internal/logging"
	"github.com/sirupsen/logrus"
)

// ErrNoEmails is returned when there is nothing to analyze.
var ErrNoEmails = errors.New("no emails to analyze")

// LowSampleThreshold is the corpus size below which the profile is
// considered unreliable.
const LowSampleThreshold = 10

// Profile is the complete style analysis of a corpus.
type Profile struct {
	GeneratedAt      time.Time                  `json:"generated_at" yaml:"generated_at"`
	TotalAnalyzed    int                        `json:"total_emails_analyzed" yaml:"total_emails_analyzed"`
	Language         string                     `json:"language,omitempty" yaml:"language,omitempty"`
	Greetings        Usage                      `json:"greeting_patterns" yaml:"greeting_patterns"`
	SignOffs         Usage                      `json:"sign_offs" yaml:"sign_offs"`
	Tone             Tone                       `json:"tone_analysis" yaml:"tone_analysis"`
	Characteristics  Characteristics            `json:"writing_characteristics" yaml:"writing_characteristics"`
	CommonPhrases    []string                   `json:"common_phrases" yaml:"common_phrases"`
	ResponsePatterns map[string]ResponsePattern `json:"response_patterns" yaml:"response_patterns"`
}

// Usage describes how often each variant of a recurring element is used.
type Usage struct {
	MostCommon       string             `json:"most_common" yaml:"most_common"`
	Variations       []string           `json:"variations" yaml:"variations"`
	UsagePercentages map[string]float64 `json:"usage_percentages" yaml:"usage_percentages"`
}

// Tone holds 0-10 scores and the overall tone label.
type Tone struct {
	OverallTone          string  `json:"overall_tone" yaml:"overall_tone"`
	FormalityScore       float64 `json:"formality_score" yaml:"formality_score"`
	WarmthScore          float64 `json:"warmth_score" yaml:"warmth_score"`
	ProfessionalismScore float64 `json:"professionalism_score" yaml:"professionalism_score"`
}

// Characteristics holds structural averages over the corpus.
type Characteristics struct {
	AvgEmailLength    int     `json:"avg_email_length" yaml:"avg_email_length"`
	AvgSentenceLength int     `json:"avg_sentence_length" yaml:"avg_sentence_length"`
	AvgParagraphCount float64 `json:"avg_paragraph_count" yaml:"avg_paragraph_count"`
}

// ResponsePattern summarizes the emails of one category.
type ResponsePattern struct {
	Count     int    `json:"count" yaml:"count"`
	AvgLength int    `json:"avg_length" yaml:"avg_length"`
	Sample    string `json:"sample" yaml:"sample"`
}

// Analyzer builds style profiles.
type Analyzer struct {
	firstName string
	lastName  string
	logger    logrus.FieldLogger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAuthor sets the author whose sign-offs are recognized.
func WithAuthor(firstName, lastName string) Option {
	return func(a *Analyzer) {
		a.firstName = firstName
		a.lastName = lastName
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates a new Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{logger: logging.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the style profile of emails.
func (a *Analyzer) Analyze(emails []corpus.CleanedRecord) (*Profile, error) {
	if len(emails) == 0 {
		return nil, ErrNoEmails
	}
	if len(emails) < LowSampleThreshold {
		a.logger.WithField("emails", len(emails)).
			Warn("fewer than 10 emails, the profile may not be representative")
	}

	a.logger.Debug("analyzing greetings and sign-offs")
	greetings := AnalyzeGreetings(emails)
	signOffs := a.AnalyzeSignOffs(emails)

	a.logger.Debug("analyzing tone and structure")
	tone := AnalyzeTone(emails)
	characteristics := AnalyzeCharacteristics(emails)

	a.logger.Debug("extracting common phrases")
	phrases := CommonPhrases(emails, DefaultPhraseOptions())

	a.logger.Debug("categorizing emails")
	groups := Categorize(emails)

	return &Profile{
		GeneratedAt:      time.Now(),
		TotalAnalyzed:    len(emails),
		Language:         DetectLanguage(emails),
		Greetings:        greetings,
		SignOffs:         signOffs,
		Tone:             tone,
		Characteristics:  characteristics,
		CommonPhrases:    phrases,
		ResponsePatterns: ResponsePatterns(groups),
	}, nil
}

// FilterOptions defines the criteria for selecting emails by sent date.
type FilterOptions struct {
	Since   time.Time
	Until   time.Time
	Layouts []string
}

// Filter returns the emails sent within the window. Emails whose sent date
// cannot be parsed are kept.
func Filter(emails []corpus.CleanedRecord, opts FilterOptions) []corpus.CleanedRecord {
	if opts.Since.IsZero() && opts.Until.IsZero() {
		return emails
	}

	var result []corpus.CleanedRecord
	for _, e := range emails {
		ts, err := config.ParseTimestamp(e.SentDate, opts.Layouts)
		if err == nil {
			if !opts.Since.IsZero() && ts.Before(opts.Since) {
				continue
			}
			if !opts.Until.IsZero() && ts.After(opts.Until) {
				continue
			}
		}
		result = append(result, e)
	}
	return result
}

// tally counts labels and remembers the order they were first declared in,
// which breaks ties between equal counts.
type tally struct {
	order  map[string]int
	counts map[string]int
}

func newTally(labels []string) *tally {
	t := &tally{order: make(map[string]int, len(labels)), counts: make(map[string]int)}
	for i, l := range labels {
		if _, ok := t.order[l]; !ok {
			t.order[l] = i
		}
	}
	return t
}

func (t *tally) add(label string) {
	t.counts[label]++
}

// usage converts the tally to a Usage, falling back to def when nothing
// was counted.
func (t *tally) usage(def string) Usage {
	u := Usage{
		MostCommon:       def,
		Variations:       []string{},
		UsagePercentages: map[string]float64{},
	}

	total := 0
	for label, n := range t.counts {
		total += n
		u.Variations = append(u.Variations, label)
	}
	if total == 0 {
		return u
	}

	sort.Slice(u.Variations, func(i, j int) bool {
		a, b := u.Variations[i], u.Variations[j]
		if t.counts[a] != t.counts[b] {
			return t.counts[a] > t.counts[b]
		}
		return t.order[a] < t.order[b]
	})

	for label, n := range t.counts {
		u.UsagePercentages[label] = round(float64(n)*100/float64(total), 2)
	}
	u.MostCommon = u.Variations[0]
	return u
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// head returns the first n runes of s.
func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
