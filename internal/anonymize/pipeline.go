package anonymize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bimmerbailey/penmark/internal/corpus"
	"github.com/bimmerbailey/penmark/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"
)

// DefaultMinContentLength is the shortest cleaned body, in characters, that
// is kept.
const DefaultMinContentLength = 20

var blankLineRun = regexp.MustCompile(`\n\s*\n\s*\n+`)

// Pipeline runs raw records through every anonymization stage and keeps
// the run-wide statistics.
//
// Usage:
//
//	pipeline := anonymize.New(
//	    anonymize.WithAuthor("Joe", "Newman"),
//	    anonymize.WithWorkers(4),
//	)
//
//	result := pipeline.Run(doc.Emails)
//	fmt.Printf("kept %d of %d\n", len(result.Emails), result.Stats.TotalProcessed)
type Pipeline struct {
	redactor         *Redactor
	names            *NameAnonymizer
	minContentLength int
	workers          int
	logger           logrus.FieldLogger

	stats corpus.Statistics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithAuthor sets the author whose own name is never redacted.
func WithAuthor(firstName, lastName string) Option {
	return func(p *Pipeline) {
		p.names = NewNameAnonymizer(firstName, lastName)
	}
}

// WithCategories restricts entity redaction to the named categories.
// Default is every category.
func WithCategories(categories []string) Option {
	return func(p *Pipeline) {
		p.redactor = NewRedactor(categories)
	}
}

// WithMinContentLength sets the shortest body that is kept.
// Default is 20 characters.
func WithMinContentLength(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.minContentLength = n
		}
	}
}

// WithWorkers sets how many records are cleaned concurrently.
// Default is 1, which processes records strictly in sequence.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the logger used for per-record diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pipeline with the specified options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		redactor:         NewRedactor(nil),
		names:            NewNameAnonymizer("", ""),
		minContentLength: DefaultMinContentLength,
		workers:          1,
		logger:           logging.Discard(),
		stats:            corpus.NewStatistics(CategoryNames()...),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result is the outcome of one Run.
type Result struct {
	Emails  []corpus.CleanedRecord
	Dropped []corpus.RecordID
	Stats   corpus.Statistics
}

// recordResult is the outcome of cleaning a single record. Its stats hold
// only that record's contribution.
type recordResult struct {
	record   corpus.CleanedRecord
	accepted bool
	stats    corpus.Statistics
}

// Process cleans a single record and folds its counts into the pipeline's
// statistics. The boolean is false when the record was dropped for being
// too short.
func (p *Pipeline) Process(raw corpus.RawRecord) (corpus.CleanedRecord, bool) {
	res := p.clean(raw)
	p.stats.Add(res.stats)
	return res.record, res.accepted
}

// Run cleans every record. Output order matches input order and the
// statistics are the same whether or not records were cleaned in parallel.
// The run's counts are also folded into the pipeline's statistics.
func (p *Pipeline) Run(records []corpus.RawRecord) Result {
	p.logger.WithFields(logrus.Fields{
		"records":    len(records),
		"categories": p.redactor.Categories(),
		"workers":    p.workers,
	}).Debug("running pipeline")

	var results []recordResult
	if p.workers > 1 && len(records) > 1 {
		mapper := iter.Mapper[corpus.RawRecord, recordResult]{MaxGoroutines: p.workers}
		results = mapper.Map(records, func(raw *corpus.RawRecord) recordResult {
			return p.clean(*raw)
		})
	} else {
		results = make([]recordResult, len(records))
		for i, raw := range records {
			results[i] = p.clean(raw)
		}
	}

	out := Result{
		Emails: make([]corpus.CleanedRecord, 0, len(records)),
		Stats:  corpus.NewStatistics(CategoryNames()...),
	}
	for i, res := range results {
		out.Stats.Add(res.stats)
		if res.accepted {
			out.Emails = append(out.Emails, res.record)
		} else {
			out.Dropped = append(out.Dropped, records[i].ID)
		}
	}

	p.stats.Add(out.Stats)
	return out
}

// Stats returns a copy of the statistics accumulated so far.
func (p *Pipeline) Stats() corpus.Statistics {
	cp := corpus.NewStatistics(CategoryNames()...)
	cp.Add(p.stats)
	return cp
}

// Clean runs a body through every stage and returns the cleaned text with
// the redaction counts. It applies no length filter.
func (p *Pipeline) Clean(body string, isMarkup bool) (string, Counts, bool) {
	body, cut := CutQuotedSource(body, isMarkup)
	text := Normalize(body, isMarkup)

	text, stripped := StripQuotedContent(text)
	quoted := cut || stripped

	names := ExtractAddresseeNames(text)
	text = p.names.RedactNames(text, names)

	text, counts := p.redactor.Redact(text)

	text = blankLineRun.ReplaceAllLiteralString(text, "\n\n")
	return strings.TrimSpace(text), counts, quoted
}

func (p *Pipeline) clean(raw corpus.RawRecord) recordResult {
	stats := corpus.NewStatistics(CategoryNames()...)
	stats.TotalProcessed = 1

	body, counts, quoted := p.Clean(raw.Body, raw.BodyType.IsMarkup())
	if quoted {
		stats.QuotedTextRemoved = 1
	}
	for category, n := range counts {
		stats.Categories[string(category)] += n
	}

	log := p.logger.WithField("id", raw.ID.String())

	if body == "" || utf8.RuneCountInString(body) < p.minContentLength {
		stats.EmptyAfterCleaning = 1
		log.WithField("length", utf8.RuneCountInString(body)).Debug("record dropped after cleaning")
		return recordResult{stats: stats}
	}

	log.WithFields(logrus.Fields{
		"redacted": counts.Total(),
		"quoted":   quoted,
	}).Debug("record cleaned")

	return recordResult{
		record: corpus.CleanedRecord{
			ID:                raw.ID,
			Subject:           raw.Subject,
			SentDate:          raw.SentDate,
			Body:              body,
			WordCount:         corpus.CountWords(body),
			OriginalWordCount: raw.WordCount,
		},
		accepted: true,
		stats:    stats,
	}
}
