package output

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/bimmerbailey/penmark/internal/corpus"
)

// CategoryCount is the number of redactions of one category.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// Report is the processing summary of a cleaned document.
type Report struct {
	Path               string          `json:"path,omitempty" yaml:"path,omitempty"`
	RunID              string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	ProcessedAt        time.Time       `json:"processed_at" yaml:"processed_at"`
	TotalProcessed     int             `json:"total_processed" yaml:"total_processed"`
	TotalEmails        int             `json:"total_emails" yaml:"total_emails"`
	QuotedTextRemoved  int             `json:"quoted_text_removed" yaml:"quoted_text_removed"`
	EmptyAfterCleaning int             `json:"empty_after_cleaning" yaml:"empty_after_cleaning"`
	TotalRedacted      int             `json:"total_redacted" yaml:"total_redacted"`
	Redactions         []CategoryCount `json:"redactions" yaml:"redactions"`
}

// NewReport summarizes doc. Categories listed in order come first, in that
// order; any others follow alphabetically.
func NewReport(path string, doc *corpus.OutputDocument, order []string) Report {
	stats := doc.ProcessingStats
	r := Report{
		Path:               path,
		RunID:              doc.RunID,
		ProcessedAt:        doc.ProcessedAt,
		TotalProcessed:     stats.TotalProcessed,
		TotalEmails:        doc.TotalEmails,
		QuotedTextRemoved:  stats.QuotedTextRemoved,
		EmptyAfterCleaning: stats.EmptyAfterCleaning,
		TotalRedacted:      stats.TotalRedacted(),
		Redactions:         []CategoryCount{},
	}

	seen := make(map[string]bool, len(order))
	for _, c := range order {
		seen[c] = true
		r.Redactions = append(r.Redactions, CategoryCount{Category: c, Count: stats.Categories[c]})
	}

	var extra []string
	for c := range stats.Categories {
		if !seen[c] {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		r.Redactions = append(r.Redactions, CategoryCount{Category: c, Count: stats.Categories[c]})
	}

	return r
}

// WriteReport outputs the report in the configured format.
func (wr *Writer) WriteReport(r Report) error {
	if ok, err := wr.writeStructured(r); ok {
		return err
	}
	if wr.format == FormatTable {
		return wr.writeReportTable(r)
	}
	return wr.writeReportText(r)
}

func (wr *Writer) writeReportText(r Report) error {
	if r.Path != "" {
		fmt.Fprintf(wr.w, "Processing statistics for %s\n", r.Path)
	} else {
		fmt.Fprintln(wr.w, "Processing statistics")
	}
	if r.RunID != "" {
		fmt.Fprintf(wr.w, "  Run:                  %s\n", r.RunID)
	}
	if !r.ProcessedAt.IsZero() {
		fmt.Fprintf(wr.w, "  Processed at:         %s\n", r.ProcessedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(wr.w, "  Emails processed:     %d\n", r.TotalProcessed)
	fmt.Fprintf(wr.w, "  Emails kept:          %d\n", r.TotalEmails)
	fmt.Fprintf(wr.w, "  Quoted text removed:  %d\n", r.QuotedTextRemoved)
	fmt.Fprintf(wr.w, "  Empty after cleaning: %d\n", r.EmptyAfterCleaning)

	fmt.Fprintf(wr.w, "\nRedactions (%d total):\n", r.TotalRedacted)
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	for _, c := range r.Redactions {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Category, wr.count(c.Count))
	}
	return tw.Flush()
}

func (wr *Writer) writeReportTable(r Report) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT")
	fmt.Fprintln(tw, "--------\t-----")

	for _, c := range r.Redactions {
		fmt.Fprintf(tw, "%s\t%s\n", c.Category, wr.count(c.Count))
	}

	fmt.Fprintln(tw, "--------\t-----")
	fmt.Fprintf(tw, "TOTAL\t%d\n", r.TotalRedacted)
	fmt.Fprintf(tw, "quoted_text_removed\t%d\n", r.QuotedTextRemoved)
	fmt.Fprintf(tw, "empty_after_cleaning\t%d\n", r.EmptyAfterCleaning)
	fmt.Fprintf(tw, "emails_kept\t%d/%d\n", r.TotalEmails, r.TotalProcessed)

	return tw.Flush()
}
