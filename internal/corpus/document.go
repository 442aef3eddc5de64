package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrInputNotFound is returned when a document to be read does not exist.
var ErrInputNotFound = errors.New("input not found")

// emptyRange is written when the input carried no date range.
var emptyRange = json.RawMessage(`{}`)

// InputDocument is the extractor's output and the pipeline's input.
type InputDocument struct {
	Emails []RawRecord `json:"emails"`

	// DateRange is opaque to penmark and passed through as-is.
	DateRange json.RawMessage `json:"dateRange,omitempty"`
}

// DateRange is the range descriptor written by the ingest command.
type DateRange struct {
	Oldest string `json:"oldest"`
	Newest string `json:"newest"`
}

// Statistics accumulates pipeline counters over a run.
type Statistics struct {
	TotalProcessed     int            `json:"total_processed"`
	Categories         map[string]int `json:"anonymization_counts"`
	QuotedTextRemoved  int            `json:"quoted_text_removed"`
	EmptyAfterCleaning int            `json:"empty_after_cleaning"`
}

// NewStatistics returns Statistics with a zero count for every named category.
func NewStatistics(categories ...string) Statistics {
	s := Statistics{Categories: make(map[string]int, len(categories))}
	for _, c := range categories {
		s.Categories[c] = 0
	}
	return s
}

// Add folds other into s.
func (s *Statistics) Add(other Statistics) {
	if s.Categories == nil {
		s.Categories = make(map[string]int, len(other.Categories))
	}
	s.TotalProcessed += other.TotalProcessed
	s.QuotedTextRemoved += other.QuotedTextRemoved
	s.EmptyAfterCleaning += other.EmptyAfterCleaning
	for k, v := range other.Categories {
		s.Categories[k] += v
	}
}

// TotalRedacted returns the sum of all category counts.
func (s Statistics) TotalRedacted() int {
	total := 0
	for _, v := range s.Categories {
		total += v
	}
	return total
}

// OutputDocument is the pipeline's output and the style analyzer's input.
type OutputDocument struct {
	RunID           string          `json:"runId,omitempty"`
	ProcessedAt     time.Time       `json:"processedAt"`
	TotalEmails     int             `json:"totalEmails"`
	DateRange       json.RawMessage `json:"dateRange"`
	ProcessingStats Statistics      `json:"processingStats"`
	Emails          []CleanedRecord `json:"emails"`
}

// NewOutputDocument assembles an OutputDocument for the given run.
func NewOutputDocument(runID string, dateRange json.RawMessage, stats Statistics, emails []CleanedRecord) *OutputDocument {
	if len(dateRange) == 0 || string(dateRange) == "null" {
		dateRange = emptyRange
	}
	if emails == nil {
		emails = []CleanedRecord{}
	}
	return &OutputDocument{
		RunID:           runID,
		ProcessedAt:     time.Now(),
		TotalEmails:     len(emails),
		DateRange:       dateRange,
		ProcessingStats: stats,
		Emails:          emails,
	}
}

// LoadInput reads an InputDocument from path.
func LoadInput(path string) (*InputDocument, error) {
	var doc InputDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadOutput reads an OutputDocument from path.
func LoadOutput(path string) (*OutputDocument, error) {
	var doc OutputDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Encode writes v to w as indented JSON without HTML escaping.
func Encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteFile writes v to path as JSON. The document is written to a temporary
// file in the same directory and renamed into place, so readers never see a
// partial document.
func WriteFile(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Encode(tmp, v); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
