// Package corpus defines the email records that flow through penmark and the
// flat documents they are read from and written to.
package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// BodyType describes how a raw body is encoded.
type BodyType int

const (
	BodyPlain BodyType = iota
	BodyHTML
)

// String returns the string representation of a BodyType.
func (b BodyType) String() string {
	switch b {
	case BodyHTML:
		return "html"
	default:
		return "plain"
	}
}

// IsMarkup reports whether the body must have its markup stripped.
func (b BodyType) IsMarkup() bool {
	return b == BodyHTML
}

// MarshalJSON implements json.Marshaler for BodyType.
func (b BodyType) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler for BodyType.
func (b *BodyType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = BodyPlain
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = ParseBodyType(s)
	return nil
}

// ParseBodyType converts a producer's content type to a BodyType.
// Anything that is not HTML is treated as plain text.
func ParseBodyType(s string) BodyType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "text/html":
		return BodyHTML
	default:
		return BodyPlain
	}
}

// RecordID identifies a record. Producers emit either JSON strings or JSON
// numbers; the original form is kept so ids round-trip unchanged.
type RecordID struct {
	value   string
	numeric bool
}

// NewRecordID returns a string-valued RecordID.
func NewRecordID(s string) RecordID {
	return RecordID{value: s}
}

// String returns the id as text.
func (id RecordID) String() string {
	return id.value
}

// IsZero reports whether the id is empty.
func (id RecordID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler for RecordID.
func (id RecordID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler for RecordID.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*id = RecordID{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID{value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid record id %s: %w", data, err)
	}
	*id = RecordID{value: n.String(), numeric: true}
	return nil
}

// RawRecord is an email as produced by the extractor. Every field is
// optional; absent fields decode to their zero values.
type RawRecord struct {
	ID        RecordID `json:"id"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	BodyType  BodyType `json:"bodyType"`
	SentDate  string   `json:"sentDate"`
	WordCount int      `json:"wordCount"`
}

// CleanedRecord is a RawRecord after anonymization.
type CleanedRecord struct {
	ID                RecordID `json:"id"`
	Subject           string   `json:"subject"`
	SentDate          string   `json:"sentDate"`
	Body              string   `json:"body"`
	WordCount         int      `json:"wordCount"`
	OriginalWordCount int      `json:"originalWordCount"`
}

// CountWords returns the number of whitespace-separated words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
