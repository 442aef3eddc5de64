// Package output provides formatted output rendering for processing
// statistics and style profiles. It supports text, JSON, table and YAML
// formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w        io.Writer
	format   Format
	colorize bool
}

// New creates a new output Writer. Color is off until SetColorMode is called.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// SetColorMode enables or disables color according to mode and whether the
// underlying writer is a terminal.
func (wr *Writer) SetColorMode(mode ColorMode) {
	wr.colorize = shouldColorize(mode, wr.w)
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteYAML outputs any value as YAML.
func (wr *Writer) WriteYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = wr.w.Write(data)
	return err
}

// writeStructured handles the formats that serialize v directly. It reports
// false for text and table, which each caller renders itself.
func (wr *Writer) writeStructured(v interface{}) (bool, error) {
	switch wr.format {
	case FormatJSON:
		return true, wr.WriteJSON(v)
	case FormatYAML:
		return true, wr.WriteYAML(v)
	default:
		return false, nil
	}
}
