package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bimmerbailey/penmark/internal/corpus"
	"github.com/bimmerbailey/penmark/internal/ingest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newIngestTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "ingest"}
	cmd.SetOut(out)
	cmd.Flags().StringP("output", "o", "", "raw email document")
	return cmd
}

func TestIngestDirectory(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	mail := filepath.Join(dir, "mail")
	if err := os.MkdirAll(mail, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	writeTempFile(t, mail, "a.eml", []string{
		"Message-Id: <a@example.com>",
		"Date: Mon, 13 Jan 2025 10:00:00 +0000",
		"Subject: First",
		"",
		"Hi Dana, the first reply.",
	})
	writeTempFile(t, mail, "b.eml", []string{
		"Message-Id: <b@example.com>",
		"Date: Tue, 14 Jan 2025 10:00:00 +0000",
		"Subject: Second",
		"",
		"Hi Sam, the second reply.",
	})
	writeTempFile(t, mail, "notes.txt", []string{"not a message"})

	outPath := filepath.Join(dir, "raw.json")
	var out bytes.Buffer
	cmd := newIngestTestCmd(&out)
	_ = cmd.Flags().Set("output", outPath)

	if err := runIngest(cmd, []string{mail}); err != nil {
		t.Fatalf("runIngest() error = %v", err)
	}

	if !strings.Contains(out.String(), "Ingested 2 of 2 messages") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	doc, err := corpus.LoadInput(outPath)
	if err != nil {
		t.Fatalf("LoadInput() error = %v", err)
	}
	if len(doc.Emails) != 2 {
		t.Fatalf("got %d emails, want 2", len(doc.Emails))
	}
	if doc.Emails[0].Subject != "Second" {
		t.Errorf("first email = %q, want newest first", doc.Emails[0].Subject)
	}

	var rng corpus.DateRange
	if err := json.Unmarshal(doc.DateRange, &rng); err != nil {
		t.Fatalf("invalid date range: %v", err)
	}
	if rng.Oldest != "2025-01-13T10:00:00Z" || rng.Newest != "2025-01-14T10:00:00Z" {
		t.Errorf("unexpected date range: %+v", rng)
	}
}

func TestIngestNoMessages(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	var out bytes.Buffer
	cmd := newIngestTestCmd(&out)
	_ = cmd.Flags().Set("output", filepath.Join(dir, "raw.json"))

	err := runIngest(cmd, []string{dir})
	if !errors.Is(err, ingest.ErrNoMessages) {
		t.Errorf("runIngest() error = %v, want ErrNoMessages", err)
	}
}

func TestIngestNoMatches(t *testing.T) {
	viper.Reset()

	var out bytes.Buffer
	cmd := newIngestTestCmd(&out)

	if err := runIngest(cmd, []string{filepath.Join(t.TempDir(), "*.eml")}); err == nil {
		t.Error("expected error for pattern without matches")
	}
}
