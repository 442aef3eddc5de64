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
	"github.com/bimmerbailey/penmark/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newAnalyzeTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "analyze"}
	cmd.SetOut(out)
	cmd.Flags().StringP("input", "i", "", "cleaned email document")
	cmd.Flags().StringP("output", "o", "", "style profile file")
	cmd.Flags().String("training-output", "", "training samples file")
	cmd.Flags().Int("samples", 0, "training samples per category")
	cmd.Flags().String("since", "", "only include emails sent since")
	cmd.Flags().String("until", "", "only include emails sent until")
	cmd.Flags().String("first-name", "", "author first name")
	cmd.Flags().String("last-name", "", "author last name")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	return cmd
}

func writeCleanedDocument(t *testing.T, dir string, emails []corpus.CleanedRecord) string {
	t.Helper()
	path := filepath.Join(dir, "cleaned.json")
	doc := corpus.NewOutputDocument("run-1", nil, corpus.NewStatistics(), emails)
	if err := corpus.WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func cleanedEmails() []corpus.CleanedRecord {
	return []corpus.CleanedRecord{
		{
			ID:        corpus.NewRecordID("1"),
			Subject:   "Quote",
			SentDate:  "2025-01-10T09:00:00Z",
			Body:      "Hi [Customer], the price is $[amount] per pallet. Thanks, Joe",
			WordCount: 11,
		},
		{
			ID:        corpus.NewRecordID("2"),
			Subject:   "Pickup",
			SentDate:  "2025-02-10T09:00:00Z",
			Body:      "Hi [Customer], we can schedule the pickup for Friday. Thanks, Joe",
			WordCount: 11,
		},
		{
			ID:        corpus.NewRecordID("3"),
			Subject:   "Hello",
			SentDate:  "2025-03-10T09:00:00Z",
			Body:      "Hello [Customer], nice to meet you at the show. Best, Joe",
			WordCount: 11,
		},
	}
}

func setupAnalyze(t *testing.T, format string, emails []corpus.CleanedRecord) (*cobra.Command, *bytes.Buffer, string) {
	t.Helper()
	viper.Reset()
	viper.Set("format", format)

	dir := t.TempDir()
	input := writeCleanedDocument(t, dir, emails)

	var out bytes.Buffer
	cmd := newAnalyzeTestCmd(&out)
	_ = cmd.Flags().Set("input", input)
	_ = cmd.Flags().Set("output", filepath.Join(dir, "profile.json"))
	_ = cmd.Flags().Set("training-output", filepath.Join(dir, "training.txt"))
	_ = cmd.Flags().Set("first-name", "Joe")
	return cmd, &out, dir
}

func TestAnalyzeBasicText(t *testing.T) {
	cmd, out, dir := setupAnalyze(t, "text", cleanedEmails())

	if err := runAnalyze(cmd, nil); err != nil {
		t.Fatalf("runAnalyze() error = %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Emails analyzed: 3",
		"Most common: Hi [Name],",
		"Most common: Thanks, Joe",
		"Quote Requests: 1 emails",
		"Delivery Scheduling: 1 emails",
		"General: 1 emails",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q, got:\n%s", want, output)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "profile.json"))
	if err != nil {
		t.Fatalf("profile not written: %v", err)
	}
	var profile style.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		t.Fatalf("profile is not JSON: %v", err)
	}
	if profile.TotalAnalyzed != 3 {
		t.Errorf("TotalAnalyzed = %d, want 3", profile.TotalAnalyzed)
	}

	training, err := os.ReadFile(filepath.Join(dir, "training.txt"))
	if err != nil {
		t.Fatalf("training samples not written: %v", err)
	}
	if !strings.Contains(string(training), "CATEGORY: QUOTE REQUESTS") {
		t.Errorf("unexpected training samples:\n%s", training)
	}
}

func TestAnalyzeJSON(t *testing.T) {
	cmd, out, _ := setupAnalyze(t, "json", cleanedEmails())

	if err := runAnalyze(cmd, nil); err != nil {
		t.Fatalf("runAnalyze() error = %v", err)
	}

	var profile style.Profile
	if err := json.Unmarshal(out.Bytes(), &profile); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if profile.Greetings.UsagePercentages["Hi [Name],"] != 66.67 {
		t.Errorf("Hi usage = %v, want 66.67", profile.Greetings.UsagePercentages["Hi [Name],"])
	}
	if len(profile.ResponsePatterns) != 3 {
		t.Errorf("got %d response patterns, want 3", len(profile.ResponsePatterns))
	}
}

func TestAnalyzeSince(t *testing.T) {
	cmd, out, _ := setupAnalyze(t, "json", cleanedEmails())
	_ = cmd.Flags().Set("since", "2025-02-01")

	if err := runAnalyze(cmd, nil); err != nil {
		t.Fatalf("runAnalyze() error = %v", err)
	}

	var profile style.Profile
	if err := json.Unmarshal(out.Bytes(), &profile); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if profile.TotalAnalyzed != 2 {
		t.Errorf("TotalAnalyzed = %d, want 2", profile.TotalAnalyzed)
	}
}

func TestAnalyzeSinceUntilWindow(t *testing.T) {
	cmd, out, _ := setupAnalyze(t, "json", cleanedEmails())
	_ = cmd.Flags().Set("since", "2025-02-01")
	_ = cmd.Flags().Set("until", "2025-03-01")

	if err := runAnalyze(cmd, nil); err != nil {
		t.Fatalf("runAnalyze() error = %v", err)
	}

	var profile style.Profile
	if err := json.Unmarshal(out.Bytes(), &profile); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if profile.TotalAnalyzed != 1 {
		t.Errorf("TotalAnalyzed = %d, want 1", profile.TotalAnalyzed)
	}
}

func TestAnalyzeSamplesLimit(t *testing.T) {
	emails := cleanedEmails()
	emails[1].Subject = "Quote update"
	emails[2].Subject = "Quote follow-up"

	cmd, _, dir := setupAnalyze(t, "text", emails)
	_ = cmd.Flags().Set("samples", "2")

	if err := runAnalyze(cmd, nil); err != nil {
		t.Fatalf("runAnalyze() error = %v", err)
	}

	training, err := os.ReadFile(filepath.Join(dir, "training.txt"))
	if err != nil {
		t.Fatalf("training samples not written: %v", err)
	}
	if got := strings.Count(string(training), "--- Sample"); got != 2 {
		t.Errorf("wrote %d samples, want 2", got)
	}
}

func TestAnalyzeNoEmails(t *testing.T) {
	cmd, _, _ := setupAnalyze(t, "text", nil)

	err := runAnalyze(cmd, nil)
	if !errors.Is(err, style.ErrNoEmails) {
		t.Errorf("runAnalyze() error = %v, want ErrNoEmails", err)
	}
}

func TestAnalyzeAllFilteredOut(t *testing.T) {
	cmd, _, _ := setupAnalyze(t, "text", cleanedEmails())
	_ = cmd.Flags().Set("since", "2030-01-01")

	err := runAnalyze(cmd, nil)
	if !errors.Is(err, style.ErrNoEmails) {
		t.Errorf("runAnalyze() error = %v, want ErrNoEmails", err)
	}
}

func TestAnalyzeInvalidTimeRange(t *testing.T) {
	tests := []struct {
		name  string
		since string
		until string
	}{
		{"invalid since", "not-a-time", ""},
		{"invalid until", "", "not-a-time"},
		{"until before since", "2025-03-01", "2025-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, _ := setupAnalyze(t, "text", cleanedEmails())
			if tt.since != "" {
				_ = cmd.Flags().Set("since", tt.since)
			}
			if tt.until != "" {
				_ = cmd.Flags().Set("until", tt.until)
			}
			if err := runAnalyze(cmd, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAnalyzeMissingInput(t *testing.T) {
	viper.Reset()
	var out bytes.Buffer
	cmd := newAnalyzeTestCmd(&out)
	_ = cmd.Flags().Set("input", filepath.Join(t.TempDir(), "missing.json"))

	err := runAnalyze(cmd, nil)
	if !errors.Is(err, corpus.ErrInputNotFound) {
		t.Errorf("runAnalyze() error = %v, want ErrInputNotFound", err)
	}
}
