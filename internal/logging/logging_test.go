package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    logrus.Level
	}{
		{"quiet", false, logrus.InfoLevel},
		{"verbose", true, logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(&bytes.Buffer{}, tt.verbose, "text")
			if got := log.GetLevel(); got != tt.want {
				t.Errorf("GetLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "JSON")
	log.WithField("records", 3).Info("processed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "processed" {
		t.Errorf("msg = %v, want %q", entry["msg"], "processed")
	}
	if entry["records"] != float64(3) {
		t.Errorf("records = %v, want 3", entry["records"])
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "text")
	log.Debug("hidden")
	log.WithField("path", "out.json").Info("written")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level:\n%s", out)
	}
	if !strings.Contains(out, `msg=written`) || !strings.Contains(out, "path=out.json") {
		t.Errorf("unexpected text output:\n%s", out)
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing")
}
