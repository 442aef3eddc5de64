package style

import (
	"reflect"
	"testing"

	"github.com/bimmerbailey/penmark/internal/corpus"
)

func bodies(texts ...string) []corpus.CleanedRecord {
	emails := make([]corpus.CleanedRecord, len(texts))
	for i, t := range texts {
		emails[i] = corpus.CleanedRecord{Body: t, WordCount: corpus.CountWords(t)}
	}
	return emails
}

func TestAnalyzeGreetings(t *testing.T) {
	emails := bodies(
		"Hi [Customer], thanks for reaching out.",
		"Hello [Customer], the order shipped.",
		"hi [customer] see attached.",
		"Good morning [Customer], quick update.",
		"Thanks for the note.",
	)

	got := AnalyzeGreetings(emails)

	if got.MostCommon != "Hi [Name]," {
		t.Errorf("MostCommon = %q, want %q", got.MostCommon, "Hi [Name],")
	}
	wantVariations := []string{"Hi [Name],", "Hello [Name],", "Good [time] [Name],"}
	if !reflect.DeepEqual(got.Variations, wantVariations) {
		t.Errorf("Variations = %v, want %v", got.Variations, wantVariations)
	}
	wantPct := map[string]float64{"Hi [Name],": 50, "Hello [Name],": 25, "Good [time] [Name],": 25}
	if !reflect.DeepEqual(got.UsagePercentages, wantPct) {
		t.Errorf("UsagePercentages = %v, want %v", got.UsagePercentages, wantPct)
	}
}

func TestAnalyzeGreetingsNoneMatched(t *testing.T) {
	got := AnalyzeGreetings(bodies("Thanks for the note.", "See attached."))

	if got.MostCommon != defaultGreeting {
		t.Errorf("MostCommon = %q, want %q", got.MostCommon, defaultGreeting)
	}
	if len(got.Variations) != 0 {
		t.Errorf("Variations = %v, want empty", got.Variations)
	}
	if len(got.UsagePercentages) != 0 {
		t.Errorf("UsagePercentages = %v, want empty", got.UsagePercentages)
	}
}

func TestAnalyzeGreetingsOnlyOpening(t *testing.T) {
	// The salutation must open the body.
	got := AnalyzeGreetings(bodies("Following up on Friday. Hi [Customer], as promised."))
	if len(got.Variations) != 0 {
		t.Errorf("Variations = %v, want empty", got.Variations)
	}
}

func TestAnalyzeSignOffs(t *testing.T) {
	a := New(WithAuthor("Joe", "Newman"))
	emails := bodies(
		"Let me know. Thanks, Joe",
		"The invoice is attached. Best regards, Joe Newman",
		"See you Friday. Cheers, Joe",
		"See you then.\nJoe",
	)

	got := a.AnalyzeSignOffs(emails)

	want := []string{"Thanks,\nJoe", "Best regards,\nJoe", "Cheers,\nJoe", "Joe"}
	if !reflect.DeepEqual(got.Variations, want) {
		t.Errorf("Variations = %q, want %q", got.Variations, want)
	}
	for label, pct := range got.UsagePercentages {
		if pct != 25 {
			t.Errorf("UsagePercentages[%q] = %v, want 25", label, pct)
		}
	}
	if got.MostCommon != "Thanks,\nJoe" {
		t.Errorf("MostCommon = %q", got.MostCommon)
	}
}

func TestAnalyzeSignOffsDefaults(t *testing.T) {
	tests := []struct {
		name     string
		analyzer *Analyzer
		want     string
	}{
		{"with author", New(WithAuthor("Joe", "Newman")), "Thanks,\nJoe"},
		{"without author", New(), "Thanks,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.analyzer.AnalyzeSignOffs(bodies("No closing here."))
			if got.MostCommon != tt.want {
				t.Errorf("MostCommon = %q, want %q", got.MostCommon, tt.want)
			}
		})
	}
}

func TestAnalyzeSignOffsWithoutAuthor(t *testing.T) {
	got := New().AnalyzeSignOffs(bodies("Talk soon. Regards,", "Talk soon. Regards,", "Sincerely,"))

	want := []string{"Regards,", "Sincerely,"}
	if !reflect.DeepEqual(got.Variations, want) {
		t.Errorf("Variations = %q, want %q", got.Variations, want)
	}
	if got.UsagePercentages["Regards,"] != 66.67 {
		t.Errorf("UsagePercentages[Regards,] = %v, want 66.67", got.UsagePercentages["Regards,"])
	}
}
