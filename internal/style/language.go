package style

import (
	"github.com/abadojack/whatlanggo"
	"github.com/bimmerbailey/penmark/internal/corpus"
)

// DetectLanguage returns the name of the language most emails are written
// in, or "" when none could be detected.
func DetectLanguage(emails []corpus.CleanedRecord) string {
	counts := make(map[string]int)
	best, bestCount := "", 0

	for _, e := range emails {
		if e.Body == "" {
			continue
		}
		lang := whatlanggo.Detect(e.Body).Lang.String()
		if lang == "" {
			continue
		}
		counts[lang]++
		if n := counts[lang]; n > bestCount || (n == bestCount && lang < best) {
			best, bestCount = lang, n
		}
	}
	return best
}
