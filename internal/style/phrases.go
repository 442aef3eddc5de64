package style

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bimmerbailey/penmark/internal/corpus"
)

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// placeholder is the lower-cased name token written by the anonymizer.
const placeholder = "[customer]"

// PhraseOptions bounds the n-grams considered common.
type PhraseOptions struct {
	MinWords int
	MaxWords int
	MinCount int
	TopN     int
}

// DefaultPhraseOptions returns 3 to 8 word phrases seen at least 3 times,
// keeping the top 15.
func DefaultPhraseOptions() PhraseOptions {
	return PhraseOptions{MinWords: 3, MaxWords: 8, MinCount: 3, TopN: 15}
}

type phraseCount struct {
	phrase string
	count  int
}

// CommonPhrases returns the most frequent word sequences across emails.
// Sequences never span the name placeholder.
func CommonPhrases(emails []corpus.CleanedRecord, opts PhraseOptions) []string {
	counts := make(map[string]int)

	for _, e := range emails {
		for _, segment := range strings.Split(strings.ToLower(e.Body), placeholder) {
			words := strings.Fields(punctuation.ReplaceAllString(segment, " "))
			for n := opts.MinWords; n <= opts.MaxWords; n++ {
				for i := 0; i+n <= len(words); i++ {
					counts[strings.Join(words[i:i+n], " ")]++
				}
			}
		}
	}

	ranked := make([]phraseCount, 0, len(counts))
	for phrase, n := range counts {
		if n >= opts.MinCount {
			ranked = append(ranked, phraseCount{phrase: phrase, count: n})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].phrase < ranked[j].phrase
	})

	if len(ranked) > opts.TopN {
		ranked = ranked[:opts.TopN]
	}

	phrases := make([]string, len(ranked))
	for i, r := range ranked {
		phrases[i] = r.phrase
	}
	return phrases
}
