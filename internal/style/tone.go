package style

import (
	"math"
	"regexp"
	"strings"

	"github.com/bimmerbailey/penmark/internal/corpus"
)

var (
	formalIndicators = []string{
		"dear", "sincerely", "regards", "please find", "i am writing to",
		"hereby", "pursuant to", "kindly", "appreciate your", "furthermore",
	}
	friendlyIndicators = []string{
		"hey", "thanks", "great", "awesome", "love", "excited",
		"looking forward", "!", "happy to", "glad to",
	}
	professionalIndicators = []string{
		"please", "thank you", "appreciate", "per our discussion",
		"as discussed", "following up", "wanted to", "just checking",
	}
)

const (
	formalWeight       = 2.0
	friendlyWeight     = 1.5
	professionalWeight = 1.5
	maxScore           = 10.0
)

var (
	sentenceBoundary  = regexp.MustCompile(`[.!?]+`)
	paragraphBoundary = regexp.MustCompile(`\n\s*\n`)
)

// indicatorHits counts how many of the indicators occur in body at least once.
func indicatorHits(body string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(body, ind) {
			n++
		}
	}
	return n
}

func score(hits, emails int, weight float64) float64 {
	return math.Min(maxScore, float64(hits)/float64(emails)*weight)
}

// AnalyzeTone scores formality, warmth and professionalism from keyword
// hits per email.
func AnalyzeTone(emails []corpus.CleanedRecord) Tone {
	if len(emails) == 0 {
		return Tone{OverallTone: "Casual-Professional"}
	}

	var formal, friendly, professional int
	for _, e := range emails {
		body := strings.ToLower(e.Body)
		formal += indicatorHits(body, formalIndicators)
		friendly += indicatorHits(body, friendlyIndicators)
		professional += indicatorHits(body, professionalIndicators)
	}

	formality := score(formal, len(emails), formalWeight)
	warmth := score(friendly, len(emails), friendlyWeight)
	professionalism := score(professional, len(emails), professionalWeight)

	var overall string
	switch {
	case formality > 7:
		overall = "Formal"
	case warmth > 7:
		overall = "Friendly"
	case professionalism > 6:
		overall = "Professional-Friendly"
	default:
		overall = "Casual-Professional"
	}

	return Tone{
		OverallTone:          overall,
		FormalityScore:       round(formality, 1),
		WarmthScore:          round(warmth, 1),
		ProfessionalismScore: round(professionalism, 1),
	}
}

// AnalyzeCharacteristics computes average email length, sentence length and
// paragraph count.
func AnalyzeCharacteristics(emails []corpus.CleanedRecord) Characteristics {
	if len(emails) == 0 {
		return Characteristics{}
	}

	var words, sentenceWords, sentences, paragraphs int
	for _, e := range emails {
		words += corpus.CountWords(e.Body)

		for _, s := range sentenceBoundary.Split(e.Body, -1) {
			if strings.TrimSpace(s) == "" {
				continue
			}
			sentences++
			sentenceWords += corpus.CountWords(s)
		}

		for _, p := range paragraphBoundary.Split(e.Body, -1) {
			if strings.TrimSpace(p) != "" {
				paragraphs++
			}
		}
	}

	c := Characteristics{
		AvgEmailLength:    int(math.Round(float64(words) / float64(len(emails)))),
		AvgParagraphCount: round(float64(paragraphs)/float64(len(emails)), 1),
	}
	if sentences > 0 {
		c.AvgSentenceLength = int(math.Round(float64(sentenceWords) / float64(sentences)))
	}
	return c
}
