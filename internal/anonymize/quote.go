package anonymize

import (
	"regexp"
	"strings"
)

// Reply-chain patterns. Dot-all is set, so the header patterns discard
// everything from the match to the end of the text.
var quotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?ms)On .+ wrote:.*$`),
	regexp.MustCompile(`(?ms)From:.*?Sent:.*?To:.*?Subject:.*$`),
	regexp.MustCompile(`(?ms)^>.*$`),
	regexp.MustCompile(`_{5,}`),
	regexp.MustCompile(`(?is)-{3,}\s*Original Message\s*-{3,}.*$`),
	regexp.MustCompile(`(?s)-{3,}.*?-{3,}`),
}

// Quoted reply lines and blockquotes in the source body. Line structure is
// lost once a body is normalized, so these run before normalization.
var (
	quotedLine = regexp.MustCompile(`(?s)(?:^|\n)[ \t]*>.*$`)
	blockquote = regexp.MustCompile(`(?is)<blockquote[\s>].*$`)
)

// quoteIndicators are checked in order; the text is cut before the first
// occurrence of each one that is present.
var quoteIndicators = []string{
	"wrote:",
	"From:",
	"Sent:",
	"-----Original Message-----",
	"________________________________",
}

// CutQuotedSource cuts a raw body at its first quoted reply line, or at its
// first blockquote element when the body is markup. It reports whether
// anything was cut.
func CutQuotedSource(body string, isMarkup bool) (string, bool) {
	re := quotedLine
	if isMarkup {
		re = blockquote
	}
	loc := re.FindStringIndex(body)
	if loc == nil {
		return body, false
	}
	return body[:loc[0]], true
}

// StripQuotedContent removes reply-chain and forwarded content from text.
// It reports whether anything was removed. An email made only of quoted
// content strips to the empty string.
func StripQuotedContent(text string) (string, bool) {
	result := text
	for _, re := range quotePatterns {
		result = re.ReplaceAllLiteralString(result, "")
	}
	removed := result != text

	for _, indicator := range quoteIndicators {
		if i := strings.Index(result, indicator); i >= 0 {
			result = result[:i]
			removed = true
		}
	}

	return strings.TrimSpace(result), removed
}
