package anonymize

import (
	"regexp"
	"strings"
)

var (
	styleElement  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptElement = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)

	// Decoded in a single pass so "&amp;lt;" becomes "&lt;", not "<".
	entityDecoder = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&apos;", "'",
	)
)

// Normalize converts a raw body to a single line of plain text.
//
// When isMarkup is set, style and script elements are dropped with their
// content, every other tag is replaced by a space and the common named
// entities are decoded. Whitespace runs are always collapsed to one space
// and the result is trimmed.
func Normalize(raw string, isMarkup bool) string {
	if raw == "" {
		return ""
	}

	text := raw
	if isMarkup {
		text = styleElement.ReplaceAllLiteralString(text, "")
		text = scriptElement.ReplaceAllLiteralString(text, "")
		text = anyTag.ReplaceAllLiteralString(text, " ")
		text = entityDecoder.Replace(text)
	}

	return strings.Join(strings.Fields(text), " ")
}
