package anonymize

import (
	"regexp"
	"sort"
	"strings"
)

// NamePlaceholder replaces every redacted addressee name.
const NamePlaceholder = "[Customer]"

var salutation = regexp.MustCompile(`(?:Hi|Hello|Hey|Dear)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)

// ExtractAddresseeNames returns the distinct names that follow a salutation
// anywhere in text, sorted longest first so that a full name is replaced
// before any of its parts.
func ExtractAddresseeNames(text string) []string {
	matches := salutation.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// NameAnonymizer replaces addressee names while leaving the author's own
// name alone.
type NameAnonymizer struct {
	excluded map[string]struct{}
}

// NewNameAnonymizer creates a NameAnonymizer that never redacts the author's
// first name, last name or full name, compared case-insensitively.
func NewNameAnonymizer(firstName, lastName string) *NameAnonymizer {
	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))

	excluded := make(map[string]struct{}, 3)
	for _, v := range []string{first, last, strings.TrimSpace(first + " " + last)} {
		if v != "" {
			excluded[v] = struct{}{}
		}
	}
	return &NameAnonymizer{excluded: excluded}
}

// IsAuthor reports whether name is one of the author's names.
func (a *NameAnonymizer) IsAuthor(name string) bool {
	_, ok := a.excluded[strings.ToLower(name)]
	return ok
}

// RedactNames replaces every occurrence of each name in text with
// NamePlaceholder. Matching is plain substring matching, so a short name
// inside a longer word is replaced too. All names are replaced in a single
// pass, longest first at each position, so a placeholder written for one
// name is never rewritten for another.
func (a *NameAnonymizer) RedactNames(text string, names []string) string {
	pairs := make([]string, 0, 2*len(names))
	for _, name := range longestFirst(names) {
		if name == "" || a.IsAuthor(name) {
			continue
		}
		pairs = append(pairs, name, NamePlaceholder)
	}
	if len(pairs) == 0 {
		return text
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func longestFirst(names []string) []string {
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return sorted
}
