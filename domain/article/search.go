package article

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Filter returns the entries whose title or content contains query,
// ignoring case. Order is preserved. An empty query returns the whole view.
func (v SearchView) Filter(query string) SearchView {
	if query == "" {
		return v
	}

	lower := cases.Lower(language.Und)
	fold := func(s string) string {
		return lower.String(norm.NFC.String(s))
	}

	needle := fold(query)
	matched := make(SearchView, 0, len(v))
	for _, e := range v {
		if strings.Contains(fold(e.Title), needle) || strings.Contains(fold(e.Content), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Trees drops the content of every entry.
func (v SearchView) Trees() []TreeEntry {
	entries := make([]TreeEntry, 0, len(v))
	for _, e := range v {
		entries = append(entries, e.Tree())
	}
	return entries
}
