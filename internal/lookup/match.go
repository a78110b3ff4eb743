package lookup

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Match returns the entries whose acronym equals query, ignoring case.
// When there are none it falls back to entries whose acronym contains
// query. Both tiers keep the order of entries and never modify it.
func Match(entries []Entry, query string) []Entry {
	if exact := MatchExact(entries, query); len(exact) > 0 {
		return exact
	}
	return MatchPartial(entries, query)
}

// MatchExact returns the entries whose acronym equals query, ignoring case.
func MatchExact(entries []Entry, query string) []Entry {
	fold := newFolder()
	q := fold(query)
	return filter(entries, func(e Entry) bool {
		return fold(e.Acronym) == q
	})
}

// MatchPartial returns the entries whose acronym contains query, ignoring case.
func MatchPartial(entries []Entry, query string) []Entry {
	fold := newFolder()
	q := fold(query)
	return filter(entries, func(e Entry) bool {
		return strings.Contains(fold(e.Acronym), q)
	})
}

// newFolder returns an upper-casing function. A cases.Caser keeps state
// between calls, so each match gets its own.
func newFolder() func(string) string {
	caser := cases.Upper(language.Und)
	return caser.String
}

func filter(entries []Entry, keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
