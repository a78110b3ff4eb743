// Package lookup turns delimited records into acronym entries and filters
// them against a query.
package lookup

import (
	"iter"

	"github.com/leapstack-labs/acro/internal/source"
)

// Entry is one acronym and its definition, taken from a single record.
type Entry struct {
	Acronym    string `json:"acronym"`
	Definition string `json:"definition"`
}

// Columns holds the zero-based field indices used to build an Entry.
type Columns struct {
	Acronym    int
	Definition int
}

// DefaultColumns reads the acronym from the first field and the definition
// from the second.
var DefaultColumns = Columns{Acronym: 0, Definition: 1}

// Extract builds an Entry from rec. It reports false when either column is
// outside the record, which is how short or ragged rows are dropped.
func Extract(rec source.Record, cols Columns) (Entry, bool) {
	if !inRange(rec, cols.Acronym) || !inRange(rec, cols.Definition) {
		return Entry{}, false
	}
	return Entry{
		Acronym:    rec[cols.Acronym],
		Definition: rec[cols.Definition],
	}, true
}

func inRange(rec source.Record, i int) bool {
	return i >= 0 && i < len(rec)
}

// Entries yields an Entry for every record that has both columns, in
// record order. Records without them are skipped.
func Entries(records iter.Seq[source.Record], cols Columns) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for rec := range records {
			entry, ok := Extract(rec, cols)
			if !ok {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Entry]) []Entry {
	var entries []Entry
	for e := range seq {
		entries = append(entries, e)
	}
	return entries
}
