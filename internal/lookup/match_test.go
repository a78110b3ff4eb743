package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testEntries() []Entry {
	return []Entry{
		{Acronym: "NATO", Definition: "N A T O"},
		{Acronym: "USA", Definition: "U S A"},
	}
}

func acronyms(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Acronym)
	}
	return out
}

func TestMatchExact(t *testing.T) {
	assert.Len(t, MatchExact(testEntries(), "NATO"), 1)
	assert.Len(t, MatchExact(testEntries(), "nAtO"), 1)
	assert.Empty(t, MatchExact(testEntries(), "NAT"))
}

func TestMatchPartial(t *testing.T) {
	assert.Empty(t, MatchPartial(testEntries(), "NATA"))
	assert.Equal(t, []string{"NATO", "USA"}, acronyms(MatchPartial(testEntries(), "A")))
	assert.Equal(t, []string{"USA"}, acronyms(MatchPartial(testEntries(), "us")))
}

// TestMatch tests the exact-then-partial fallback.
func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		query   string
		want    []string
	}{
		{
			name:    "exact match",
			entries: testEntries(),
			query:   "NATO",
			want:    []string{"NATO"},
		},
		{
			name:    "exact match ignores case",
			entries: testEntries(),
			query:   "NAto",
			want:    []string{"NATO"},
		},
		{
			name:    "partial fallback",
			entries: testEntries(),
			query:   "NAT",
			want:    []string{"NATO"},
		},
		{
			name:    "partial fallback keeps order",
			entries: testEntries(),
			query:   "A",
			want:    []string{"NATO", "USA"},
		},
		{
			name:    "no match",
			entries: testEntries(),
			query:   "NATA",
			want:    []string{},
		},
		{
			name: "exact excludes partial",
			entries: []Entry{
				{Acronym: "ABC", Definition: "longer"},
				{Acronym: "AB", Definition: "exact"},
				{Acronym: "XAB", Definition: "longer"},
			},
			query: "ab",
			want:  []string{"AB"},
		},
		{
			name: "duplicates kept in order",
			entries: []Entry{
				{Acronym: "PR", Definition: "Pull Request"},
				{Acronym: "USA", Definition: "United States of America"},
				{Acronym: "pr", Definition: "Public Relations"},
			},
			query: "PR",
			want:  []string{"PR", "pr"},
		},
		{
			name:    "empty entries",
			entries: nil,
			query:   "NATO",
			want:    []string{},
		},
		{
			name:    "full unicode upper case",
			entries: []Entry{{Acronym: "STRASSE", Definition: "street"}},
			query:   "straße",
			want:    []string{"STRASSE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.entries, tt.query)
			assert.Equal(t, tt.want, acronyms(got))
		})
	}
}

// TestMatch_Definitions tests that each duplicate acronym keeps its own definition.
func TestMatch_Definitions(t *testing.T) {
	entries := []Entry{
		{Acronym: "PR", Definition: "Pull Request"},
		{Acronym: "PR", Definition: "Public Relations"},
	}

	assert.Equal(t, entries, Match(entries, "pr"))
}

// TestMatch_DoesNotMutate tests that filtering copies rather than aliases the input.
func TestMatch_DoesNotMutate(t *testing.T) {
	entries := testEntries()
	before := append([]Entry(nil), entries...)

	got := Match(entries, "A")
	got[0].Acronym = "CHANGED"

	assert.Equal(t, before, entries)
}

// TestMatch_Subset tests that results are an order-preserving subsequence of the input.
func TestMatch_Subset(t *testing.T) {
	entries := []Entry{
		{Acronym: "API", Definition: "1"},
		{Acronym: "CAPI", Definition: "2"},
		{Acronym: "GPU", Definition: "3"},
		{Acronym: "RAPID", Definition: "4"},
		{Acronym: "api", Definition: "5"},
	}

	for _, query := range []string{"API", "AP", "P", "Z", "pid", ""} {
		got := Match(entries, query)

		i := 0
		for _, g := range got {
			for i < len(entries) && entries[i] != g {
				i++
			}
			assert.Less(t, i, len(entries), "query %q returned an entry out of order", query)
			i++
		}
	}
}

func TestMatch_Idempotent(t *testing.T) {
	entries := testEntries()
	assert.Equal(t, Match(entries, "A"), Match(entries, "A"))
	assert.Equal(t, Match(entries, "usa"), Match(entries, "usa"))
}
