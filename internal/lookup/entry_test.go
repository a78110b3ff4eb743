package lookup

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/acro/internal/source"
)

// TestExtract tests column lookup on single records.
func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		rec    source.Record
		cols   Columns
		want   Entry
		wantOK bool
	}{
		{
			name:   "default columns",
			rec:    source.Record{"NATO", "North Atlantic Treaty Organization"},
			cols:   DefaultColumns,
			want:   Entry{Acronym: "NATO", Definition: "North Atlantic Treaty Organization"},
			wantOK: true,
		},
		{
			name:   "shifted columns",
			rec:    source.Record{"1", "NATO", "North Atlantic Treaty Organization"},
			cols:   Columns{Acronym: 1, Definition: 2},
			want:   Entry{Acronym: "NATO", Definition: "North Atlantic Treaty Organization"},
			wantOK: true,
		},
		{
			name:   "same column for both",
			rec:    source.Record{"NATO"},
			cols:   Columns{Acronym: 0, Definition: 0},
			want:   Entry{Acronym: "NATO", Definition: "NATO"},
			wantOK: true,
		},
		{
			name:   "reversed columns",
			rec:    source.Record{"North Atlantic Treaty Organization", "NATO"},
			cols:   Columns{Acronym: 1, Definition: 0},
			want:   Entry{Acronym: "NATO", Definition: "North Atlantic Treaty Organization"},
			wantOK: true,
		},
		{
			name: "short row",
			rec:  source.Record{"NATO"},
			cols: DefaultColumns,
		},
		{
			name: "acronym column out of range",
			rec:  source.Record{"NATO", "North Atlantic Treaty Organization"},
			cols: Columns{Acronym: 5, Definition: 1},
		},
		{
			name: "empty record",
			rec:  source.Record{},
			cols: DefaultColumns,
		},
		{
			name: "negative column",
			rec:  source.Record{"NATO", "North Atlantic Treaty Organization"},
			cols: Columns{Acronym: -1, Definition: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.rec, tt.cols)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestEntries_SkipsShortRows tests that short rows do not affect later valid rows.
func TestEntries_SkipsShortRows(t *testing.T) {
	records := slices.Values([]source.Record{
		{"NATO", "North Atlantic Treaty Organization"},
		{"EU"},
		{},
		{"USA", "United States of America"},
	})

	got := Collect(Entries(records, DefaultColumns))

	assert.Equal(t, []Entry{
		{Acronym: "NATO", Definition: "North Atlantic Treaty Organization"},
		{Acronym: "USA", Definition: "United States of America"},
	}, got)
}

// TestEntries_FromSource tests extraction straight from a record stream.
func TestEntries_FromSource(t *testing.T) {
	input := "id,acronym,definition\n1,NATO,North Atlantic Treaty Organization\n2,USA\n3,EU,European Union\n"
	src, err := source.Open(source.Stdin, strings.NewReader(input), source.Options{Header: true})
	require.NoError(t, err)

	got := Collect(Entries(src.Records(), Columns{Acronym: 1, Definition: 2}))
	require.NoError(t, src.Err())

	assert.Equal(t, []Entry{
		{Acronym: "NATO", Definition: "North Atlantic Treaty Organization"},
		{Acronym: "EU", Definition: "European Union"},
	}, got)
}

func TestEntries_StopsEarly(t *testing.T) {
	records := slices.Values([]source.Record{{"A", "1"}, {"B", "2"}, {"C", "3"}})

	var got []Entry
	for e := range Entries(records, DefaultColumns) {
		got = append(got, e)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestCollect_Empty(t *testing.T) {
	got := Collect(Entries(slices.Values([]source.Record(nil)), DefaultColumns))
	assert.Empty(t, got)
}
