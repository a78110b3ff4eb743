// Package output renders lookup results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/acro/internal/lookup"
)

// Format selects how matches are written.
type Format string

// Output formats.
const (
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format, default first.
var Formats = []Format{FormatText, FormatTable, FormatMarkdown, FormatJSON}

// ParseFormat validates s as an output format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown output format %q (expected one of: %s)", s, strings.Join(names, ", "))
}

// Renderer writes matched entries to an output stream.
type Renderer struct {
	w       io.Writer
	format  Format
	color   bool
	acronym lipgloss.Style
}

// NewRenderer creates a renderer for w. With color set, acronyms in text
// output are bold and blue whether or not w is a terminal.
func NewRenderer(w io.Writer, format Format, color bool) *Renderer {
	if format == "" {
		format = FormatText
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return &Renderer{
		w:      w,
		format: format,
		color:  color,
		acronym: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("4")).
			TabWidth(lipgloss.NoTabConversion),
	}
}

// Entries writes entries in order.
func (r *Renderer) Entries(entries []lookup.Entry) error {
	switch r.format {
	case FormatTable:
		return r.table(entries, false)
	case FormatMarkdown:
		return r.table(entries, true)
	case FormatJSON:
		return r.json(entries)
	default:
		return r.text(entries)
	}
}

// text writes " <acronym>: <definition>" per entry.
func (r *Renderer) text(entries []lookup.Entry) error {
	for _, e := range entries {
		acronym := e.Acronym
		if r.color {
			acronym = r.emphasize(acronym)
		}
		if _, err := fmt.Fprintf(r.w, " %s: %s\n", acronym, e.Definition); err != nil {
			return err
		}
	}
	return nil
}

// emphasize styles s one line at a time. Render pads a multi-line block
// to its widest line, which would change the text.
func (r *Renderer) emphasize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = r.acronym.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) table(entries []lookup.Entry, markdown bool) error {
	if len(entries) == 0 {
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Acronym", "Definition"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Acronym, e.Definition})
	}

	var rendered string
	if markdown {
		rendered = t.RenderMarkdown()
	} else {
		rendered = t.Render()
	}
	_, err := fmt.Fprintln(r.w, rendered)
	return err
}

func (r *Renderer) json(entries []lookup.Entry) error {
	if entries == nil {
		entries = []lookup.Entry{}
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
