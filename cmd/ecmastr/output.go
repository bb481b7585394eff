package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/sjson"

	"github.com/dshills/ecmastr/internal/logging"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#78a9ff"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8d8d8d"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f4f4f4"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#393939")).
			Padding(0, 1)
)

// field is one reported value. key is an sjson path in JSON output.
type field struct {
	key   string
	value any
}

type report struct {
	title  string
	fields []field
}

func (r *report) add(key string, value any) {
	r.fields = append(r.fields, field{key, value})
}

// emit writes r as one JSON document, a styled box on a terminal, or
// aligned plain text.
func (c *cli) emit(r report) error {
	if c.jsonOut {
		return writeJSON(c.out, r)
	}
	if logging.IsTerminal(c.out) {
		_, err := fmt.Fprintln(c.out, renderStyled(r))
		return err
	}
	return writePlain(c.out, r)
}

func writeJSON(w io.Writer, r report) error {
	doc := "{}"
	for _, f := range r.fields {
		var err error
		if doc, err = sjson.Set(doc, f.key, f.value); err != nil {
			return fmt.Errorf("encode %s: %w", f.key, err)
		}
	}
	_, err := fmt.Fprintln(w, doc)
	return err
}

func keyWidth(r report) int {
	w := 0
	for _, f := range r.fields {
		w = max(w, len(f.key))
	}
	return w
}

func writePlain(w io.Writer, r report) error {
	var b strings.Builder
	if r.title != "" {
		b.WriteString(r.title)
		b.WriteByte('\n')
	}
	width := keyWidth(r)
	for _, f := range r.fields {
		fmt.Fprintf(&b, "  %-*s  %v\n", width, f.key, f.value)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderStyled(r report) string {
	width := keyWidth(r)
	rows := make([]string, 0, len(r.fields)+1)
	if r.title != "" {
		rows = append(rows, titleStyle.Render(r.title))
	}
	for _, f := range r.fields {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Width(width+2).Render(f.key),
			valueStyle.Render(fmt.Sprint(f.value)),
		))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
