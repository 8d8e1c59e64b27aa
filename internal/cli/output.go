package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/cb/internal/model"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	// Disable colors if stdout is not a terminal
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ApplyColorMode sets color output from a config value: "always", "never",
// or "auto" (color only when w is a terminal).
func ApplyColorMode(mode string, w io.Writer) {
	switch mode {
	case "always":
		colorEnabled = true
	case "never":
		colorEnabled = false
	default:
		colorEnabled = IsTerminal(w)
	}
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string {
	if !colorEnabled {
		return s
	}
	return colorGreen + s + colorReset
}

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string {
	if !colorEnabled {
		return s
	}
	return colorRed + s + colorReset
}

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string {
	if !colorEnabled {
		return s
	}
	return colorYellow + s + colorReset
}

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string {
	if !colorEnabled {
		return s
	}
	return colorGray + s + colorReset
}

// DefaultMaxNameWidth is the default maximum visible width for name columns.
const DefaultMaxNameWidth = 40

// separatorWidth is the width of the line printed between contacts.
const separatorWidth = 50

// Separator returns the dashed line printed between contact blocks.
func Separator() string {
	return Gray(strings.Repeat("-", separatorWidth))
}

// WriteContact writes a contact as Name/Phone/Email lines.
func WriteContact(w io.Writer, c model.Contact) {
	fmt.Fprintf(w, "Name: %s\n", c.Name)
	fmt.Fprintf(w, "Phone: %s\n", c.Phone)
	fmt.Fprintf(w, "Email: %s\n", c.Email)
}

// WriteContactBlocks writes each contact followed by a separator,
// with a leading separator before the first.
func WriteContactBlocks(w io.Writer, contacts []model.Contact) {
	fmt.Fprintln(w, Separator())
	for _, c := range contacts {
		WriteContact(w, c)
		fmt.Fprintln(w, Separator())
	}
}

// ContactTable returns a three-column table (name, phone, email) with the
// name column capped at DefaultMaxNameWidth.
func ContactTable(contacts []model.Contact) *Table {
	table := NewTable()
	table.SetMaxWidth(0, DefaultMaxNameWidth)
	for _, c := range contacts {
		table.AddRow(c.Name, c.Phone, Gray(c.Email))
	}
	return table
}

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	// Expand colWidths if needed
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}

	// Update column widths based on visible width (excluding ANSI codes)
	for i, col := range cols {
		width := visibleWidth(col)
		// Cap the tracked width if a max is set for this column
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		if width > t.colWidths[i] {
			t.colWidths[i] = width
		}
	}

	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		var parts []string
		for i, col := range row {
			// Truncate if a max width is set for this column
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i < len(t.colWidths)-1 {
				// Pad all columns except the last
				padding := t.colWidths[i] - visibleWidth(col)
				parts = append(parts, col+strings.Repeat(" ", padding))
			} else {
				// Last column doesn't need padding
				parts = append(parts, col)
			}
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

// Truncate returns s cut to maxWidth visible characters, ending in "..."
// when there is room for it. ANSI codes before the cut are kept and closed
// with a reset.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "..."
	if maxWidth < len(ellipsis) {
		cut, _ := cutVisible(s, maxWidth)
		return cut
	}

	cut, hasAnsi := cutVisible(s, maxWidth-len(ellipsis))
	cut += ellipsis
	if hasAnsi {
		cut += colorReset
	}
	return cut
}

// cutVisible returns the prefix of s holding n visible characters, and
// whether any escape sequence was copied.
func cutVisible(s string, n int) (string, bool) {
	var b strings.Builder
	visible := 0
	inEscape := false
	hasAnsi := false

	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
			hasAnsi = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case visible >= n:
			return b.String(), hasAnsi
		default:
			visible++
		}
		b.WriteRune(r)
	}
	return b.String(), hasAnsi
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		width++
	}

	return width
}
