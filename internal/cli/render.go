// Package cli renders budgetctl output for the terminal.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorBorder = lipgloss.Color("#575653")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorText   = lipgloss.Color("#FFFCF0")
	ColorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	footerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	borderStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Table is a bordered text table. Unless Align says otherwise the first
// column is left aligned and the rest are right aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Footer is an optional closing row, set off by a rule.
	Footer []string
	Align  []lipgloss.Position
}

// RenderTable renders t with rounded borders. An empty table renders as "".
func RenderTable(t Table) string {
	cols := max(len(t.Headers), len(t.Footer))
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}
	measure(t.Footer)

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(t.row(t.Headers, widths, headerStyle))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, r := range t.Rows {
		b.WriteString(t.row(r, widths, valueStyle))
	}
	if len(t.Footer) > 0 {
		b.WriteString(rule(widths, "├", "┼", "┤"))
		b.WriteString(t.row(t.Footer, widths, footerStyle))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

// Muted renders secondary text such as notes under a table.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

func (t Table) align(col int) lipgloss.Position {
	if col < len(t.Align) {
		return t.Align[col]
	}
	if col == 0 {
		return lipgloss.Left
	}
	return lipgloss.Right
}

func (t Table) row(cells []string, widths []int, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(borderStyle.Render("│"))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(style.Render(" " + lipgloss.PlaceHorizontal(w, t.align(i), cell) + " "))
		b.WriteString(borderStyle.Render("│"))
	}
	b.WriteString("\n")
	return b.String()
}

func rule(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return borderStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
}
