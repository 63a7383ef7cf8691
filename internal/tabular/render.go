package tabular

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render lays the table out as right-aligned columns separated by two
// spaces, header line first. An empty table renders as "".
func Render(t *Table) string {
	if t == nil || len(t.Headers) == 0 {
		return ""
	}

	lines := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = flatten(h)
	}
	lines = append(lines, header)
	for _, r := range t.Rows {
		line := make([]string, len(r))
		for i, c := range r {
			line[i] = flatten(c.Text())
		}
		lines = append(lines, line)
	}

	widths := make([]int, len(t.Headers))
	for _, line := range lines {
		for i, s := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(s))
		}
	}

	var b strings.Builder
	for n, line := range lines {
		if n > 0 {
			b.WriteByte('\n')
		}
		for i, s := range line {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(runewidth.FillLeft(s, widths[i]))
		}
	}
	return b.String()
}

// flatten keeps multi-line cell values on one rendered row.
func flatten(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}
