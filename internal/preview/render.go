package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorRed = lipgloss.AdaptiveColor{Light: "#cc0000", Dark: "#ff5f5f"}
)

// Style controls how Render colours lines
type Style struct {
	Changed   lipgloss.Style
	Unchanged lipgloss.Style
}

// DefaultStyle renders changed lines in red and leaves the rest untouched
func DefaultStyle() Style {
	return Style{
		Changed:   lipgloss.NewStyle().Foreground(colorRed),
		Unchanged: lipgloss.NewStyle(),
	}
}

// Render joins the lines for a terminal, one output line per input line
func Render(lines []Line, style Style) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if l.Changed {
			b.WriteString(style.Changed.Render(l.Text))
		} else {
			b.WriteString(style.Unchanged.Render(l.Text))
		}
	}
	return b.String()
}

// RenderPlain marks changed lines with "+ " and pads unchanged lines with two spaces
func RenderPlain(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		if l.Changed {
			b.WriteString("+ ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
