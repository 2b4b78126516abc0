package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gxrwes/CS2QuickSetup/internal/preview"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed   = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorGray  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan  = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleGutter = lipgloss.NewStyle().
			Foreground(colorGray).
			Width(5).
			Align(lipgloss.Right).
			MarginRight(1)
)

// renderMain renders the title, the document and the status bar
func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.documentView.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) renderTitle() string {
	title := styleTitle.Render("CS2 QuickSetup preview")

	var info []string
	if m.outputPath != "" {
		info = append(info, m.outputPath)
	}
	if m.result != nil {
		info = append(info, fmt.Sprintf("%d lines, %d changed", len(m.result.Lines), m.result.Changed()))
	}
	if m.changedOnly {
		info = append(info, "changed only")
	}
	if m.watcher != nil {
		info = append(info, "watching")
	}

	if len(info) == 0 {
		return title
	}
	return title + "  " + styleSubtle.Render(strings.Join(info, " | "))
}

func (m *Model) renderStatus() string {
	switch {
	case m.errorMsg != "":
		return styleError.Render(m.errorMsg)
	case strings.Contains(m.statusMsg, "saved") || strings.Contains(m.statusMsg, "copied"):
		return styleSuccess.Render(m.statusMsg)
	default:
		return m.statusMsg
	}
}

// updateViewport sizes the document viewport to the window
func (m *Model) updateViewport() {
	helpHeight := lipgloss.Height(m.help.View(m.keys))

	m.documentView.Width = m.width
	m.documentView.Height = max(1, m.height-HeaderHeight-StatusBarHeight-helpHeight)
}

// updateDocumentView refreshes the viewport content from the last result
func (m *Model) updateDocumentView() {
	if m.result == nil {
		m.documentView.SetContent("")
		return
	}
	m.documentView.SetContent(renderLines(m.result.Lines, m.changedOnly, preview.DefaultStyle()))
}

// renderLines numbers each line and highlights changed ones
func renderLines(lines []preview.Line, changedOnly bool, style preview.Style) string {
	var b strings.Builder
	shown := 0
	for i, line := range lines {
		if changedOnly && !line.Changed {
			continue
		}
		if shown > 0 {
			b.WriteString("\n")
		}
		shown++

		b.WriteString(styleGutter.Render(fmt.Sprintf("%d", i+1)))
		if line.Changed {
			b.WriteString(style.Changed.Render(line.Text))
		} else {
			b.WriteString(style.Unchanged.Render(line.Text))
		}
	}

	if changedOnly && shown == 0 {
		return styleSubtle.Render("No changes since the previous document")
	}
	return b.String()
}
