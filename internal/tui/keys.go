package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings for the preview
type KeyMap struct {
	Regenerate  key.Binding
	ChangedOnly key.Binding
	Save        key.Binding
	Copy        key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Regenerate, k.ChangedOnly, k.Save, k.Copy, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Regenerate, k.ChangedOnly, k.Save, k.Copy},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Regenerate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "regenerate"),
		),
		ChangedOnly: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "changed only"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// handleKeyPress routes a key press to its action
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Regenerate):
		return m.requestGenerate("manual")

	case key.Matches(msg, m.keys.ChangedOnly):
		m.changedOnly = !m.changedOnly
		if m.changedOnly {
			m.setStatus("Showing changed lines only")
		} else {
			m.setStatus("Showing all lines")
		}
		m.updateDocumentView()

	case key.Matches(msg, m.keys.Save):
		if m.result == nil {
			m.setError("Nothing to save yet")
			return nil
		}
		if m.outputPath == "" {
			m.setError("No output file configured")
			return nil
		}
		return saveCmd(m.outputPath, m.result.Document)

	case key.Matches(msg, m.keys.Copy):
		if m.result == nil {
			m.setError("Nothing to copy yet")
			return nil
		}
		return copyCmd(m.result.Document)

	case key.Matches(msg, m.keys.Up):
		m.documentView.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.documentView.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.documentView.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.documentView.HalfViewDown()
	case key.Matches(msg, m.keys.Top):
		m.documentView.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.documentView.GotoBottom()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateViewport()
	}

	return nil
}
