package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gxrwes/CS2QuickSetup/internal/cli"
	"github.com/gxrwes/CS2QuickSetup/internal/log"
	"github.com/gxrwes/CS2QuickSetup/internal/watch"
)

// Generator runs one generation cycle
type Generator interface {
	Run(ctx context.Context) (cli.Result, error)
}

// Model represents the TUI state
type Model struct {
	ctx       context.Context
	generator Generator
	watcher   *watch.Watcher
	keys      KeyMap
	help      help.Model

	outputPath string

	// Generation state
	result     *cli.Result
	generating bool
	pending    bool // regenerate once the running cycle finishes
	cycles     int

	// UI state
	documentView viewport.Model
	changedOnly  bool
	width        int
	height       int
	statusMsg    string
	errorMsg     string
	quitting     bool
}

// Init starts the first cycle and, when watching, waits for file changes
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.requestGenerate("startup")}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewport()

	case generatedMsg:
		m.generating = false
		if msg.err != nil {
			log.Error("Generation failed", "trigger", msg.trigger, "error", msg.err)
			m.setError(fmt.Sprintf("Generation failed: %v", msg.err))
		} else {
			m.cycles++
			result := msg.result
			m.result = &result
			m.setStatus(fmt.Sprintf("Generated %d lines, %d changed (%s)", len(result.Lines), result.Changed(), msg.trigger))
			m.updateDocumentView()
		}
		if m.pending {
			m.pending = false
			cmd = m.requestGenerate("queued")
		}

	case filesChangedMsg:
		log.Debug("Input files changed", "files", msg.files)
		cmd = tea.Batch(m.requestGenerate(describeFiles(msg.files)), waitForChange(m.watcher))

	case watchErrorMsg:
		m.setError(fmt.Sprintf("Watch failed: %v", msg.err))
		cmd = waitForChange(m.watcher)

	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
		} else {
			m.setStatus(fmt.Sprintf("Document saved to %s", msg.path))
		}

	case copiedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.setStatus("Document copied to clipboard")
		}
	}

	return m, cmd
}

// View renders the current state
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderMain()
}

// Result returns the last successful generation, if any
func (m *Model) Result() (cli.Result, bool) {
	if m.result == nil {
		return cli.Result{}, false
	}
	return *m.result, true
}

// requestGenerate starts a cycle, or queues one if a cycle is already running
func (m *Model) requestGenerate(trigger string) tea.Cmd {
	if m.generating {
		m.pending = true
		return nil
	}
	m.generating = true
	m.setStatus("Generating...")
	return generateCmd(m.ctx, m.generator, trigger)
}

func (m *Model) setStatus(msg string) {
	m.errorMsg = ""
	m.statusMsg = truncate(msg)
}

func (m *Model) setError(msg string) {
	m.errorMsg = truncate(msg)
}

func truncate(s string) string {
	if len(s) > StatusMaxLength {
		return s[:StatusMaxLength-3] + "..."
	}
	return s
}

func describeFiles(files []string) string {
	if len(files) == 0 {
		return "file change"
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return "changed: " + strings.Join(names, ", ")
}
