package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gxrwes/CS2QuickSetup/internal/cli"
	"github.com/gxrwes/CS2QuickSetup/internal/watch"
)

type generatedMsg struct {
	result  cli.Result
	err     error
	trigger string
}

type filesChangedMsg struct {
	files []string
}

type watchErrorMsg struct {
	err error
}

type savedMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	err error
}

// generateCmd runs one cycle in the background
func generateCmd(ctx context.Context, g Generator, trigger string) tea.Cmd {
	return func() tea.Msg {
		result, err := g.Run(ctx)
		return generatedMsg{result: result, err: err, trigger: trigger}
	}
}

// waitForChange blocks until the watcher reports a batch or an error
func waitForChange(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case files, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return filesChangedMsg{files: files}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrorMsg{err: err}
		}
	}
}

func saveCmd(path, doc string) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, err: cli.SaveDocument(path, doc)}
	}
}

func copyCmd(doc string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(doc)}
	}
}
