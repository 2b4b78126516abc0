package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gxrwes/CS2QuickSetup/internal/watch"
)

// Options configures the preview
type Options struct {
	Generator  Generator
	Watcher    *watch.Watcher // nil disables automatic regeneration
	OutputPath string         // target of the save key; empty disables saving
}

// New creates a new TUI model
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Model{
		ctx:          ctx,
		generator:    opts.Generator,
		watcher:      opts.Watcher,
		outputPath:   opts.OutputPath,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		documentView: viewport.New(DefaultWidth, DefaultHeight),
		width:        DefaultWidth,
		height:       DefaultHeight,
	}
	m.updateViewport()

	return m
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)

	// Pass a pointer since Update uses a pointer receiver
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
