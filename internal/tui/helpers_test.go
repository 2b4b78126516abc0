package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gxrwes/CS2QuickSetup/internal/cli"
	"github.com/gxrwes/CS2QuickSetup/internal/preview"
)

// scriptedGenerator diffs a fixed sequence of documents
type scriptedGenerator struct {
	docs   []string
	differ *preview.Differ
	calls  int
	err    error
}

func (g *scriptedGenerator) Run(ctx context.Context) (cli.Result, error) {
	if g.err != nil {
		return cli.Result{}, g.err
	}
	if g.calls >= len(g.docs) {
		return cli.Result{}, errors.New("no more documents")
	}
	if g.differ == nil {
		g.differ = preview.NewDiffer("")
	}
	doc := g.docs[g.calls]
	g.calls++
	return cli.Result{Document: doc, Lines: g.differ.Preview(doc)}, nil
}

// CreateTestModel creates a Model backed by a scripted generator
func CreateTestModel(t *testing.T, docs ...string) (*Model, *scriptedGenerator) {
	t.Helper()
	g := &scriptedGenerator{docs: docs}
	m := New(context.Background(), Options{Generator: g})
	return m, g
}

// runCmd executes cmd and feeds the resulting message back into the model
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := m.Update(cmd())
	return next
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
