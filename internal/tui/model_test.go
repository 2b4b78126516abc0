package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gxrwes/CS2QuickSetup/internal/cli"
	"github.com/gxrwes/CS2QuickSetup/internal/preview"
)

func TestNew_InitializesDefaults(t *testing.T) {
	m, _ := CreateTestModel(t)

	AssertModelField(t, "changedOnly", m.changedOnly, false)
	AssertModelField(t, "generating", m.generating, false)
	AssertModelField(t, "width", m.width, DefaultWidth)

	if _, ok := m.Result(); ok {
		t.Error("a new model should have no result")
	}
	if m.Init() == nil {
		t.Error("Init should start the first cycle")
	}
}

func TestModel_GenerateMarksChangedLines(t *testing.T) {
	m, _ := CreateTestModel(t, "a\nb\nc\n", "a\nx\nc\n")

	runCmd(t, m, m.requestGenerate("startup"))
	result, ok := m.Result()
	if !ok {
		t.Fatal("expected a result after the first cycle")
	}
	AssertModelField(t, "first changed", result.Changed(), 3)

	runCmd(t, m, m.handleKeyPress(keyPress("r")))
	result, _ = m.Result()
	AssertModelField(t, "second changed", result.Changed(), 1)
	AssertModelField(t, "cycles", m.cycles, 2)

	if !strings.Contains(m.statusMsg, "1 changed") {
		t.Errorf("statusMsg = %q, want the changed count", m.statusMsg)
	}
}

func TestModel_RegenerateWhileRunningIsQueued(t *testing.T) {
	m, g := CreateTestModel(t, "a\n", "b\n")

	first := m.requestGenerate("startup")
	if second := m.requestGenerate("manual"); second != nil {
		t.Error("a second request during a cycle should not start another")
	}
	AssertModelField(t, "pending", m.pending, true)

	queued := runCmd(t, m, first)
	if queued == nil {
		t.Fatal("the queued cycle should start once the first finishes")
	}
	AssertModelField(t, "pending after first", m.pending, false)

	runCmd(t, m, queued)
	AssertModelField(t, "generator calls", g.calls, 2)
	AssertModelField(t, "generating", m.generating, false)
}

func TestModel_GenerationError(t *testing.T) {
	m, g := CreateTestModel(t)
	g.err = errors.New("boom")

	runCmd(t, m, m.requestGenerate("startup"))

	if !strings.Contains(m.errorMsg, "boom") {
		t.Errorf("errorMsg = %q, want it to mention the failure", m.errorMsg)
	}
	AssertModelField(t, "generating", m.generating, false)
}

func TestModel_ChangedOnlyToggle(t *testing.T) {
	m, _ := CreateTestModel(t, "keep\nold\n", "keep\nnew\n")
	runCmd(t, m, m.requestGenerate("startup"))
	runCmd(t, m, m.requestGenerate("manual"))

	m.Update(keyPress("tab"))
	AssertModelField(t, "changedOnly", m.changedOnly, true)

	view := m.View()
	if !strings.Contains(view, "new") {
		t.Error("changed line should be shown")
	}
	if strings.Contains(view, "keep") {
		t.Error("unchanged line should be hidden")
	}

	m.Update(keyPress("tab"))
	AssertModelField(t, "changedOnly", m.changedOnly, false)
	if !strings.Contains(m.View(), "keep") {
		t.Error("unchanged line should be shown again")
	}
}

func TestModel_SaveWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoexec.cfg")
	g := &scriptedGenerator{docs: []string{"bind \"w\" \"+forward\";\n"}}
	m := New(context.Background(), Options{Generator: g, OutputPath: path})

	runCmd(t, m, m.requestGenerate("startup"))
	runCmd(t, m, m.handleKeyPress(keyPress("s")))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("document not saved: %v", err)
	}
	if string(data) != g.docs[0] {
		t.Errorf("saved = %q, want %q", data, g.docs[0])
	}
	if !strings.Contains(m.statusMsg, "saved") {
		t.Errorf("statusMsg = %q, want a save confirmation", m.statusMsg)
	}
}

func TestModel_SaveWithoutResultOrPath(t *testing.T) {
	m, _ := CreateTestModel(t, "a\n")

	if cmd := m.handleKeyPress(keyPress("s")); cmd != nil {
		t.Error("save before the first cycle should not run")
	}
	if m.errorMsg == "" {
		t.Error("expected an error message")
	}

	runCmd(t, m, m.requestGenerate("startup"))
	if cmd := m.handleKeyPress(keyPress("s")); cmd != nil {
		t.Error("save without an output path should not run")
	}
	if !strings.Contains(m.errorMsg, "No output file") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestModel_FilesChangedRegenerates(t *testing.T) {
	m, g := CreateTestModel(t, "a\n", "b\n")
	runCmd(t, m, m.requestGenerate("startup"))

	_, cmd := m.Update(filesChangedMsg{files: []string{"/tmp/keybinds.json"}})
	if cmd == nil {
		t.Fatal("a file change should trigger a cycle")
	}
	if !m.generating {
		t.Error("model should be generating after a file change")
	}

	runCmd(t, m, generateCmd(m.ctx, g, "changed: keybinds.json"))
	if !strings.Contains(m.statusMsg, "keybinds.json") {
		t.Errorf("statusMsg = %q, want the changed file name", m.statusMsg)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := CreateTestModel(t)

	cmd := m.handleKeyPress(keyPress("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	AssertModelField(t, "view after quit", m.View(), "")
}

func TestModel_WindowResize(t *testing.T) {
	m, _ := CreateTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	AssertModelField(t, "width", m.documentView.Width, 120)
	if m.documentView.Height <= 0 || m.documentView.Height >= 40 {
		t.Errorf("viewport height = %d, want room for the title and status", m.documentView.Height)
	}
}

func TestModel_WithCycle(t *testing.T) {
	dir := t.TempDir()
	keybinds := filepath.Join(dir, "keybinds.json")
	commands := filepath.Join(dir, "commands.json")
	for _, p := range []string{keybinds, commands} {
		if err := os.WriteFile(p, []byte("[]"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cycle := &cli.Cycle{
		Sources: cli.Sources{KeybindsFile: keybinds, CommandsFile: commands, Bindings: []string{"w=+forward"}},
		Now:     func() time.Time { return time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC) },
	}
	m := New(context.Background(), Options{Generator: cycle})

	runCmd(t, m, m.requestGenerate("startup"))
	result, ok := m.Result()
	if !ok {
		t.Fatalf("cycle failed: %s", m.errorMsg)
	}
	if !strings.Contains(result.Document, `bind "w" "+forward";`) {
		t.Error("document should contain the binding")
	}

	runCmd(t, m, m.requestGenerate("manual"))
	result, _ = m.Result()
	AssertModelField(t, "changed on identical regenerate", result.Changed(), 0)
}

func TestRenderLines(t *testing.T) {
	lines := []preview.Line{{Text: "same"}, {Text: "diff", Changed: true}}
	style := preview.Style{}

	all := renderLines(lines, false, style)
	if !strings.Contains(all, "same") || !strings.Contains(all, "diff") {
		t.Errorf("all lines = %q", all)
	}
	if !strings.Contains(all, "2") {
		t.Error("line numbers should be shown")
	}

	none := renderLines([]preview.Line{{Text: "same"}}, true, style)
	if !strings.Contains(none, "No changes") {
		t.Errorf("changed-only with no changes = %q", none)
	}
}
