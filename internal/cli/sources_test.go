package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gxrwes/CS2QuickSetup/internal/config"
	"github.com/gxrwes/CS2QuickSetup/internal/parser"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// emptyDefaults points both default categories at empty files
func emptyDefaults(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()
	return Sources{
		KeybindsFile: writeFile(t, dir, "keybinds.json", "[]"),
		CommandsFile: writeFile(t, dir, "commands.json", "[]"),
	}
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		raw     string
		want    types.KeyBinding
		wantErr bool
	}{
		{raw: "w=+forward", want: types.KeyBinding{Key: "w", Value: "+forward"}},
		{raw: " mouse4 = +use ", want: types.KeyBinding{Key: "mouse4", Value: "+use"}},
		{raw: "f=", want: types.KeyBinding{Key: "f", Value: ""}},
		{raw: "=+jump", wantErr: true},
		{raw: "space", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseBinding(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParam(t *testing.T) {
	name, params, err := ParseParam(`Minimap Zoom="Zoom"; "+radar" ;; "+use; cl_radar_scale 0.15"`)
	require.NoError(t, err)

	assert.Equal(t, "Minimap Zoom", name)
	assert.Equal(t, []string{`"Zoom"`, `"+radar"`, `"+use; cl_radar_scale 0.15"`}, params)

	_, _, err = ParseParam("no-equals")
	assert.Error(t, err)
}

func TestLoadConfig_Layers(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		KeybindsFile: writeFile(t, dir, "keybinds.json", `[{"Key":"w","Value":"+forward"},{"Key":"e","Value":"+use"}]`),
		CommandsFile: writeFile(t, dir, "commands.json", `[
			{"Name":"Net Graph","CommandBase":"cq_netgraph {0}","Parameters":["1"]},
			{"Name":"Echo","CommandBase":"echo {0}","Parameters":["hi"]}
		]`),
		SetupFile: writeFile(t, dir, "setup.yaml", `
keybindings:
  - key: E
    value: +lookatweapon
commands:
  - name: Extra
    commandBase: fps_max {0}
    parameters: ["240"]
custom_bindings: "sensitivity 1.25"
`),
		Bindings: []string{"w=+back", "f=+use"},
		Commands: []string{`alias "+radar" "+use; cl_radar_scale 0.15"`},
		Params:   []string{"net graph=0"},
		Disable:  []string{"Echo"},
	}

	cfg, err := LoadConfig(src)
	require.NoError(t, err)

	assert.Equal(t, []types.KeyBinding{
		{Key: "w", Value: "+back"},
		{Key: "e", Value: "+lookatweapon"},
		{Key: "f", Value: "+use"},
	}, cfg.KeyBindings)

	require.Len(t, cfg.Commands, 4)
	assert.Equal(t, []string{"0"}, cfg.Commands[0].Parameters)
	assert.False(t, cfg.Commands[1].IsEnabled())
	assert.Equal(t, "Extra", cfg.Commands[2].Name)
	assert.Equal(t, `alias +radar "+use; cl_radar_scale 0.15"`, parser.Render(cfg.Commands[3]))
	assert.Equal(t, "sensitivity 1.25", cfg.CustomBindings)
}

func TestLoadConfig_CommandAndCustomFiles(t *testing.T) {
	src := emptyDefaults(t)
	dir := t.TempDir()
	src.CommandFile = writeFile(t, dir, "commands.cfg", "// comment\n\nfps_max 0\nbind \"n\" \"r_cleardecals\"\n")
	src.CustomFile = writeFile(t, dir, "custom.cfg", "cl_crosshairsize 2\n")

	cfg, err := LoadConfig(src)
	require.NoError(t, err)

	require.Len(t, cfg.Commands, 2)
	assert.Equal(t, "fps_max 0", parser.Render(cfg.Commands[0]))
	assert.Equal(t, `bind n r_cleardecals`, parser.Render(cfg.Commands[1]))
	assert.Equal(t, "cl_crosshairsize 2\n", cfg.CustomBindings)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Sources)
	}{
		{name: "bad binding", edit: func(s *Sources) { s.Bindings = []string{"nokey"} }},
		{name: "unknown param target", edit: func(s *Sources) { s.Params = []string{"Missing=1"} }},
		{name: "unknown disable target", edit: func(s *Sources) { s.Disable = []string{"Missing"} }},
		{name: "missing setup", edit: func(s *Sources) { s.SetupFile = filepath.Join(t.TempDir(), "missing.yaml") }},
		{name: "missing command file", edit: func(s *Sources) { s.CommandFile = filepath.Join(t.TempDir(), "missing.cfg") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := emptyDefaults(t)
			tt.edit(&src)
			_, err := LoadConfig(src)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingDefaultsDegrade(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(Sources{
		KeybindsFile: filepath.Join(dir, "missing.json"),
		CommandsFile: filepath.Join(dir, "missing.json"),
	})
	require.NoError(t, err)

	assert.Empty(t, cfg.KeyBindings)
	assert.Empty(t, cfg.Commands)
}

func TestSourcesFromSettings(t *testing.T) {
	require.NoError(t, config.InitializeAt(t.TempDir()))
	settings := &config.Settings{KeybindsFile: "/abs/keys.json", CommandsFile: "/abs/cmds.json"}

	got := SourcesFromSettings(Sources{CommandsFile: "explicit.json"}, settings)

	assert.Equal(t, "/abs/keys.json", got.KeybindsFile)
	assert.Equal(t, "explicit.json", got.CommandsFile)
	assert.Equal(t, "", got.SetupFile)
	assert.Equal(t, []string{"/abs/keys.json", "explicit.json"}, got.Files())
}
