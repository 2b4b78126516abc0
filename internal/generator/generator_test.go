package generator

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

var testStamp = Stamp{
	Version:     "1.0.2",
	Author:      "Wes Stillwell - stillwellstudios.com",
	GeneratedAt: time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC),
}

func splitLines(doc string) []string {
	return strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
}

func TestGenerate_ContainsExpectedSections(t *testing.T) {
	cfg := &types.GeneratedConfig{
		KeyBindings: []types.KeyBinding{
			{Key: "w", Value: "+forward"},
			{Key: "s", Value: "+back"},
		},
		Commands: []types.Command{
			{Name: "Test Echo", CommandBase: "echo {0}", Parameters: []string{`"Hello World"`}},
			{
				Name:        "Test Alias",
				CommandBase: "alias {0} {1}",
				Parameters:  []string{`"+radar"`, `"+use; cl_radar_always_centered 1; cl_radar_scale 0.15"`},
			},
		},
	}

	output := Generate(cfg, testStamp)

	assert.Contains(t, output, "CS2 Autoexec")
	assert.Contains(t, output, "Graphics Settings")
	assert.Contains(t, output, "Sound Settings")
	assert.Contains(t, output, `bind "w" "+forward";`)
	assert.Contains(t, output, `bind "s" "+back";`)
	assert.Contains(t, output, `echo "Hello World";`)
	assert.Contains(t, output, `alias "+radar" "+use; cl_radar_always_centered 1; cl_radar_scale 0.15";`)
	assert.NotContains(t, output, NoKeyBindingsMessage)
	assert.NotContains(t, output, NoCommandsMessage)
}

func TestGenerate_EndToEnd(t *testing.T) {
	cfg := &types.GeneratedConfig{
		KeyBindings: []types.KeyBinding{{Key: "w", Value: "+forward"}},
		Commands: []types.Command{
			{Name: "Test Echo", CommandBase: "echo {0}", Parameters: []string{`"Hello World"`}},
		},
	}

	output := Generate(cfg, testStamp)
	lines := splitLines(output)

	assert.Contains(t, lines, `bind "w" "+forward";`)
	assert.Contains(t, lines, `echo "Hello World";`)
}

func TestGenerate_FallbackMessages(t *testing.T) {
	tests := []struct {
		name string
		cfg  *types.GeneratedConfig
	}{
		{name: "empty lists", cfg: &types.GeneratedConfig{KeyBindings: []types.KeyBinding{}, Commands: []types.Command{}}},
		{name: "nil lists", cfg: &types.GeneratedConfig{}},
		{name: "nil config", cfg: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := Generate(tt.cfg, testStamp)

			assert.Contains(t, output, CommentChar+" No key bindings configured")
			assert.Contains(t, output, CommentChar+" No commands configured")
			assert.NotContains(t, output, "\nbind ")
		})
	}
}

func TestGenerate_NilAndEmptyAreIdentical(t *testing.T) {
	nilCfg := Generate(&types.GeneratedConfig{}, testStamp)
	emptyCfg := Generate(&types.GeneratedConfig{KeyBindings: []types.KeyBinding{}, Commands: []types.Command{}}, testStamp)

	assert.Equal(t, nilCfg, emptyCfg)
}

func TestGenerate_EmptyInputOnlyAddsFallbackLines(t *testing.T) {
	withFallbacks := splitLines(Generate(&types.GeneratedConfig{}, testStamp))
	withoutFallbacks := splitLines(GenerateWithOptions(&types.GeneratedConfig{
		KeyBindings: []types.KeyBinding{{Key: "x", Value: "y"}},
		Commands:    []types.Command{{CommandBase: "z"}},
	}, testStamp, Options{}))

	var extra []string
	for _, line := range withFallbacks {
		if !contains(withoutFallbacks, line) {
			extra = append(extra, line)
		}
	}

	assert.Equal(t, []string{NoKeyBindingsMessage, NoCommandsMessage}, extra)
}

func contains(lines []string, target string) bool {
	for _, l := range lines {
		if l == target {
			return true
		}
	}
	return false
}

func TestGenerate_PartialSections(t *testing.T) {
	cfg := &types.GeneratedConfig{
		KeyBindings: []types.KeyBinding{{Key: "d", Value: "+right"}},
	}

	output := Generate(cfg, testStamp)

	assert.Contains(t, output, `bind "d" "+right"`)
	assert.Contains(t, output, NoCommandsMessage)
	assert.NotContains(t, output, NoKeyBindingsMessage)
}

func TestGenerate_MisconfiguredCommandOutputsBase(t *testing.T) {
	cfg := &types.GeneratedConfig{
		Commands: []types.Command{
			{Name: "Misconfigured Command", CommandBase: "alias {0} {1} {2}", Parameters: []string{`"+radar"`, `"+use"`}},
			{Name: "After", CommandBase: "echo {0}", Parameters: []string{"ok"}},
		},
	}

	output := Generate(cfg, testStamp)

	assert.Contains(t, output, "alias {0} {1} {2};")
	assert.Contains(t, output, "echo ok;")
}

func TestGenerate_HeaderContainsVersionAndDate(t *testing.T) {
	output := Generate(&types.GeneratedConfig{}, testStamp)
	lines := splitLines(output)

	assert.Contains(t, output, "CS2 Autoexec")
	assert.Contains(t, output, `echo "Generated by`)
	assert.Contains(t, output, "v1.0.2")
	assert.Contains(t, output, `echo "Generated on`)
	assert.Contains(t, lines, `echo "Generated on 2026-10-18 14:30:00";`)
	assert.True(t, strings.HasPrefix(lines[0], CommentChar))
}

func TestGenerate_MultiLineCommandStaysContiguous(t *testing.T) {
	minimap := types.Command{
		Name:        "Minimap Zoom",
		CommandBase: "echo {0}\nalias {1} {2}\nalias {3} {4}\nbind {5} {6}",
		Parameters: []string{
			`"Setting Minimap Zoom"`,
			`"+radar"`,
			`"+use; cl_radar_always_centered 1; cl_radar_scale 0.15"`,
			`"-radar"`,
			`"-use; cl_radar_always_centered 0; cl_radar_scale 0.90"`,
			`"i"`,
			`"+radar"`,
		},
	}
	cfg := &types.GeneratedConfig{
		Commands: []types.Command{
			{Name: "Before", CommandBase: "echo before"},
			minimap,
			{Name: "After", CommandBase: "echo after"},
		},
	}

	lines := splitLines(Generate(cfg, testStamp))

	expected := []string{
		CommentChar + " Before",
		"echo before;",
		CommentChar + " Minimap Zoom",
		`echo "Setting Minimap Zoom";`,
		`alias "+radar" "+use; cl_radar_always_centered 1; cl_radar_scale 0.15";`,
		`alias "-radar" "-use; cl_radar_always_centered 0; cl_radar_scale 0.90";`,
		`bind "i" "+radar";`,
		CommentChar + " After",
		"echo after;",
	}

	start := -1
	for i, l := range lines {
		if l == expected[0] {
			start = i
			break
		}
	}
	require.GreaterOrEqual(t, start, 0)
	require.GreaterOrEqual(t, len(lines), start+len(expected))
	assert.Equal(t, expected, lines[start:start+len(expected)])
}

func TestGenerate_DisabledCommandsAreSkipped(t *testing.T) {
	off := false
	on := true
	cfg := &types.GeneratedConfig{
		Commands: []types.Command{
			{Name: "Off", CommandBase: "echo off", Enabled: &off},
			{Name: "On", CommandBase: "echo on", Enabled: &on},
			{Name: "Default", CommandBase: "echo default"},
		},
	}

	output := Generate(cfg, testStamp)

	assert.NotContains(t, output, "echo off")
	assert.Contains(t, output, "echo on;")
	assert.Contains(t, output, "echo default;")
}

func TestGenerate_AllDisabledYieldsFallback(t *testing.T) {
	off := false
	cfg := &types.GeneratedConfig{
		Commands: []types.Command{{Name: "Off", CommandBase: "echo off", Enabled: &off}},
	}

	output := Generate(cfg, testStamp)

	assert.Contains(t, output, NoCommandsMessage)
	assert.NotContains(t, output, "echo off")
}

func TestGenerate_CustomBindingsAppendedLast(t *testing.T) {
	cfg := &types.GeneratedConfig{
		Commands:       []types.Command{{Name: "First", CommandBase: "echo first"}},
		CustomBindings: "bind \"f\" \"+lookatweapon\"\r\nsensitivity 1.25;\n",
	}

	lines := splitLines(Generate(cfg, testStamp))

	n := len(lines)
	// Document ends with a newline, so the last element is empty
	require.GreaterOrEqual(t, n, 4)
	assert.Equal(t, "", lines[n-1])
	assert.Equal(t, "sensitivity 1.25;", lines[n-2])
	assert.Equal(t, `bind "f" "+lookatweapon";`, lines[n-3])
	assert.Equal(t, CommentChar+" "+CustomBindingsName, lines[n-4])
}

func TestGenerate_CustomBindingsSuppressCommandFallback(t *testing.T) {
	output := Generate(&types.GeneratedConfig{CustomBindings: "cl_crosshairsize 2"}, testStamp)

	assert.NotContains(t, output, NoCommandsMessage)
	assert.Contains(t, output, "cl_crosshairsize 2;")
}

func TestGenerate_BlankCustomBindingsIgnored(t *testing.T) {
	output := Generate(&types.GeneratedConfig{CustomBindings: " \n\t "}, testStamp)

	assert.Contains(t, output, NoCommandsMessage)
	assert.NotContains(t, output, CustomBindingsName)
}

func TestGenerate_DuplicateKeysEmittedInOrder(t *testing.T) {
	cfg := &types.GeneratedConfig{
		KeyBindings: []types.KeyBinding{
			{Key: "mouse1", Value: "+attack"},
			{Key: "mouse1", Value: "+attack2"},
		},
	}

	output := Generate(cfg, testStamp)

	first := strings.Index(output, `bind "mouse1" "+attack";`)
	second := strings.Index(output, `bind "mouse1" "+attack2";`)
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
}

func TestGenerate_LinesEndWithSemicolon(t *testing.T) {
	cfg := &types.GeneratedConfig{
		KeyBindings: []types.KeyBinding{{Key: "x", Value: "+example"}},
		Commands: []types.Command{
			{Name: "Test", CommandBase: `echo "{0}"`, Parameters: []string{`"Test Value"`}},
		},
		CustomBindings: "cl_crosshairsize 2",
	}

	assertTerminated(t, Generate(cfg, testStamp))
}

func TestGenerate_LineBreaksInFieldsStayTerminated(t *testing.T) {
	cfg := &types.GeneratedConfig{
		KeyBindings: []types.KeyBinding{{Key: "w", Value: "+forward\nsensitivity 2"}},
		Commands:    []types.Command{{Name: "Radar\r\nbind x y", CommandBase: "cl_radar_scale 0.4"}},
	}

	output := Generate(cfg, testStamp)

	assert.Contains(t, output, `bind "w" "+forward sensitivity 2";`)
	assert.Contains(t, output, "// Radar\n// bind x y\ncl_radar_scale 0.4;")
	assert.NotContains(t, output, "\nbind x y")
	assertTerminated(t, output)
}

func TestGenerate_CRLF(t *testing.T) {
	output := GenerateWithOptions(&types.GeneratedConfig{}, testStamp, Options{LineEnding: LineEndingCRLF})

	assert.Contains(t, output, "\r\n")
	assert.NotRegexp(t, regexp.MustCompile(`[^\r]\n`), output)
	assertTerminated(t, output)
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := &types.GeneratedConfig{KeyBindings: []types.KeyBinding{{Key: "w", Value: "+forward"}}}

	assert.Equal(t, Generate(cfg, testStamp), Generate(cfg, testStamp))
}

func TestTerminate(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"fps_max 0", "fps_max 0;"},
		{"fps_max 0;", "fps_max 0;"},
		{"fps_max 0  ", "fps_max 0;"},
		{"// comment", "// comment"},
		{"  // indented comment", "  // indented comment"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.out, Terminate(tt.in))
		})
	}
}

func TestGenerate_TerminationProperty(t *testing.T) {
	token := rapid.StringMatching(`[a-z0-9_+\-" ;{}\n]{0,12}`)

	rapid.Check(t, func(rt *rapid.T) {
		bindings := rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) types.KeyBinding {
			return types.KeyBinding{Key: token.Draw(rt, "key"), Value: token.Draw(rt, "value")}
		}), 0, 5).Draw(rt, "bindings")

		commands := rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) types.Command {
			lines := rapid.SliceOfN(token, 1, 3).Draw(rt, "lines")
			return types.Command{
				Name:        token.Draw(rt, "name"),
				CommandBase: strings.Join(lines, "\n"),
				Parameters:  rapid.SliceOfN(token, 0, 3).Draw(rt, "params"),
			}
		}), 0, 5).Draw(rt, "commands")

		cfg := &types.GeneratedConfig{
			KeyBindings:    bindings,
			Commands:       commands,
			CustomBindings: token.Draw(rt, "custom"),
		}

		assertTerminated(rt, Generate(cfg, testStamp))
	})
}

func assertTerminated(t assert.TestingT, doc string) {
	for _, line := range splitLines(doc) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, CommentChar) {
			continue
		}
		assert.True(t, strings.HasSuffix(trimmed, ";"), "line %q should end with a semicolon", trimmed)
	}
}

func TestBoilerplateSections(t *testing.T) {
	names := BoilerplateSections()
	require.NotEmpty(t, names)

	output := Generate(&types.GeneratedConfig{}, testStamp)
	for _, name := range names {
		assert.Contains(t, output, CommentChar+" "+name)
	}
}
