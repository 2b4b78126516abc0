package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_QuotedTokens(t *testing.T) {
	cmd, ok := ParseCommand(`alias "+radar" "+use; cl_radar_always_centered 1; cl_radar_scale 0.15"`).Get()
	require.True(t, ok)

	assert.Equal(t, "alias", cmd.CommandBase)
	require.Len(t, cmd.Parameters, 2)
	assert.Equal(t, "+radar", cmd.Parameters[0])
	assert.Equal(t, "+use; cl_radar_always_centered 1; cl_radar_scale 0.15", cmd.Parameters[1])
	assert.Empty(t, cmd.Name)
	assert.Nil(t, cmd.ParameterDescription)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		present    bool
		base       string
		parameters []string
	}{
		{name: "empty line", input: "", present: false},
		{name: "whitespace only", input: " \t  ", present: false},
		{name: "single token", input: "fps_max", present: true, base: "fps_max", parameters: []string{}},
		{name: "plain tokens", input: "bind  i\t+radar", present: true, base: "bind", parameters: []string{"i", "+radar"}},
		{name: "quoted base", input: `"say hi" there`, present: true, base: "say hi", parameters: []string{"there"}},
		{name: "empty quotes are a plain token", input: `echo ""`, present: true, base: "echo", parameters: []string{`""`}},
		{name: "unterminated quote", input: `echo "abc def`, present: true, base: "echo", parameters: []string{`"abc`, "def"}},
		{name: "embedded quote", input: `echo "a"b"`, present: true, base: "echo", parameters: []string{"a", `b"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := ParseCommand(tt.input).Get()
			require.Equal(t, tt.present, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.base, cmd.CommandBase)
			assert.Equal(t, tt.parameters, cmd.Parameters)
		})
	}
}

func TestParseCommands_SkipsBlankAndComments(t *testing.T) {
	text := "// radar\nalias \"+radar\" \"+use\"\n\n  bind i +radar\r\n"

	cmds := ParseCommands(text, "//")

	require.Len(t, cmds, 2)
	assert.Equal(t, "alias", cmds[0].CommandBase)
	assert.Equal(t, []string{"+radar", "+use"}, cmds[0].Parameters)
	assert.Equal(t, "bind", cmds[1].CommandBase)
	assert.Equal(t, []string{"i", "+radar"}, cmds[1].Parameters)
}
