package filter

import (
	"github.com/sahilm/fuzzy"

	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// commandSource matches against "name commandBase"
type commandSource []types.Command

func (s commandSource) String(i int) string {
	return s[i].Name + " " + s[i].CommandBase
}

func (s commandSource) Len() int {
	return len(s)
}

// bindingSource matches against "key value"
type bindingSource []types.KeyBinding

func (s bindingSource) String(i int) string {
	return s[i].Key + " " + s[i].Value
}

func (s bindingSource) Len() int {
	return len(s)
}

// SearchCommands returns the commands fuzzily matching term, best match first
// An empty term returns every command in order
func SearchCommands(commands []types.Command, term string) []types.Command {
	if term == "" {
		return commands
	}

	matches := fuzzy.FindFrom(term, commandSource(commands))
	result := make([]types.Command, len(matches))
	for i, m := range matches {
		result[i] = commands[m.Index]
	}
	return result
}

// SearchBindings returns the key bindings fuzzily matching term, best match first
// An empty term returns every binding in order
func SearchBindings(bindings []types.KeyBinding, term string) []types.KeyBinding {
	if term == "" {
		return bindings
	}

	matches := fuzzy.FindFrom(term, bindingSource(bindings))
	result := make([]types.KeyBinding, len(matches))
	for i, m := range matches {
		result[i] = bindings[m.Index]
	}
	return result
}
