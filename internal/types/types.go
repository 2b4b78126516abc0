package types

import "time"

// KeyBinding binds a physical input (keyboard key or mouse button name) to a console action
type KeyBinding struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// Command is a console command template with positional {0}, {1}, ... placeholders
type Command struct {
	Name                 string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	CommandBase          string   `json:"commandBase" yaml:"commandBase" toml:"commandBase"`
	Parameters           []string `json:"parameters,omitempty" yaml:"parameters,omitempty" toml:"parameters,omitempty"`
	ParameterDescription []string `json:"parameterDescription,omitempty" yaml:"parameterDescription,omitempty" toml:"parameterDescription,omitempty"` // Help text only
	Enabled              *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
}

// IsEnabled reports whether the command should be emitted
// Commands without an explicit flag are enabled
func (c Command) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// SetEnabled sets an explicit enabled flag
func (c *Command) SetEnabled(enabled bool) {
	c.Enabled = &enabled
}

// GeneratedConfig is the input aggregate for one generation call
// Nil and empty slices are treated the same
type GeneratedConfig struct {
	KeyBindings    []KeyBinding `json:"keyBindings,omitempty" yaml:"keybindings,omitempty" toml:"keybindings,omitempty"`
	Commands       []Command    `json:"commands,omitempty" yaml:"commands,omitempty" toml:"commands,omitempty"`
	CustomBindings string       `json:"customBindings,omitempty" yaml:"custom_bindings,omitempty" toml:"custom_bindings,omitempty"`
}

// PreviousDocument is the persisted "previous document" slot used for diffing
type PreviousDocument struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Document    string    `json:"document"`
}

// GenerationEntry is one logged generation cycle
type GenerationEntry struct {
	ID           string    `json:"id"`
	GeneratedAt  time.Time `json:"generatedAt"`
	Version      string    `json:"version"`
	OutputPath   string    `json:"outputPath,omitempty"`
	ChangedLines int       `json:"changedLines"`
	TotalLines   int       `json:"totalLines"`
}
