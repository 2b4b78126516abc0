package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gxrwes/CS2QuickSetup/internal/config"
	"github.com/gxrwes/CS2QuickSetup/internal/defaults"
	"github.com/gxrwes/CS2QuickSetup/internal/generator"
	"github.com/gxrwes/CS2QuickSetup/internal/log"
	"github.com/gxrwes/CS2QuickSetup/internal/parser"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// Sources names every input of a generation cycle
type Sources struct {
	KeybindsFile string // empty for the built-in list
	CommandsFile string // empty for the built-in list
	SetupFile    string

	Bindings    []string // key=value
	Commands    []string // raw command lines
	CommandFile string   // one raw command per line
	Params      []string // Name=v1;v2
	Disable     []string // command names
	CustomFile  string
}

// SourcesFromSettings fills the file inputs from settings, keeping explicit values
func SourcesFromSettings(s Sources, settings *config.Settings) Sources {
	if settings == nil {
		return s
	}
	if s.KeybindsFile == "" {
		s.KeybindsFile = config.ResolvePath(settings.KeybindsFile)
	}
	if s.CommandsFile == "" {
		s.CommandsFile = config.ResolvePath(settings.CommandsFile)
	}
	if s.SetupFile == "" {
		s.SetupFile = config.ResolvePath(settings.SetupFile)
	}
	return s
}

// Files returns the input files a watcher should follow
func (s Sources) Files() []string {
	var files []string
	for _, f := range []string{s.KeybindsFile, s.CommandsFile, s.SetupFile, s.CommandFile, s.CustomFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// LoadConfig assembles the generated config from defaults, the setup file and overrides
// Later layers win: defaults, then setup, then flags
func LoadConfig(s Sources) (*types.GeneratedConfig, error) {
	d := defaults.Load(s.KeybindsFile, s.CommandsFile)
	cfg := &types.GeneratedConfig{
		KeyBindings: d.Bindings,
		Commands:    d.Commands,
	}

	if s.SetupFile != "" {
		setup, err := defaults.LoadSetup(s.SetupFile)
		if err != nil {
			return nil, err
		}
		for _, kb := range setup.KeyBindings {
			setBinding(cfg, kb)
		}
		for _, cmd := range setup.Commands {
			setCommand(cfg, cmd)
		}
		if setup.CustomBindings != "" {
			cfg.CustomBindings = setup.CustomBindings
		}
	}

	if err := applyOverrides(cfg, s); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyOverrides(cfg *types.GeneratedConfig, s Sources) error {
	for _, raw := range s.Bindings {
		kb, err := ParseBinding(raw)
		if err != nil {
			return err
		}
		setBinding(cfg, kb)
	}

	for _, line := range s.Commands {
		cmd, ok := parser.ParseCommand(line).Get()
		if !ok {
			log.Warn("Ignoring blank command")
			continue
		}
		cfg.Commands = append(cfg.Commands, parser.AsTemplate(cmd))
	}

	if s.CommandFile != "" {
		data, err := os.ReadFile(s.CommandFile)
		if err != nil {
			return fmt.Errorf("failed to read command file: %w", err)
		}
		for _, cmd := range parser.ParseCommands(string(data), generator.CommentChar) {
			cfg.Commands = append(cfg.Commands, parser.AsTemplate(cmd))
		}
	}

	for _, raw := range s.Params {
		name, params, err := ParseParam(raw)
		if err != nil {
			return err
		}
		cmd := findCommand(cfg, name)
		if cmd == nil {
			return fmt.Errorf("no command named %q", name)
		}
		cmd.Parameters = params
	}

	for _, name := range s.Disable {
		cmd := findCommand(cfg, name)
		if cmd == nil {
			return fmt.Errorf("no command named %q", name)
		}
		cmd.SetEnabled(false)
	}

	if s.CustomFile != "" {
		data, err := os.ReadFile(s.CustomFile)
		if err != nil {
			return fmt.Errorf("failed to read custom bindings: %w", err)
		}
		cfg.CustomBindings = string(data)
	}

	return nil
}

// ParseBinding parses "key=value"
func ParseBinding(raw string) (types.KeyBinding, error) {
	key, value, ok := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return types.KeyBinding{}, fmt.Errorf("invalid binding %q: expected key=value", raw)
	}
	return types.KeyBinding{Key: key, Value: strings.TrimSpace(value)}, nil
}

// ParseParam parses "Name=v1;v2" into a command name and its parameter list
// Values are split on ';' outside double quotes, trimmed, and empty values dropped
func ParseParam(raw string) (string, []string, error) {
	name, values, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid parameter override %q: expected Name=v1;v2", raw)
	}
	return name, parser.SplitParameters(values), nil
}

// setBinding replaces the first binding for the same key, or appends
func setBinding(cfg *types.GeneratedConfig, kb types.KeyBinding) {
	for i := range cfg.KeyBindings {
		if strings.EqualFold(cfg.KeyBindings[i].Key, kb.Key) {
			cfg.KeyBindings[i].Value = kb.Value
			return
		}
	}
	cfg.KeyBindings = append(cfg.KeyBindings, kb)
}

// setCommand replaces the command with the same name, or appends
func setCommand(cfg *types.GeneratedConfig, cmd types.Command) {
	if cmd.Name != "" {
		if existing := findCommand(cfg, cmd.Name); existing != nil {
			*existing = cmd
			return
		}
	}
	cfg.Commands = append(cfg.Commands, cmd)
}

func findCommand(cfg *types.GeneratedConfig, name string) *types.Command {
	for i := range cfg.Commands {
		if strings.EqualFold(cfg.Commands[i].Name, name) {
			return &cfg.Commands[i]
		}
	}
	return nil
}
