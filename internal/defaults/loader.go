// Package defaults loads the default key bindings and command templates.
//
// Loading never fails: a missing or unreadable file degrades to an empty list for that
// category and logs a warning. Only LoadSetup, which reads a file the user named explicitly,
// returns errors.
package defaults

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/gxrwes/CS2QuickSetup/internal/log"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

//go:embed builtin/keybinds.json builtin/commands.json
var builtin embed.FS

const (
	builtinKeybinds = "builtin/keybinds.json"
	builtinCommands = "builtin/commands.json"
)

// Format identifies a supported file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Defaults holds the loaded default data
type Defaults struct {
	Bindings []types.KeyBinding `json:"bindings"`
	Commands []types.Command    `json:"commands"`
}

type bindingsEnvelope struct {
	Bindings []types.KeyBinding `json:"bindings" yaml:"bindings" toml:"bindings"`
}

type commandsEnvelope struct {
	Commands []types.Command `json:"commands" yaml:"commands" toml:"commands"`
}

// DetectFormat picks the decoder from a file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
}

// Load reads the default key bindings and commands from disk
// An empty path selects the built-in list for that category
func Load(keybindsPath, commandsPath string) *Defaults {
	d := &Defaults{
		Bindings: []types.KeyBinding{},
		Commands: []types.Command{},
	}

	if keybindsPath == "" {
		d.Bindings = builtinBindings()
	} else if bindings, err := loadBindingsFile(keybindsPath); err != nil {
		log.Warn("Default keybinds unavailable, using an empty list", "path", keybindsPath, "error", err)
	} else {
		d.Bindings = bindings
	}

	if commandsPath == "" {
		d.Commands = builtinCommandList()
	} else if commands, err := loadCommandsFile(commandsPath); err != nil {
		log.Warn("Default commands unavailable, using an empty list", "path", commandsPath, "error", err)
	} else {
		d.Commands = commands
	}

	return d
}

// LoadBuiltin returns the defaults compiled into the binary
func LoadBuiltin() *Defaults {
	return Load("", "")
}

func builtinBindings() []types.KeyBinding {
	data, err := builtin.ReadFile(builtinKeybinds)
	if err != nil {
		log.Warn("Built-in keybinds unavailable", "error", err)
		return []types.KeyBinding{}
	}
	bindings, err := DecodeBindings(data, FormatJSON)
	if err != nil {
		log.Warn("Built-in keybinds unreadable", "error", err)
		return []types.KeyBinding{}
	}
	return bindings
}

func builtinCommandList() []types.Command {
	data, err := builtin.ReadFile(builtinCommands)
	if err != nil {
		log.Warn("Built-in commands unavailable", "error", err)
		return []types.Command{}
	}
	commands, err := DecodeCommands(data, FormatJSON)
	if err != nil {
		log.Warn("Built-in commands unreadable", "error", err)
		return []types.Command{}
	}
	return commands
}

func loadBindingsFile(path string) ([]types.KeyBinding, error) {
	data, format, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBindings(data, format)
}

func loadCommandsFile(path string) ([]types.Command, error) {
	data, format, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeCommands(data, format)
}

func readFile(path string) ([]byte, Format, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	return data, format, nil
}

// DecodeBindings decodes a key-binding list or a {"bindings": [...]} envelope
func DecodeBindings(data []byte, format Format) ([]types.KeyBinding, error) {
	var env bindingsEnvelope
	list, isList, err := decodeList[types.KeyBinding](data, format, &env)
	if err != nil {
		return nil, err
	}
	if !isList {
		list = env.Bindings
	}
	if list == nil {
		list = []types.KeyBinding{}
	}
	return list, nil
}

// DecodeCommands decodes a command list or a {"commands": [...]} envelope
func DecodeCommands(data []byte, format Format) ([]types.Command, error) {
	var env commandsEnvelope
	list, isList, err := decodeList[types.Command](data, format, &env)
	if err != nil {
		return nil, err
	}
	if !isList {
		list = env.Commands
	}
	if list == nil {
		list = []types.Command{}
	}
	return list, nil
}

// decodeList decodes a top-level list into []T, or otherwise decodes into envelope
func decodeList[T any](data []byte, format Format, envelope any) ([]T, bool, error) {
	switch format {
	case FormatJSON:
		data = bytes.TrimSpace(jsonc.ToJSON(data))
		if len(data) == 0 {
			return nil, true, nil
		}
		if data[0] == '[' {
			var list []T
			if err := json.Unmarshal(data, &list); err != nil {
				return nil, false, fmt.Errorf("failed to parse JSON: %w", err)
			}
			return list, true, nil
		}
		if err := json.Unmarshal(data, envelope); err != nil {
			return nil, false, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return nil, false, nil

	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, false, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if node.Kind == 0 || len(node.Content) == 0 {
			return nil, true, nil
		}
		root := node.Content[0]
		if root.Kind == yaml.SequenceNode {
			var list []T
			if err := root.Decode(&list); err != nil {
				return nil, false, fmt.Errorf("failed to parse YAML: %w", err)
			}
			return list, true, nil
		}
		if err := root.Decode(envelope); err != nil {
			return nil, false, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return nil, false, nil

	case FormatTOML:
		if err := toml.Unmarshal(data, envelope); err != nil {
			return nil, false, fmt.Errorf("failed to parse TOML: %w", err)
		}
		return nil, false, nil

	default:
		return nil, false, fmt.Errorf("unsupported format: %s", format)
	}
}
