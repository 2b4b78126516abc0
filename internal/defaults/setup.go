package defaults

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// LoadSetup reads a user setup file holding key bindings, commands and custom bindings
func LoadSetup(path string) (*types.GeneratedConfig, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read setup file: %w", err)
	}

	cfg, err := DecodeSetup(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load setup %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeSetup decodes setup data in the given format
func DecodeSetup(data []byte, format Format) (*types.GeneratedConfig, error) {
	var cfg types.GeneratedConfig

	switch format {
	case FormatJSON:
		data = bytes.TrimSpace(jsonc.ToJSON(data))
		if len(data) == 0 {
			return &cfg, nil
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return &cfg, nil
}

// Save writes a setup file in the format implied by its extension
func Save(path string, cfg *types.GeneratedConfig) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(cfg)
	case FormatTOML:
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}
