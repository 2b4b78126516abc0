package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gxrwes/CS2QuickSetup/internal/log"
)

// EnvPrefix prefixes every environment override, e.g. CS2QS_OUTPUT_FILE
const EnvPrefix = "CS2QS"

// ErrSettingsExist is returned by WriteDefault when the file is already present
var ErrSettingsExist = errors.New("settings file already exists")

// Settings are the user preferences read from config.yaml and the environment
type Settings struct {
	KeybindsFile string `mapstructure:"keybinds_file" yaml:"keybinds_file"`
	CommandsFile string `mapstructure:"commands_file" yaml:"commands_file"`
	SetupFile    string `mapstructure:"setup_file" yaml:"setup_file"`
	OutputFile   string `mapstructure:"output_file" yaml:"output_file"`
	LineEnding   string `mapstructure:"line_ending" yaml:"line_ending"` // "lf" or "crlf"
	Author       string `mapstructure:"author" yaml:"author"`
	KeepHistory  bool   `mapstructure:"keep_history" yaml:"keep_history"`
}

// DefaultSettings returns the settings used when nothing is configured
// Empty defaults paths select the built-in lists
func DefaultSettings() Settings {
	return Settings{
		OutputFile:  "autoexec.cfg",
		LineEnding:  "lf",
		KeepHistory: true,
	}
}

// LineSeparator returns the configured line separator
func (s Settings) LineSeparator() string {
	if strings.EqualFold(s.LineEnding, "crlf") {
		return "\r\n"
	}
	return "\n"
}

// LoadEnv loads a .env file into the process environment
// An explicit path must exist; without one ./.env is loaded when present
func LoadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}

	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		log.Warn("Could not load .env file, continuing with system env vars", "error", err)
	}
	return nil
}

// LoadSettings reads settings from path, or from SettingsFile when path is empty
// A missing default settings file is not an error; a missing explicit one is
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("keybinds_file", defaults.KeybindsFile)
	v.SetDefault("commands_file", defaults.CommandsFile)
	v.SetDefault("setup_file", defaults.SetupFile)
	v.SetDefault("output_file", defaults.OutputFile)
	v.SetDefault("line_ending", defaults.LineEnding)
	v.SetDefault("author", defaults.Author)
	v.SetDefault("keep_history", defaults.KeepHistory)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = SettingsFile
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
			}
			log.Debug("Loaded settings", "path", path)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	switch strings.ToLower(settings.LineEnding) {
	case "lf", "crlf":
	default:
		return nil, fmt.Errorf("invalid line_ending %q: expected lf or crlf", settings.LineEnding)
	}

	return &settings, nil
}

// WriteDefault writes the default settings file
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrSettingsExist, path)
		}
	}

	data, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	header := "# CS2 QuickSetup settings\n# Empty keybinds_file/commands_file use the built-in defaults\n"
	if err := os.WriteFile(path, append([]byte(header), data...), FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
