package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gxrwes/CS2QuickSetup/internal/cli"
	"github.com/gxrwes/CS2QuickSetup/internal/config"
	"github.com/gxrwes/CS2QuickSetup/internal/defaults"
	"github.com/gxrwes/CS2QuickSetup/internal/generator"
	"github.com/gxrwes/CS2QuickSetup/internal/history"
	"github.com/gxrwes/CS2QuickSetup/internal/lock"
	"github.com/gxrwes/CS2QuickSetup/internal/log"
	"github.com/gxrwes/CS2QuickSetup/internal/tui"
	"github.com/gxrwes/CS2QuickSetup/internal/version"
	"github.com/gxrwes/CS2QuickSetup/internal/watch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cs2quicksetup",
	Short: "CS2 QuickSetup - autoexec.cfg generator",
	Long: `CS2 QuickSetup generates a Counter-Strike 2 autoexec.cfg from key bindings and
command templates, and shows which lines changed since the last generation.

Run without a subcommand to generate the script with the configured defaults.

Examples:
  cs2quicksetup                                   # Generate autoexec.cfg
  cs2quicksetup -b mouse4=+use --stdout           # Override a binding, print the script
  cs2quicksetup --param "Net Graph=0"             # Change a command's parameters
  cs2quicksetup preview --watch                   # Live preview, regenerate on save
  cs2quicksetup parse 'alias "+jt" "+jump; -attack"'
  cs2quicksetup defaults --query "bindings[].key"`,
	Version:           version.Current,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the script, show the diff and save it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open the interactive preview",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate and save whenever an input file changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default key bindings and commands as JSON",
	Long: `Print the default key bindings and commands as JSON.

--search fuzzily matches bindings and commands, --filter and --query take JMESPath
expressions, and a query of the form $(command) pipes the JSON through a shell command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := defaults.Load(sources.KeybindsFile, sources.CommandsFile)
		return cli.RunDefaults(cmd.OutOrStdout(), d, flagFilter, flagQuery, flagSearch)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <command line>",
	Short: "Show how a raw command line is split and rendered",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunParse(cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check bindings and command templates for mistakes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(sources)
		if err != nil {
			return err
		}
		result := cli.RunValidate(cmd.OutOrStdout(), cfg, flagAllowUnknownKeys)
		if result.HasErrors() {
			return fmt.Errorf("validation failed with %d errors", len(result.Errors))
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			path = config.SettingsFile
		}
		if err := config.WriteDefault(path, flagForce); err != nil {
			if errors.Is(err, config.ErrSettingsExist) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [command name]",
	Short: "Edit a command's parameters and store them in the setup file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupPath := sources.SetupFile
		if setupPath == "" {
			setupPath = filepath.Join(config.ConfigDir, "setup.yaml")
		}

		opts := cli.EditOptions{
			Sources:   sources,
			SetupPath: setupPath,
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
		}
		if len(args) > 0 {
			opts.Name = args[0]
		}

		_, err := cli.Edit(opts)
		if errors.Is(err, cli.ErrCancelled) {
			return nil
		}
		return err
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer m.Close()
		return cli.RunHistory(cmd.OutOrStdout(), m, flagLimit)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the generation log and the previous document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		return cli.RunHistoryClear(cmd.OutOrStdout(), store)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cs2quicksetup %s (%s)\n", version.Current, version.Author)
		if !flagCheck {
			return nil
		}

		update, err := version.NewChecker().Check(cmd.Context(), version.Current)
		if err != nil {
			return err
		}
		if update.Available {
			fmt.Fprintf(out, "Update available: %s (%s)\n", update.Latest, update.URL)
		} else {
			fmt.Fprintln(out, "You are running the latest version")
		}
		return nil
	},
}

// Global flags
var (
	flagConfig  string
	flagEnvFile string
	flagVerbose bool
)

// Input flags shared by every command that generates
var sources cli.Sources

// Flags for generate
var (
	flagOutput string
	flagStdout bool
	flagNoDiff bool
	flagCopy   bool
	flagCRLF   bool
)

// Flags for preview/watch
var flagWatch bool

// Flags for defaults
var (
	flagFilter string
	flagQuery  string
	flagSearch string
)

var (
	flagAllowUnknownKeys bool
	flagForce            bool
	flagLimit            int
	flagCheck            bool
)

// settings are loaded once per invocation in setup
var settings *config.Settings

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (default ~/.cs2quicksetup/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Load environment variables from file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")

	for _, cmd := range []*cobra.Command{rootCmd, generateCmd, previewCmd, watchCmd, validateCmd, editCmd, defaultsCmd} {
		addSourceFlags(cmd)
	}
	for _, cmd := range []*cobra.Command{rootCmd, generateCmd, previewCmd, watchCmd} {
		addOutputFlags(cmd)
	}

	generateCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print the script instead of saving it")
	rootCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print the script instead of saving it")
	for _, cmd := range []*cobra.Command{rootCmd, generateCmd} {
		cmd.Flags().BoolVar(&flagNoDiff, "no-diff", false, "Do not print the changed-line preview")
		cmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the script to the clipboard")
	}

	previewCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Regenerate when an input file changes")

	defaultsCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath filter expression")
	defaultsCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(shell command)")
	defaultsCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Fuzzy search term")

	validateCmd.Flags().BoolVar(&flagAllowUnknownKeys, "allow-unknown-keys", false, "Do not warn about unknown key names")
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing settings file")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of generations to list (0 for all)")
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check for a newer release")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(generateCmd, previewCmd, watchCmd, defaultsCmd, parseCmd, validateCmd,
		initCmd, editCmd, historyCmd, versionCmd)
}

func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&sources.KeybindsFile, "keybinds", "", "Default key bindings file (json/yaml/toml)")
	f.StringVar(&sources.CommandsFile, "commands", "", "Default commands file (json/yaml/toml)")
	f.StringVar(&sources.SetupFile, "setup", "", "Setup file layered over the defaults")
	f.StringArrayVarP(&sources.Bindings, "bind", "b", nil, "Set a binding (key=value), can be repeated")
	f.StringArrayVar(&sources.Commands, "command", nil, "Add a raw command line, can be repeated")
	f.StringVar(&sources.CommandFile, "command-file", "", "File with one raw command per line")
	f.StringArrayVarP(&sources.Params, "param", "p", nil, `Set command parameters ("Name=v1;v2"), can be repeated`)
	f.StringArrayVar(&sources.Disable, "disable", nil, "Disable a command by name, can be repeated")
	f.StringVar(&sources.CustomFile, "custom-file", "", "File appended verbatim as custom bindings")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default from settings)")
	cmd.Flags().BoolVar(&flagCRLF, "crlf", false, "Use CRLF line endings")
}

// setup initializes the config directory, environment, settings and logging
func setup(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		log.SetLevel(slog.LevelDebug)
	}

	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := config.LoadEnv(flagEnvFile); err != nil {
		return err
	}

	s, err := config.LoadSettings(flagConfig)
	if err != nil {
		return err
	}
	settings = s

	sources = cli.SourcesFromSettings(sources, settings)
	return nil
}

func outputPath() string {
	if flagOutput != "" {
		return flagOutput
	}
	return settings.OutputFile
}

func lineEnding() string {
	if flagCRLF {
		return generator.LineEndingCRLF
	}
	return settings.LineSeparator()
}

func generatorOptions() generator.Options {
	return generator.Options{LineEnding: lineEnding()}
}

// openState opens the previous-document store and the cycle lock
func openState() (history.Store, *lock.CycleLock, error) {
	store, err := history.Open(config.DatabasePath)
	if err != nil {
		return nil, nil, err
	}

	cycleLock, err := lock.New(config.LockPath)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	return store, cycleLock, nil
}

func runOptions(cmd *cobra.Command, store history.Store, cycleLock *lock.CycleLock) cli.RunOptions {
	return cli.RunOptions{
		Sources:     sources,
		OutputPath:  outputPath(),
		Stdout:      flagStdout,
		NoDiff:      flagNoDiff,
		Copy:        flagCopy,
		LineEnding:  lineEnding(),
		Author:      settings.Author,
		KeepHistory: settings.KeepHistory,
		Store:       store,
		Lock:        cycleLock,
		Out:         cmd.OutOrStdout(),
		Err:         cmd.ErrOrStderr(),
	}
}

// runGenerate runs one generation cycle
func runGenerate(cmd *cobra.Command) error {
	store, cycleLock, err := openState()
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = cli.Run(cmd.Context(), runOptions(cmd, store, cycleLock))
	return err
}

// runWatch regenerates and saves on every input change until interrupted
func runWatch(cmd *cobra.Command) error {
	store, cycleLock, err := openState()
	if err != nil {
		return err
	}
	defer store.Close()

	w, err := newWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	opts := runOptions(cmd, store, cycleLock)
	opts.Stdout = false

	if _, err := cli.Run(cmd.Context(), opts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d files, press Ctrl+C to stop\n", len(w.Files()))

	err = w.Run(cmd.Context(), func(files []string) {
		log.Info("Input changed", "files", files)
		if _, err := cli.Run(cmd.Context(), opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runPreview starts the interactive preview
func runPreview(cmd *cobra.Command) error {
	store, cycleLock, err := openState()
	if err != nil {
		return err
	}
	defer store.Close()

	// Log lines would tear the alt screen
	logFile, err := os.OpenFile(filepath.Join(config.ConfigDir, "preview.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	log.SetOutput(logFile, level)

	output := outputPath()
	opts := tui.Options{
		Generator: &cli.Cycle{
			Sources:     sources,
			Options:     generatorOptions(),
			Author:      settings.Author,
			Store:       store,
			Lock:        cycleLock,
			KeepHistory: settings.KeepHistory,
			OutputPath:  output,
		},
		OutputPath: output,
	}

	if flagWatch {
		w, err := newWatcher()
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Watcher = w
	}

	return tui.Run(cmd.Context(), opts)
}

func newWatcher() (*watch.Watcher, error) {
	w, err := watch.New(watch.DefaultDelay)
	if err != nil {
		return nil, err
	}

	files := sources.Files()
	if len(files) == 0 {
		w.Close()
		return nil, fmt.Errorf("nothing to watch: all inputs are built in (set --keybinds, --commands or --setup)")
	}

	for _, f := range files {
		if err := w.Add(f); err != nil {
			w.Close()
			return nil, err
		}
	}
	return w, nil
}
