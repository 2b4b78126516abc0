package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/gxrwes/CS2QuickSetup/internal/config"
	"github.com/gxrwes/CS2QuickSetup/internal/defaults"
	"github.com/gxrwes/CS2QuickSetup/internal/filter"
	"github.com/gxrwes/CS2QuickSetup/internal/generator"
	"github.com/gxrwes/CS2QuickSetup/internal/history"
	"github.com/gxrwes/CS2QuickSetup/internal/keybinds"
	"github.com/gxrwes/CS2QuickSetup/internal/log"
	"github.com/gxrwes/CS2QuickSetup/internal/parser"
	"github.com/gxrwes/CS2QuickSetup/internal/preview"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// RunOptions contains options for generating a script in CLI mode
type RunOptions struct {
	Sources

	OutputPath  string // file to write; ignored with Stdout
	Stdout      bool   // print the document instead of writing it
	NoDiff      bool
	Copy        bool   // copy the document to the clipboard
	LineEnding  string // generator.LineEndingLF or generator.LineEndingCRLF
	Author      string
	KeepHistory bool

	Store history.Store
	Lock  Locker
	Now   func() time.Time

	Out io.Writer
	Err io.Writer
}

// Run generates the script, previews the diff and saves it
func Run(ctx context.Context, opts RunOptions) (Result, error) {
	out, errOut := writers(opts.Out, opts.Err)

	outputPath := opts.OutputPath
	if opts.Stdout {
		outputPath = ""
	}

	cycle := &Cycle{
		Sources:     opts.Sources,
		Options:     generator.Options{LineEnding: opts.LineEnding},
		Author:      opts.Author,
		Store:       opts.Store,
		Lock:        opts.Lock,
		Now:         opts.Now,
		KeepHistory: opts.KeepHistory,
		OutputPath:  outputPath,
	}
	if outputPath != "" {
		cycle.Save = func(doc string) error {
			return SaveDocument(outputPath, doc)
		}
	}

	result, err := cycle.Run(ctx)
	if err != nil {
		return Result{}, err
	}

	if opts.Stdout {
		fmt.Fprint(out, result.Document)
	} else {
		if !opts.NoDiff {
			RenderDiff(out, result.Lines)
		}
		if outputPath != "" {
			fmt.Fprintf(errOut, "Saved %s (%d lines, %d changed)\n", outputPath, len(result.Lines), result.Changed())
		}
	}

	if opts.Copy {
		if err := clipboard.WriteAll(result.Document); err != nil {
			log.Warn("Failed to copy to clipboard", "error", err)
			fmt.Fprintf(errOut, "Warning: failed to copy to clipboard: %v\n", err)
		} else {
			fmt.Fprintln(errOut, "Copied to clipboard")
		}
	}

	return result, nil
}

// SaveDocument writes the document to path
func SaveDocument(path string, doc string) error {
	if err := os.WriteFile(path, []byte(doc), config.FilePermissions); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// RenderDiff prints the preview, coloured on a terminal and prefixed otherwise
func RenderDiff(w io.Writer, lines []preview.Line) {
	if isTerminal(w) {
		fmt.Fprintln(w, preview.Render(lines, preview.DefaultStyle()))
		return
	}
	fmt.Fprint(w, preview.RenderPlain(lines))
}

// RunParse prints how a raw command line is parsed and rendered
func RunParse(w io.Writer, line string) error {
	cmd, ok := parser.ParseCommand(line).Get()
	if !ok {
		fmt.Fprintln(w, "no command")
		return nil
	}

	tmpl := parser.AsTemplate(cmd)

	quoted := make([]string, len(cmd.Parameters))
	for i, p := range cmd.Parameters {
		quoted[i] = fmt.Sprintf("%q", p)
	}

	fmt.Fprintf(w, "base:       %s\n", cmd.CommandBase)
	fmt.Fprintf(w, "parameters: [%s]\n", strings.Join(quoted, ", "))
	fmt.Fprintf(w, "template:   %s\n", tmpl.CommandBase)

	rendered := parser.RenderResult(tmpl)
	if err := rendered.Error(); err != nil {
		fmt.Fprintf(w, "rendered:   %s (fallback: %v)\n", tmpl.CommandBase, err)
		return nil
	}
	fmt.Fprintf(w, "rendered:   %s\n", generator.Terminate(rendered.MustGet()))
	return nil
}

// RunValidate lints cfg and prints the findings
func RunValidate(w io.Writer, cfg *types.GeneratedConfig, allowUnknownKeys bool) *keybinds.ValidationResult {
	v := keybinds.NewValidator()
	if allowUnknownKeys {
		v.AllowUnknownKeys()
	}

	result := v.ValidateConfig(cfg)
	fmt.Fprintln(w, result.String())
	return result
}

// RunDefaults prints the loaded defaults as JSON, optionally searched, filtered and queried
func RunDefaults(w io.Writer, d *defaults.Defaults, filterExpr, queryExpr, search string) error {
	view := *d
	if search != "" {
		view.Bindings = filter.SearchBindings(d.Bindings, search)
		view.Commands = filter.SearchCommands(d.Commands, search)
	}

	output, err := filter.ApplyTo(view, filterExpr, queryExpr)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, output)
	return nil
}

// RunHistory prints the most recent generation cycles
func RunHistory(w io.Writer, m *history.Manager, limit int) error {
	entries, err := m.List(limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No generations recorded")
		return nil
	}

	for _, e := range entries {
		output := e.OutputPath
		if output == "" {
			output = "(stdout)"
		}
		fmt.Fprintf(w, "%s  v%-8s %4d/%-4d changed  %s\n",
			e.GeneratedAt.Local().Format(generator.TimestampFormat), e.Version, e.ChangedLines, e.TotalLines, output)
	}
	return nil
}

// RunHistoryClear empties the previous-document slot and, when the store keeps one, the generation log
func RunHistoryClear(w io.Writer, store history.Store) error {
	if logStore, ok := store.(interface{ Clear() error }); ok {
		if err := logStore.Clear(); err != nil {
			return err
		}
	} else if err := store.ClearPrevious(); err != nil {
		return err
	}

	fmt.Fprintln(w, "History cleared")
	return nil
}

func writers(out, errOut io.Writer) (io.Writer, io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return out, errOut
}

// isTerminal checks if w is a terminal (not piped)
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
