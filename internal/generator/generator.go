package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/gxrwes/CS2QuickSetup/internal/parser"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
	"github.com/gxrwes/CS2QuickSetup/internal/version"
)

const (
	// CommentChar starts every comment line in the generated script
	CommentChar = "//"

	// Title is the plain-text header of every generated script
	Title = "CS2 Autoexec"

	// Fallback messages for empty sections
	NoKeyBindingsMessage = CommentChar + " No key bindings configured"
	NoCommandsMessage    = CommentChar + " No commands configured"

	// CustomBindingsName labels the free-text block appended after the commands
	CustomBindingsName = "Custom Bindings"

	// TimestampFormat is the layout of the "Generated on" line
	TimestampFormat = "2006-01-02 15:04:05"

	// LineEndingLF and LineEndingCRLF are the supported line separators
	LineEndingLF   = "\n"
	LineEndingCRLF = "\r\n"
)

// Stamp carries the version and generation time echoed in the header
type Stamp struct {
	Version     string
	Author      string
	GeneratedAt time.Time
}

// NewStamp builds a stamp for the current build at the clock's time
func NewStamp(now func() time.Time) Stamp {
	if now == nil {
		now = time.Now
	}
	return Stamp{
		Version:     version.Current,
		Author:      version.Author,
		GeneratedAt: now(),
	}
}

// Options controls document formatting
type Options struct {
	LineEnding string // LineEndingLF (default) or LineEndingCRLF
}

// Generate assembles the script for cfg with "\n" line endings
func Generate(cfg *types.GeneratedConfig, stamp Stamp) string {
	return GenerateWithOptions(cfg, stamp, Options{})
}

// GenerateWithOptions assembles the script for cfg
// It never fails: nil or empty sections produce their fallback message
func GenerateWithOptions(cfg *types.GeneratedConfig, stamp Stamp, opts Options) string {
	if cfg == nil {
		cfg = &types.GeneratedConfig{}
	}

	var lines []string
	lines = append(lines, headerLines(stamp)...)
	lines = append(lines, boilerplateLines()...)
	lines = append(lines, keyBindingLines(cfg.KeyBindings)...)
	lines = append(lines, commandLines(cfg.Commands, cfg.CustomBindings)...)

	lines = terminateAll(lines)

	eol := opts.LineEnding
	if eol != LineEndingCRLF {
		eol = LineEndingLF
	}
	return strings.Join(lines, eol) + eol
}

// terminateAll splits any embedded line breaks into separate lines and terminates each
func terminateAll(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		for _, part := range strings.Split(strings.ReplaceAll(line, "\r\n", "\n"), "\n") {
			out = append(out, Terminate(part))
		}
	}
	return out
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// singleLine folds line breaks into spaces; a bind statement cannot span lines
func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// IsComment reports whether a line is a comment line
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), CommentChar)
}

// Terminate appends the statement terminator to a statement line
// Comment lines and blank lines are returned unchanged; a line already ending in ';' is not doubled
func Terminate(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	if IsComment(trimmed) || strings.HasSuffix(trimmed, ";") {
		return trimmed
	}
	return trimmed + ";"
}

func sectionHeader(name string) []string {
	return []string{
		"",
		fmt.Sprintf("%s ---------------------------------------------", CommentChar),
		fmt.Sprintf("%s %s", CommentChar, name),
		fmt.Sprintf("%s ---------------------------------------------", CommentChar),
	}
}

func headerLines(stamp Stamp) []string {
	author := stamp.Author
	if author == "" {
		author = version.Author
	}
	ver := strings.TrimPrefix(stamp.Version, "v")
	generatedBy := fmt.Sprintf("Generated by CS2 QuickSetup v%s - %s", ver, author)
	generatedOn := fmt.Sprintf("Generated on %s", stamp.GeneratedAt.Format(TimestampFormat))

	return []string{
		fmt.Sprintf("%s =============================================", CommentChar),
		fmt.Sprintf("%s %s", CommentChar, Title),
		fmt.Sprintf("%s =============================================", CommentChar),
		fmt.Sprintf("%s %s", CommentChar, generatedBy),
		fmt.Sprintf("echo \"%s\"", generatedBy),
		fmt.Sprintf("%s %s", CommentChar, generatedOn),
		fmt.Sprintf("echo \"%s\"", generatedOn),
	}
}

func boilerplateLines() []string {
	var lines []string
	for _, section := range boilerplate {
		lines = append(lines, sectionHeader(section.name)...)
		lines = append(lines, section.lines...)
	}
	return lines
}

func keyBindingLines(bindings []types.KeyBinding) []string {
	lines := sectionHeader("Key Bindings")
	if len(bindings) == 0 {
		return append(lines, NoKeyBindingsMessage)
	}

	for _, kb := range bindings {
		lines = append(lines, fmt.Sprintf("bind \"%s\" \"%s\"", singleLine(kb.Key), singleLine(kb.Value)))
	}
	return lines
}

func commandLines(commands []types.Command, custom string) []string {
	lines := sectionHeader("Commands")

	blocks := 0
	for _, cmd := range commands {
		if !cmd.IsEnabled() {
			continue
		}
		lines = append(lines, commandBlock(cmd)...)
		blocks++
	}

	if strings.TrimSpace(custom) != "" {
		lines = append(lines, commandBlock(types.Command{
			Name:        CustomBindingsName,
			CommandBase: custom,
		})...)
		blocks++
	}

	if blocks == 0 {
		lines = append(lines, NoCommandsMessage)
	}
	return lines
}

// commandBlock renders one command into its contiguous lines
func commandBlock(cmd types.Command) []string {
	var lines []string
	name := strings.ReplaceAll(strings.TrimSpace(cmd.Name), "\r\n", "\n")
	for _, part := range strings.Split(name, "\n") {
		if part = strings.TrimSpace(part); part != "" {
			lines = append(lines, fmt.Sprintf("%s %s", CommentChar, part))
		}
	}

	rendered := parser.Render(cmd)
	rendered = strings.ReplaceAll(rendered, "\r\n", "\n")
	for _, line := range strings.Split(rendered, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
