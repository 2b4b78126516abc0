package parser

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/samber/mo"

	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

var (
	// Token pattern: a non-empty double-quoted run, or a run of non-whitespace
	tokenPattern = regexp.MustCompile(`"([^"]+)"|(\S+)`)
)

// Tokenize splits a raw command line into tokens
// Quoted runs lose their quotes and keep inner whitespace verbatim
func Tokenize(line string) []string {
	matches := tokenPattern.FindAllStringSubmatch(line, -1)
	tokens := make([]string, 0, len(matches))
	for _, match := range matches {
		if match[1] != "" {
			tokens = append(tokens, match[1])
		} else if match[2] != "" {
			tokens = append(tokens, match[2])
		}
	}
	return tokens
}

// ParseCommand parses a raw line into a Command
// The first token becomes CommandBase and the rest Parameters; a blank line yields None
func ParseCommand(line string) mo.Option[types.Command] {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return mo.None[types.Command]()
	}

	params := make([]string, len(tokens)-1)
	copy(params, tokens[1:])

	return mo.Some(types.Command{
		CommandBase: tokens[0],
		Parameters:  params,
	})
}

// ParseCommands parses every line of a text block, skipping blank and comment lines
func ParseCommands(text string, commentPrefix string) []types.Command {
	var commands []types.Command

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || (commentPrefix != "" && strings.HasPrefix(line, commentPrefix)) {
			continue
		}
		if cmd, ok := ParseCommand(line).Get(); ok {
			commands = append(commands, cmd)
		}
	}

	return commands
}
