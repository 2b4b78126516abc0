package parser

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/gxrwes/CS2QuickSetup/internal/log"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

var (
	// ErrPlaceholderMismatch means the placeholders in a template don't line up with its parameters
	ErrPlaceholderMismatch = errors.New("placeholder count does not match parameter count")

	// ErrMalformedTemplate means a brace in the template is neither a placeholder nor an escape
	ErrMalformedTemplate = errors.New("malformed placeholder")
)

// segment is one piece of a scanned template: literal text or a placeholder index
type segment struct {
	literal string
	index   int // -1 for literal segments
}

// scanTemplate splits a composite-format template into literal and placeholder segments
// Supported syntax: {N} placeholders, {{ and }} as literal braces
func scanTemplate(tmpl string) ([]segment, error) {
	var segments []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{literal: lit.String(), index: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformedTemplate, i)
			}
			inner := tmpl[i+1 : i+1+end]
			idx, err := strconv.Atoi(inner)
			if err != nil || !isDigits(inner) {
				return nil, fmt.Errorf("%w: {%s} at offset %d", ErrMalformedTemplate, inner, i)
			}
			flush()
			segments = append(segments, segment{index: idx})
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("%w: stray '}' at offset %d", ErrMalformedTemplate, i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return segments, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// PlaceholderIndices returns the distinct placeholder indices referenced by a template, sorted
func PlaceholderIndices(tmpl string) ([]int, error) {
	segments, err := scanTemplate(tmpl)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var indices []int
	for _, s := range segments {
		if s.index >= 0 && !seen[s.index] {
			seen[s.index] = true
			indices = append(indices, s.index)
		}
	}
	sort.Ints(indices)
	return indices, nil
}

// RenderResult substitutes the command's parameters into its template
// The result is an error when the placeholders referenced by CommandBase are not
// exactly 0..len(Parameters)-1, or when the template has a malformed brace
func RenderResult(cmd types.Command) mo.Result[string] {
	if len(cmd.Parameters) == 0 {
		return mo.Ok(cmd.CommandBase)
	}

	segments, err := scanTemplate(cmd.CommandBase)
	if err != nil {
		return mo.Err[string](err)
	}

	seen := make(map[int]bool)
	for _, s := range segments {
		if s.index < 0 {
			continue
		}
		if s.index >= len(cmd.Parameters) {
			return mo.Err[string](fmt.Errorf("%w: {%d} referenced, %d parameter(s) supplied",
				ErrPlaceholderMismatch, s.index, len(cmd.Parameters)))
		}
		seen[s.index] = true
	}
	if len(seen) != len(cmd.Parameters) {
		return mo.Err[string](fmt.Errorf("%w: %d placeholder(s) referenced, %d parameter(s) supplied",
			ErrPlaceholderMismatch, len(seen), len(cmd.Parameters)))
	}

	var out strings.Builder
	for _, s := range segments {
		if s.index < 0 {
			out.WriteString(s.literal)
		} else {
			out.WriteString(cmd.Parameters[s.index])
		}
	}
	return mo.Ok(out.String())
}

// Render returns the command with placeholders substituted
// On any mismatch it returns CommandBase verbatim so one bad command never breaks a document
func Render(cmd types.Command) string {
	result := RenderResult(cmd)
	if result.IsError() {
		log.Debug("command template fell back to literal text",
			"name", cmd.Name, "template", cmd.CommandBase, "error", result.Error())
		return cmd.CommandBase
	}
	return result.MustGet()
}

// AsTemplate turns a parsed command (base token + raw parameters) into a renderable template
// Parameters containing whitespace or ';' are re-quoted so the engine sees one argument
func AsTemplate(cmd types.Command) types.Command {
	base := strings.NewReplacer("{", "{{", "}", "}}").Replace(cmd.CommandBase)

	out := types.Command{
		Name:                 cmd.Name,
		ParameterDescription: cmd.ParameterDescription,
		Enabled:              cmd.Enabled,
		Parameters:           make([]string, len(cmd.Parameters)),
	}

	var tmpl strings.Builder
	tmpl.WriteString(base)
	for i, p := range cmd.Parameters {
		tmpl.WriteString(" {" + strconv.Itoa(i) + "}")
		if p == "" || strings.ContainsAny(p, " \t;") {
			p = `"` + p + `"`
		}
		out.Parameters[i] = p
	}
	out.CommandBase = tmpl.String()

	return out
}

// SplitParameters splits an editable parameter string on ';'
// Entries are trimmed and empty entries dropped. A ';' inside double quotes does not split,
// so "+use; cl_radar_scale 0.15" stays one parameter
func SplitParameters(s string) []string {
	params := []string{}
	var cur strings.Builder
	inQuote := false

	add := func() {
		p := strings.TrimSpace(cur.String())
		if p != "" {
			params = append(params, p)
		}
		cur.Reset()
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ';' && !inQuote:
			add()
		default:
			cur.WriteRune(r)
		}
	}
	add()

	return params
}
