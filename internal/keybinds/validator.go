package keybinds

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gxrwes/CS2QuickSetup/internal/parser"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// Section names the part of the config a finding belongs to
type Section string

const (
	SectionBindings Section = "bindings"
	SectionCommands Section = "commands"
)

// ValidationError represents a lint finding
type ValidationError struct {
	Type    string // "conflict", "invalid", "template", "warning"
	Section Section
	Subject string // key name or command name
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in %s: %s", e.Type, e.Subject, e.Section, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator lints a generated config
type Validator struct {
	// allowUnknownKeys disables the key-name check for custom input devices
	allowUnknownKeys bool
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// AllowUnknownKeys turns the unknown key-name warning off
func (v *Validator) AllowUnknownKeys() *Validator {
	v.allowUnknownKeys = true
	return v
}

// ValidateConfig lints both sections of cfg
func (v *Validator) ValidateConfig(cfg *types.GeneratedConfig) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
	if cfg == nil {
		return result
	}

	v.checkBindings(cfg.KeyBindings, result)
	v.checkDuplicateBindings(cfg.KeyBindings, result)
	v.checkCommands(cfg.Commands, result)

	return result
}

// checkBindings checks each binding on its own
func (v *Validator) checkBindings(bindings []types.KeyBinding, result *ValidationResult) {
	for _, kb := range bindings {
		if err := ValidateKey(kb.Key); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Section: SectionBindings,
				Subject: kb.Key,
				Message: err.Error(),
			})
			continue
		}

		if err := ValidateAction(kb.Value); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Section: SectionBindings,
				Subject: kb.Key,
				Message: err.Error(),
			})
		}

		if !v.allowUnknownKeys && !IsKnownKey(kb.Key) {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Section: SectionBindings,
				Subject: kb.Key,
				Message: "unknown key name",
			})
		}
	}
}

// checkDuplicateBindings reports keys bound more than once, in first-seen order
func (v *Validator) checkDuplicateBindings(bindings []types.KeyBinding, result *ValidationResult) {
	keyCount := make(map[string]int)
	var order []string
	for _, kb := range bindings {
		key := strings.ToLower(strings.TrimSpace(kb.Key))
		if key == "" {
			continue
		}
		if keyCount[key] == 0 {
			order = append(order, key)
		}
		keyCount[key]++
	}

	for _, key := range order {
		if count := keyCount[key]; count > 1 {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "conflict",
				Section: SectionBindings,
				Subject: key,
				Message: fmt.Sprintf("key bound %d times, the last binding wins", count),
			})
		}
	}
}

// checkCommands checks every command template, enabled or not
func (v *Validator) checkCommands(commands []types.Command, result *ValidationResult) {
	for i, cmd := range commands {
		subject := cmd.Name
		if subject == "" {
			subject = fmt.Sprintf("#%d", i+1)
		}

		if strings.TrimSpace(cmd.CommandBase) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Section: SectionCommands,
				Subject: subject,
				Message: "command template cannot be empty",
			})
			continue
		}

		if err := parser.RenderResult(cmd).Error(); err != nil {
			msg := err.Error()
			if errors.Is(err, parser.ErrPlaceholderMismatch) || errors.Is(err, parser.ErrMalformedTemplate) {
				msg += " (template will be emitted verbatim)"
			}
			result.Errors = append(result.Errors, ValidationError{
				Type:    "template",
				Section: SectionCommands,
				Subject: subject,
				Message: msg,
			})
		}

		if len(cmd.ParameterDescription) > 0 && len(cmd.ParameterDescription) != len(cmd.Parameters) {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Section: SectionCommands,
				Subject: subject,
				Message: fmt.Sprintf("%d parameter description(s) for %d parameter(s)",
					len(cmd.ParameterDescription), len(cmd.Parameters)),
			})
		}
	}
}

// FindConflicts lists the keys bound more than once
func FindConflicts(cfg *types.GeneratedConfig) []string {
	result := NewValidator().ValidateConfig(cfg)

	var conflicts []string
	for _, warn := range result.Warnings {
		if warn.Type == "conflict" {
			conflicts = append(conflicts, warn.Error())
		}
	}

	return conflicts
}

// ValidateKey checks if a key name can be written into a bind line
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if strings.Contains(key, `"`) {
		return fmt.Errorf("key cannot contain a double quote")
	}
	if strings.ContainsAny(strings.TrimSpace(key), " \t") {
		return fmt.Errorf("key cannot contain whitespace")
	}
	return nil
}

// ValidateAction checks if a bound action can be written into a bind line
func ValidateAction(action string) error {
	if strings.TrimSpace(action) == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if strings.Contains(action, `"`) {
		return fmt.Errorf("action cannot contain a double quote")
	}
	return nil
}
