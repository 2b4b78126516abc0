/*
Package keybinds lints key bindings and command templates before generation.

# Checks

Key bindings:
  - Empty key or value (error)
  - Key or value containing a double quote, which would break the bind line (error)
  - Key bound more than once; the engine keeps the last binding (warning)
  - Key name the engine does not recognise (warning)

Commands:
  - Empty command template (error)
  - Placeholders that do not match the parameter count; the template is
    emitted verbatim (error)
  - Parameter descriptions that do not match the parameter count (warning)

Linting only reports. Generation never depends on it and always produces a
document.
*/
package keybinds
