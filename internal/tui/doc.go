/*
Package tui implements the live preview for CS2 QuickSetup.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: holds the last generation result and the view state
  - Update: processes key presses and background results
  - View: renders the annotated document with a status bar

# Key Components

  - model.go: core state and message handling
  - keys.go: key map and key dispatch
  - actions.go: side effects (generation cycles, saving, clipboard, file watching)
  - render.go: view rendering

# Threading Model

Generation cycles run in tea.Cmd goroutines, one at a time. A regenerate request that
arrives while a cycle is running is queued and runs once the current cycle finishes.
File changes from the watcher arrive as messages and trigger a regenerate.
*/
package tui
