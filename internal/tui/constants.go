package tui

// UI Layout Constants
const (
	StatusBarHeight = 1

	// HeaderHeight is the title line
	HeaderHeight = 1

	// StatusMaxLength truncates status messages in the footer
	StatusMaxLength = 100

	DefaultWidth  = 80
	DefaultHeight = 24
)
