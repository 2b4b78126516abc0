package keybinds

import (
	"fmt"
	"strings"
)

// knownKeys are the input names the engine accepts in bind commands
var knownKeys = func() map[string]bool {
	keys := []string{
		"escape", "tab", "capslock", "shift", "rshift", "ctrl", "rctrl", "alt", "ralt",
		"space", "enter", "backspace", "lwin", "rwin", "apps", "pause", "scrolllock",
		"ins", "del", "home", "end", "pgup", "pgdn",
		"uparrow", "downarrow", "leftarrow", "rightarrow",
		"semicolon", "'", "`", ",", ".", "/", "\\", "-", "=", "[", "]",
		"kp_0", "kp_1", "kp_2", "kp_3", "kp_4", "kp_5", "kp_6", "kp_7", "kp_8", "kp_9",
		"kp_end", "kp_downarrow", "kp_pgdn", "kp_leftarrow", "kp_rightarrow",
		"kp_home", "kp_uparrow", "kp_pgup", "kp_ins", "kp_del",
		"kp_divide", "kp_multiply", "kp_minus", "kp_plus", "kp_enter", "numlock",
		"mouse1", "mouse2", "mouse3", "mouse4", "mouse5", "mwheelup", "mwheeldown",
	}
	for c := 'a'; c <= 'z'; c++ {
		keys = append(keys, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		keys = append(keys, string(c))
	}
	for i := 1; i <= 12; i++ {
		keys = append(keys, fmt.Sprintf("f%d", i))
	}

	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}()

// IsKnownKey reports whether name is a key the engine recognises, ignoring case
func IsKnownKey(name string) bool {
	return knownKeys[strings.ToLower(strings.TrimSpace(name))]
}
