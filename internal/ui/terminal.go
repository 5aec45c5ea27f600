package ui

import (
	"os"

	"golang.org/x/term"
)

const defaultTerminalWidth = 120

// IsTerminal reports whether stdout is attached to a terminal. CI agents
// usually capture output to a log file, where borders and colors are noise.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GetTerminalWidth returns the width of the terminal on stdout, or
// defaultTerminalWidth when it cannot be determined.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
