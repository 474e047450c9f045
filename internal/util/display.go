package util

import (
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal control sequences
const (
	ClearScreen    = "\033[2J"
	MoveCursorHome = "\033[H"
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
)

// GetDisplayWidth calculates the display width of a string in terminal cells
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal behind f, or fallback
// when it is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
