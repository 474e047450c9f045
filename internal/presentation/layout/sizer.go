package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/penwyp/go-horti/internal/util"
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

// Sizer measures, crops and pads text in terminal cells.
type Sizer struct {
}

func (i Sizer) displayWidth(s string) int {
	return util.GetDisplayWidth(s)
}

// Fit crops s to width display cells and pads it with spaces to exactly
// width cells.
func (i Sizer) Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.TrimRight(s, "\r")
	if i.displayWidth(s) > width {
		s = runewidth.Truncate(s, width, "")
	}
	return runewidth.FillRight(s, width)
}

// Wrap word-wraps text to width. Runs of whitespace collapse to one space.
// Words longer than width are broken into width-sized pieces, and the last
// piece may share its line with the following word.
func (i Sizer) Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return nil
	}

	pieces := make([]string, 0, len(words))
	for _, word := range words {
		if i.displayWidth(word) > width {
			pieces = append(pieces, strings.Split(wrap.String(word, width), "\n")...)
			continue
		}
		pieces = append(pieces, word)
	}

	ww := wordwrap.NewWriter(width)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(strings.Join(pieces, " ")))
	_ = ww.Close()

	lines := strings.Split(ww.String(), "\n")
	for n, line := range lines {
		lines[n] = strings.TrimRight(line, " ")
	}
	return lines
}

// PlotsPerRow returns how many plots of plotWidth fit the terminal on
// stdout, never less than one. Each plot is preceded by a separator space.
func (i Sizer) PlotsPerRow(plotWidth int) int {
	termWidth := util.TerminalWidth(os.Stdout, 80)
	return plotsFitting(termWidth, plotWidth)
}

func plotsFitting(termWidth, plotWidth int) int {
	n := termWidth / (plotWidth + 1)
	if n < 1 {
		n = 1
	}
	util.LogDebugf("Fitting %d plots of width %d into %d columns", n, plotWidth, termWidth)
	return n
}

// AutoPlotsPerRow fits plots of plotWidth to the terminal on stdout.
func AutoPlotsPerRow(plotWidth int) int {
	return sharedSizer.PlotsPerRow(plotWidth)
}
