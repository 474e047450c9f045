package formatter

import (
	"io"
	"strings"

	"github.com/penwyp/go-horti/internal/presentation/layout"
)

// GridFormatter tiles plots into rows of a fixed number of columns.
type GridFormatter struct {
	plotsPerRow int
}

func NewGridFormatter(plotsPerRow int) *GridFormatter {
	if plotsPerRow < 1 {
		plotsPerRow = 1
	}
	return &GridFormatter{plotsPerRow: plotsPerRow}
}

// Render builds the grid text. Every plot line is prefixed with a space and
// every row of plots is followed by a blank line.
func (f *GridFormatter) Render(plots []layout.Plot) string {
	var sb strings.Builder

	for start := 0; start < len(plots); start += f.plotsPerRow {
		end := start + f.plotsPerRow
		if end > len(plots) {
			end = len(plots)
		}
		row := plots[start:end]

		height := 0
		for _, p := range row {
			if len(p.Lines) > height {
				height = len(p.Lines)
			}
		}

		for y := 0; y < height; y++ {
			for _, p := range row {
				sb.WriteByte(' ')
				if y < len(p.Lines) {
					sb.WriteString(p.Lines[y])
				}
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func (f *GridFormatter) Format(w io.Writer, plots []layout.Plot) error {
	_, err := io.WriteString(w, f.Render(plots))
	return err
}
