package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-horti/internal/presentation/layout"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Formatter writes ranked plots.
type Formatter interface {
	Format(w io.Writer, plots []layout.Plot) error
}

// New returns the formatter for an output format name.
func New(format string, plotsPerRow int) (Formatter, error) {
	switch format {
	case OutputText, "":
		return NewGridFormatter(plotsPerRow), nil
	case OutputJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (text, json)", format)
	}
}
