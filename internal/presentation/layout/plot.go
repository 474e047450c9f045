package layout

import (
	"strings"

	"github.com/penwyp/go-horti/internal/core/model"
)

// ArtSource supplies the art text for a plant.
type ArtSource interface {
	Art(description string, dead bool) string
}

// Plot is the fixed-size text rendering of one plant.
type Plot struct {
	Record *model.PlantRecord
	Lines  []string
}

// PlotBuilder renders plant records into fixed-size plots: art lines, the
// owner line, then the wrapped description.
type PlotBuilder struct {
	width             int
	height            int
	descriptionHeight int
	art               ArtSource
	sizer             *Sizer
}

// NewPlotBuilder creates a builder for plots of width x height cells, of
// which descriptionHeight lines hold the owner and description.
func NewPlotBuilder(width, height, descriptionHeight int, art ArtSource) *PlotBuilder {
	return &PlotBuilder{
		width:             width,
		height:            height,
		descriptionHeight: descriptionHeight,
		art:               art,
		sizer:             sharedSizer,
	}
}

// Build renders a single record. The result always has exactly height lines
// of exactly width cells.
func (b *PlotBuilder) Build(record *model.PlantRecord) Plot {
	lines := make([]string, 0, b.height)

	artLines := strings.Split(b.art.Art(record.Description, record.IsDead), "\n")
	for i := 0; i < b.height-b.descriptionHeight; i++ {
		line := ""
		if i < len(artLines) {
			line = artLines[i]
		}
		lines = append(lines, b.sizer.Fit(line, b.width))
	}

	lines = append(lines, b.sizer.Fit(record.Owner, b.width))

	descLines := b.sizer.Wrap(record.Description, b.width)
	for i := 0; i < b.descriptionHeight-1; i++ {
		line := ""
		if i < len(descLines) {
			line = descLines[i]
		}
		lines = append(lines, b.sizer.Fit(line, b.width))
	}

	return Plot{Record: record, Lines: lines}
}

// BuildAll renders records in order.
func (b *PlotBuilder) BuildAll(records []*model.PlantRecord) []Plot {
	plots := make([]Plot, 0, len(records))
	for _, r := range records {
		plots = append(plots, b.Build(r))
	}
	return plots
}
