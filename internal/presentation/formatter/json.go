package formatter

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/presentation/layout"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type rankedPlant struct {
	Rank int `json:"rank"`
	*model.PlantRecord
	Plot []string `json:"plot"`
}

func (f *JSONFormatter) Format(w io.Writer, plots []layout.Plot) error {
	out := make([]rankedPlant, 0, len(plots))
	for i, p := range plots {
		out = append(out, rankedPlant{Rank: i + 1, PlantRecord: p.Record, Plot: p.Lines})
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
