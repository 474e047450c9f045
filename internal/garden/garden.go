package garden

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/penwyp/go-horti/internal/config"
	"github.com/penwyp/go-horti/internal/core/constants"
	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/core/ranking"
	"github.com/penwyp/go-horti/internal/core/watering"
	"github.com/penwyp/go-horti/internal/data/loader"
	"github.com/penwyp/go-horti/internal/data/scanner"
	"github.com/penwyp/go-horti/internal/presentation/art"
	"github.com/penwyp/go-horti/internal/presentation/formatter"
	"github.com/penwyp/go-horti/internal/presentation/layout"
	"github.com/penwyp/go-horti/internal/util"
)

// Options controls a render pass.
type Options struct {
	Clock        util.Clock
	Concurrency  int
	OutputFormat string
	AllowList    []string
}

// Garden renders every plant under the configured user directory. Nothing
// is kept between passes: each call rereads all sources.
type Garden struct {
	cfg  *config.Config
	opts Options
}

// New creates a garden. Zero option values take defaults: the system clock,
// one worker per CPU, text output and the built-in allow-list.
func New(cfg *config.Config, opts Options) *Garden {
	if opts.Clock == nil {
		opts.Clock = util.SystemClock{}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = formatter.OutputText
	}
	if opts.AllowList == nil {
		opts.AllowList = constants.AlwaysAlive
	}
	return &Garden{cfg: cfg, opts: opts}
}

func (g *Garden) newLoader(now time.Time) *loader.Loader {
	return loader.New(g.cfg, watering.NewClassifier(g.opts.AllowList), now, g.opts.Concurrency)
}

// Plants loads and ranks all valid plants as of now.
func (g *Garden) Plants(ctx context.Context, now time.Time) ([]*model.PlantRecord, error) {
	identities, err := scanner.NewIdentityScanner(g.cfg.UserDir).Scan()
	if err != nil {
		return nil, err
	}

	records, err := g.newLoader(now).LoadAll(ctx, identities)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(records), nil
}

// Inspect loads a single identity as of the garden clock.
func (g *Garden) Inspect(identity string) (*model.PlantRecord, time.Time, bool) {
	now := g.opts.Clock.Now()
	record, ok := g.newLoader(now).Load(identity)
	return record, now, ok
}

// Render writes the garden to w in the configured output format.
func (g *Garden) Render(ctx context.Context, w io.Writer) error {
	start := time.Now()
	now := g.opts.Clock.Now()

	records, err := g.Plants(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load plants: %w", err)
	}

	builder := layout.NewPlotBuilder(g.cfg.PlotWidth, g.cfg.PlotHeight, g.cfg.DescriptionHeight, art.NewSelector(g.cfg))
	plots := builder.BuildAll(records)

	f, err := formatter.New(g.opts.OutputFormat, g.plotsPerRow())
	if err != nil {
		return err
	}
	if err := f.Format(w, plots); err != nil {
		return fmt.Errorf("failed to write garden: %w", err)
	}

	util.LogInfof("Rendered %d plants in %v", len(plots), time.Since(start))
	return nil
}

// RenderString renders the garden into a string.
func (g *Garden) RenderString(ctx context.Context) (string, error) {
	var sb strings.Builder
	if err := g.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Garden) plotsPerRow() int {
	if g.cfg.PlotsPerRow > 0 {
		return g.cfg.PlotsPerRow
	}
	return layout.AutoPlotsPerRow(g.cfg.PlotWidth)
}
