package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-horti/internal/core/constants"
	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/data/watcher"
	"github.com/penwyp/go-horti/internal/garden"
	"github.com/penwyp/go-horti/internal/util"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the garden whenever plants change",
	Long: `Renders the garden, then renders it again whenever a plant file, visitor log
or art asset changes, and at a fixed interval so plants wilt on time.

Every render rereads all sources; nothing is carried over between renders.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Minute,
		"Re-render at least this often (0 disables)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	g, err := newGarden(cfg)
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher([]string{cfg.UserDir, cfg.ArtDirectory}, cfg.IsGardenFile)
	if err != nil {
		return fmt.Errorf("failed to watch garden: %w", err)
	}
	defer fw.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	util.LogInfof("Watching %s every %v", cfg.UserDir, watchInterval)
	return watchLoop(ctx, g, fw.Events(), watchInterval, cmd.OutOrStdout())
}

// watchLoop renders once, then again after each debounced burst of file
// events or tick, until ctx is done.
func watchLoop(ctx context.Context, g *garden.Garden, events <-chan model.FileEvent, interval time.Duration, out io.Writer) error {
	clearScreen := false
	if f, ok := out.(*os.File); ok {
		clearScreen = util.IsTerminal(f)
	}

	write := func(p []byte) {
		if _, err := out.Write(p); err != nil {
			util.LogErrorf("Write failed: %v", err)
		}
	}

	if clearScreen {
		write([]byte(util.HideCursor))
		defer write([]byte(util.ShowCursor))
	}

	render := func() {
		var buf bytes.Buffer
		if err := g.Render(ctx, &buf); err != nil {
			util.LogErrorf("Render failed: %v", err)
			return
		}
		if clearScreen {
			write([]byte(util.ClearScreen + util.MoveCursorHome))
		}
		write(buf.Bytes())
	}

	render()

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	debounce := time.NewTimer(constants.WatchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			debounce.Reset(constants.WatchDebounce)
		case <-debounce.C:
			render()
		case <-tick:
			render()
		}
	}
}
