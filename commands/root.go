package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-horti/internal/config"
	"github.com/penwyp/go-horti/internal/garden"
	"github.com/penwyp/go-horti/internal/util"
)

var (
	// Logging related
	debug     bool
	logFile   string
	logFormat string

	// Input
	configPath string

	// Output related
	outputFormat string
	timezone     string

	// Evaluation
	nowOverride string
	concurrency int

	rootCmd = &cobra.Command{
		Use:   "go-horti [flags]",
		Short: "Render a shared text garden",
		Long: `go-horti renders every user's plant as a plot of ASCII art, owner and description,
ordered by how recently each plant was looked after.

A plant stays alive while it is watered at least every 5 days. Guest waterings
from the visitor log extend the streak, but a gap of more than 5 days ends it.

Examples:
  go-horti                                  # Render with config.json next to the binary
  go-horti --config /etc/horti/config.json  # Render with an explicit config
  go-horti --output json                    # Ranked plants as JSON
  go-horti --now 2024-05-01T12:00:00Z       # Render as of a fixed instant
  go-horti watch                            # Re-render when plants change
  go-horti inspect alice                    # Show how alice's plant was evaluated`,
		SilenceUsage: true,
		RunE:         runRender,
	}
)

const (
	defaultLogFile    = "~/.go-horti/logs/app.log"
	defaultConfigName = "config.json"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (JSON or YAML); defaults to config.json next to the executable")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&nowOverride, "now", "",
		"Evaluate the garden at this instant (RFC3339 or epoch seconds)")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", runtime.NumCPU(),
		"Number of plants loaded in parallel")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for displayed timestamps (e.g., UTC, Europe/London)")

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")
	_ = rootCmd.PersistentFlags().MarkHidden("log-file")
	_ = rootCmd.PersistentFlags().MarkHidden("log-format")
}

// setup initializes logging and the timezone and loads the config. A config
// that cannot be loaded aborts the command.
func setup() (*config.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	if err := util.InitLogger(logLevel, expandPath(logFile), util.ParseLogFormat(logFormat), debug); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	if err := util.InitializeTimeProvider(timezone); err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		util.LogError(err.Error())
		return nil, err
	}
	return cfg, nil
}

func clock() (util.Clock, error) {
	if nowOverride == "" {
		return util.SystemClock{}, nil
	}
	at, err := util.ParseInstant(nowOverride)
	if err != nil {
		return nil, fmt.Errorf("invalid --now: %w", err)
	}
	return util.FixedClock{T: at}, nil
}

func newGarden(cfg *config.Config) (*garden.Garden, error) {
	c, err := clock()
	if err != nil {
		return nil, err
	}
	return garden.New(cfg, garden.Options{
		Clock:        c,
		Concurrency:  concurrency,
		OutputFormat: outputFormat,
	}), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	g, err := newGarden(cfg)
	if err != nil {
		return err
	}
	return g.Render(cmd.Context(), cmd.OutOrStdout())
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	return util.ExpandPath(path)
}

// defaultConfigPath prefers config.json beside the executable and falls
// back to the working directory.
func defaultConfigPath() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), defaultConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return defaultConfigName
}
