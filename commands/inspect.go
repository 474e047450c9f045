package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/penwyp/go-horti/internal/core/constants"
	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/presentation/formatter"
	"github.com/penwyp/go-horti/internal/util"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <identity>",
	Short: "Show how one plant's watering streak was evaluated",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	g, err := newGarden(cfg)
	if err != nil {
		return err
	}

	identity := args[0]
	record, now, ok := g.Inspect(identity)
	if !ok {
		return fmt.Errorf("no valid plant for %q (banned, missing or malformed)", identity)
	}

	out := cmd.OutOrStdout()
	if outputFormat == formatter.OutputJSON {
		data, err := sonic.ConfigStd.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	return writeInspection(out, record, now)
}

func writeInspection(w io.Writer, r *model.PlantRecord, now time.Time) error {
	state := "alive"
	if r.IsDead {
		state = "dead"
	}
	age := util.FormatAge(r.Age(now))

	_, err := fmt.Fprintf(w,
		"identity:        %s\n"+
			"owner:           %s\n"+
			"description:     %s\n"+
			"recorded water:  %s\n"+
			"guest waterings: %d\n"+
			"effective water: %s (%s ago)\n"+
			"state:           %s (threshold %d days)\n"+
			"owner says dead: %t\n",
		r.Identity, r.Owner, r.Description,
		util.FormatTimestamp(r.RecordedLastWatered),
		r.GuestEvents,
		util.FormatTimestamp(r.EffectiveLastWatered), age,
		state, constants.StalenessDays,
		r.IsDeadFlag)
	return err
}
