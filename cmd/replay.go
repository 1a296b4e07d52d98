package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/corpus"
	"github.com/chriserin/bolts/internal/ui"
	"github.com/spf13/cobra"
)

var updateFlag bool

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-parse every recorded run and report outcomes that changed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunReplay(cmd.OutOrStdout(), settings, updateFlag)
	},
}

func init() {
	replayCmd.Flags().BoolVar(&updateFlag, "update", false, "Store the new outcome of changed runs")
	rootCmd.AddCommand(replayCmd)
}

func RunReplay(w io.Writer, cfg config.Config, update bool) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(corpus.Filter{})
	if err != nil {
		return err
	}

	changed := 0
	for _, r := range runs {
		label := shortID(r.ID) + "  " + r.Grammar
		p, err := parseWith(cfg, r.Grammar, r.Input)
		if err != nil {
			ui.FailLine(w, label+": "+err.Error())
			continue
		}
		now := p.run(r.Grammar, r.Input)
		if now.OK == r.OK && now.Debug == r.Debug && now.Consumed == r.Consumed {
			ui.SameLine(w, label)
			continue
		}

		changed++
		ui.ChangedLine(w, fmt.Sprintf("%s: %s -> %s", label, outcomeText(r), outcomeText(now)))
		if update {
			now.ID = r.ID
			if err := store.UpdateOutcome(now); err != nil {
				return err
			}
		}
	}

	ui.SummaryLine(w, "replayed", len(runs))
	if changed > 0 {
		fmt.Fprintf(w, "%d changed\n", changed)
	}
	return nil
}

func outcomeText(r corpus.Run) string {
	if r.OK {
		return r.Debug
	}
	return "fail"
}
