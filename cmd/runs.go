package cmd

import (
	"io"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/corpus"
	"github.com/chriserin/bolts/internal/ui"
	"github.com/spf13/cobra"
)

var (
	grammarFlag string
	failedFlag  bool
	okFlag      bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRuns(cmd.OutOrStdout(), settings, corpus.Filter{Grammar: grammarFlag, Failed: failedFlag, OK: okFlag})
	},
}

func init() {
	runsCmd.Flags().StringVar(&grammarFlag, "grammar", "", "Filter by grammar")
	runsCmd.Flags().BoolVar(&failedFlag, "failed", false, "Show only failed runs")
	runsCmd.Flags().BoolVar(&okFlag, "ok", false, "Show only successful runs")
	rootCmd.AddCommand(runsCmd)
}

func RunRuns(w io.Writer, cfg config.Config, filter corpus.Filter) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(filter)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	// Compute column widths
	grammarWidth := 0
	for _, r := range runs {
		if len(r.Grammar) > grammarWidth {
			grammarWidth = len(r.Grammar)
		}
	}

	for _, r := range runs {
		outcome := r.Debug
		if !r.OK {
			outcome = firstLine(r.Error)
		}
		ui.RunRow(w, shortID(r.ID), r.Grammar, hexString(r.Input), outcome, r.OK, grammarWidth)
	}

	return nil
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
