package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/chriserin/bolts/internal/config"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded runs per grammar",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStats(cmd.OutOrStdout(), settings)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func RunStats(w io.Writer, cfg config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	total := 0
	for _, g := range stats {
		total += g.Runs
	}
	fmt.Fprintf(w, "Runs: %s\n", humanize.Comma(int64(total)))

	for _, g := range stats {
		fmt.Fprintf(w, "  %s: %d ok, %d failed, %s bits consumed\n", g.Grammar, g.OK, g.Failed, humanize.Comma(g.Consumed))
	}

	return nil
}
