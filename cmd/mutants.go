package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/ui"
	"github.com/spf13/cobra"
)

var mutantsCmd = &cobra.Command{
	Use:   "mutants <id>",
	Short: "List the mutants recorded for a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunMutants(cmd.OutOrStdout(), settings, args[0])
	},
}

func init() {
	rootCmd.AddCommand(mutantsCmd)
}

func RunMutants(w io.Writer, cfg config.Config, id string) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.GetRun(id)
	if err != nil {
		return err
	}

	mutants, err := store.Mutants(run.ID)
	if err != nil {
		return err
	}

	if len(mutants) == 0 {
		fmt.Fprintf(w, "no mutants for %s\n", shortID(run.ID))
		return nil
	}

	for _, m := range mutants {
		ui.MutantRow(w, m.Ordinal, hexString(m.Data), m.Bits, m.Debug)
	}

	return nil
}
