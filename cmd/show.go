package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recorded run by ID or ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), settings, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, cfg config.Config, id string) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.GetRun(id)
	if err != nil {
		return err
	}

	ui.ShowHeader(w, run.ID, run.Grammar)
	fmt.Fprintf(w, "input  %s\n", hexString(run.Input))
	ui.BitsLine(w, run.Consumed, run.InputBits)
	if run.OK {
		ui.OKLine(w, run.Debug)
	} else {
		ui.FailLine(w, run.Error)
	}

	features, err := store.Features(run.ID)
	if err != nil {
		return err
	}
	if len(features) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "features")
		for _, f := range features {
			fmt.Fprintf(w, "  %s@%d  %d\n", f.Name, f.Depth, f.Count)
		}
	}

	mutants, err := store.Mutants(run.ID)
	if err != nil {
		return err
	}
	if len(mutants) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d mutants (see `bolts mutants %s`)\n", len(mutants), shortID(run.ID))
	}

	return nil
}
