package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/core"
	"github.com/chriserin/bolts/internal/grammar"
	"github.com/spf13/cobra"
)

var grammarsCmd = &cobra.Command{
	Use:   "grammars",
	Short: "List the built-in grammars",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunGrammars(cmd.OutOrStdout(), settings)
	},
}

func init() {
	rootCmd.AddCommand(grammarsCmd)
}

func RunGrammars(w io.Writer, cfg config.Config) error {
	names := grammar.Names()
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range names {
		g, err := lookupGrammar(cfg, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-*s  %s (%d features)\n", width, name, grammar.Summary(name), len(core.Features(g)))
	}
	return nil
}
