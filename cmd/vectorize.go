package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/core"
	"github.com/chriserin/bolts/internal/corpus"
	"github.com/chriserin/bolts/internal/ui"
	"github.com/spf13/cobra"
)

var flattenFlag bool

var vectorizeCmd = &cobra.Command{
	Use:   "vectorize <grammar> [hex]",
	Short: "Parse input and print its feature histogram",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(argAt(args, 1), inputFile)
		if err != nil {
			return err
		}
		return RunVectorize(cmd.OutOrStdout(), settings, args[0], data, recordFlag, flattenFlag)
	},
}

func init() {
	vectorizeCmd.Flags().BoolVar(&flattenFlag, "flatten", false, "Also print the fixed-length embedding")
	rootCmd.AddCommand(vectorizeCmd)
}

func RunVectorize(w io.Writer, cfg config.Config, name string, data []byte, record, flatten bool) error {
	p, err := parseWith(cfg, name, data)
	if err != nil {
		return err
	}
	if p.err != nil {
		ui.FailLine(w, name+" "+hexString(data))
		reportParseError(w, p.err, cfg.Verbosity > 0)
		return fmt.Errorf("input does not match %s", name)
	}

	universe := core.Features(p.grammar)
	fv := core.Vectorize(p.result, universe)

	if record {
		err := recordRun(w, cfg, name, data, p, func(s *corpus.Store, id string) error {
			return s.RecordFeatures(id, fv)
		})
		if err != nil {
			return err
		}
	}

	names := fv.Names()
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}
	for _, n := range names {
		ui.FeatureRow(w, n, fv.Get(n), width)
	}
	if flatten {
		fmt.Fprintf(w, "embedding %v\n", fv.Flatten(universe, fv.MaxDepth()))
	}
	return nil
}
