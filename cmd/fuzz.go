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

var fuzzCmd = &cobra.Command{
	Use:   "fuzz <grammar> [hex]",
	Short: "Parse input and print its mutants",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(argAt(args, 1), inputFile)
		if err != nil {
			return err
		}
		return RunFuzz(cmd.OutOrStdout(), settings, args[0], data, recordFlag)
	},
}

func init() {
	rootCmd.AddCommand(fuzzCmd)
}

func RunFuzz(w io.Writer, cfg config.Config, name string, data []byte, record bool) error {
	p, err := parseWith(cfg, name, data)
	if err != nil {
		return err
	}
	if p.err != nil {
		ui.FailLine(w, name+" "+hexString(data))
		reportParseError(w, p.err, cfg.Verbosity > 0)
		return fmt.Errorf("input does not match %s", name)
	}

	mutants := core.Fuzz(p.result)
	if cfg.Fuzz.Limit > 0 && len(mutants) > cfg.Fuzz.Limit {
		mutants = mutants[:cfg.Fuzz.Limit]
	}

	if record {
		err := recordRun(w, cfg, name, data, p, func(s *corpus.Store, id string) error {
			return s.RecordMutants(id, mutants)
		})
		if err != nil {
			return err
		}
	}

	ui.OKLine(w, core.Debug(p.result))
	for i, m := range mutants {
		bytes, bits := core.SerializeBytes(m)
		ui.MutantRow(w, i, hexString(bytes), bits, m.Debug())
	}
	fmt.Fprintf(w, "%d mutants\n", len(mutants))
	return nil
}
