package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/chriserin/bolts/internal/bitarray"
	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/core"
	"github.com/chriserin/bolts/internal/corpus"
	"github.com/chriserin/bolts/internal/ui"
	"github.com/spf13/cobra"
)

var (
	inputFile  string
	recordFlag bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <grammar> [hex]",
	Short: "Parse input with a grammar and print its debug rendering",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(argAt(args, 1), inputFile)
		if err != nil {
			return err
		}
		return RunParse(cmd.OutOrStdout(), settings, args[0], data, recordFlag)
	},
}

func init() {
	for _, c := range []*cobra.Command{parseCmd, fuzzCmd, vectorizeCmd} {
		c.Flags().StringVar(&inputFile, "file", "", "Read raw input bytes from a file instead of hex")
		c.Flags().BoolVar(&recordFlag, "record", false, "Store the run in the corpus")
	}
	rootCmd.AddCommand(parseCmd)
}

// parsed is the outcome of running a grammar over an input.
type parsed struct {
	grammar  core.DataModel
	result   core.DataModel
	err      error
	consumed int
}

func (p parsed) run(name string, data []byte) corpus.Run {
	return corpus.NewRun(name, data, p.result, p.err, p.consumed)
}

func parseWith(cfg config.Config, name string, data []byte) (parsed, error) {
	g, err := lookupGrammar(cfg, name)
	if err != nil {
		return parsed{}, err
	}
	return parseAgainst(g, data), nil
}

// parseAgainst runs an already built grammar. Inputs that must share rule
// identity, such as breeding parents, go through one instance.
func parseAgainst(g core.DataModel, data []byte) parsed {
	in := bitarray.New(data)
	result, perr := core.ParseBits(g, in)
	return parsed{grammar: g, result: result, err: perr, consumed: in.Head()}
}

func RunParse(w io.Writer, cfg config.Config, name string, data []byte, record bool) error {
	p, err := parseWith(cfg, name, data)
	if err != nil {
		return err
	}

	if record {
		if err := recordRun(w, cfg, name, data, p, nil); err != nil {
			return err
		}
	}

	if p.err != nil {
		ui.FailLine(w, name+" "+hexString(data))
		reportParseError(w, p.err, cfg.Verbosity > 0)
		return fmt.Errorf("input does not match %s", name)
	}

	ui.OKLine(w, core.Debug(p.result))
	ui.BitsLine(w, p.consumed, len(data)*8)
	return nil
}

// recordRun stores the run and, when given, extra data hung off it.
func recordRun(w io.Writer, cfg config.Config, name string, data []byte, p parsed, extra func(*corpus.Store, string) error) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.RecordRun(p.run(name, data))
	if err != nil {
		return err
	}
	if extra != nil {
		if err := extra(store, id); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "recorded %s\n", shortID(id))
	return nil
}

// reportParseError prints the failure tree. When verbose it adds the
// deepest failure and the stack captured where it was raised.
func reportParseError(w io.Writer, err error, verbose bool) {
	var pe *core.ParseError
	if !errors.As(err, &pe) {
		fmt.Fprintln(w, err)
		return
	}
	ui.ErrorTree(w, pe)
	if !verbose {
		return
	}
	if deepest := pe.Deepest(); deepest != nil {
		ui.DeepestLine(w, deepest)
		ui.StackTrace(w, deepest.StackTrace())
	}
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
