package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/core"
	"github.com/chriserin/bolts/internal/ui"
	"github.com/spf13/cobra"
)

var breedCmd = &cobra.Command{
	Use:   "breed <grammar> <hex> <hex>",
	Short: "Parse two inputs and recombine them",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := readInput(args[1], "")
		if err != nil {
			return err
		}
		b, err := readInput(args[2], "")
		if err != nil {
			return err
		}
		return RunBreed(cmd.OutOrStdout(), settings, args[0], a, b)
	},
}

func init() {
	rootCmd.AddCommand(breedCmd)
}

func RunBreed(w io.Writer, cfg config.Config, name string, a, b []byte) error {
	g, err := lookupGrammar(cfg, name)
	if err != nil {
		return err
	}

	var parents []core.DataModel
	for _, data := range [][]byte{a, b} {
		p := parseAgainst(g, data)
		if p.err != nil {
			ui.FailLine(w, name+" "+hexString(data))
			reportParseError(w, p.err, cfg.Verbosity > 0)
			return fmt.Errorf("input does not match %s", name)
		}
		parents = append(parents, p.result)
	}

	child := core.Breed(parents[0], parents[1])
	bytes, bits := core.SerializeBytes(child)
	ui.OKLine(w, child.Debug())
	fmt.Fprintf(w, "%s (%d bits)\n", hexString(bytes), bits)
	return nil
}
