package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/core"
	"github.com/chriserin/bolts/internal/corpus"
	"github.com/chriserin/bolts/internal/grammar"
)

// readInput decodes a hex argument, or reads raw bytes from file when one
// is given. Spaces, colons and a leading 0x are ignored in hex.
func readInput(hexArg, file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		return data, nil
	}
	clean := strings.TrimPrefix(strings.TrimPrefix(hexArg, "0x"), "0X")
	clean = strings.NewReplacer(" ", "", ":", "", "_", "").Replace(clean)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input %q: %w", hexArg, err)
	}
	return data, nil
}

func lookupGrammar(cfg config.Config, name string) (core.DataModel, error) {
	opts, err := cfg.GrammarOptions()
	if err != nil {
		return nil, err
	}
	return grammar.Lookup(name, opts)
}

func openStore(cfg config.Config) (*corpus.Store, error) {
	if _, err := os.Stat(cfg.Database); os.IsNotExist(err) {
		return nil, fmt.Errorf("run `bolts init` first")
	}
	store, err := corpus.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

func hexString(data []byte) string {
	if len(data) == 0 {
		return "(empty)"
	}
	return hex.EncodeToString(data)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
