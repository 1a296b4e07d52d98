package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/bolts/internal/grammar"
	"github.com/chriserin/bolts/internal/library"
)

// DefaultPath is where the command line looks for configuration.
const DefaultPath = "bolts.yaml"

type Config struct {
	Database   string `yaml:"database"`
	Ambiguity  string `yaml:"ambiguity"`
	UnionDebug string `yaml:"union_debug"`
	Verbosity  int    `yaml:"verbosity"`
	Fuzz       Fuzz   `yaml:"fuzz"`
}

type Fuzz struct {
	// Limit caps how many mutants a single run prints or records. Zero
	// means no cap.
	Limit int `yaml:"limit"`
}

func Default() Config {
	return Config{
		Database:   ".bolts/bolts.db",
		Ambiguity:  "last",
		UnionDebug: "delegate",
		Fuzz:       Fuzz{Limit: 64},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, err := cfg.GrammarOptions(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Fuzz.Limit < 0 {
		return cfg, fmt.Errorf("%s: fuzz.limit must not be negative", path)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// GrammarOptions translates the combinator settings.
func (c Config) GrammarOptions() (grammar.Options, error) {
	var opts grammar.Options
	switch c.Ambiguity {
	case "", "last":
		opts.Ambiguity = library.PickLast
	case "first":
		opts.Ambiguity = library.PickFirst
	default:
		return opts, fmt.Errorf("ambiguity must be last or first, got %q", c.Ambiguity)
	}
	switch c.UnionDebug {
	case "", "delegate":
		opts.Debug = library.DebugDelegate
	case "empty":
		opts.Debug = library.DebugEmpty
	default:
		return opts, fmt.Errorf("union_debug must be delegate or empty, got %q", c.UnionDebug)
	}
	return opts, nil
}
