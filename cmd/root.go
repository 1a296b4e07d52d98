package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/chriserin/bolts/internal/config"
)

var (
	configPath string
	verbose    int
	settings   = config.Default()
)

var rootCmd = &cobra.Command{
	Use:          "bolts",
	Short:        "Parse, fuzz and vectorize bitstreams with typed grammars",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose > 0 {
			cfg.Verbosity = verbose
		}
		commonlog.Configure(cfg.Verbosity, nil)
		settings = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Increase log verbosity")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
