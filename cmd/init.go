package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a bolts corpus in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout(), settings, configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer, cfg config.Config, cfgPath string) error {
	// corpus directory
	dir := filepath.Dir(cfg.Database)
	_, err := os.Stat(dir)
	dirExists := err == nil
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", dir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", dir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", dir)
	}

	// database
	_, err = os.Stat(cfg.Database)
	dbExists := err == nil
	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", cfg.Database)
	} else {
		fmt.Fprintf(w, "%s created\n", cfg.Database)
	}

	// config
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s created\n", cfgPath)
	} else {
		fmt.Fprintf(w, "%s already exists\n", cfgPath)
	}

	// gitignore
	msgs, err := ensureGitignore(cfg.Database)
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
