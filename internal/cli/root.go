package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcrawford/cadence/internal/config"
	"github.com/mcrawford/cadence/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Habit tracking with strength scoring",
	Long:  "Cadence tracks habits and scores how consistently you keep them. Single Go binary, local SQLite storage.",
}

// configPath is the --config flag, shared by all subcommands.
var configPath string

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.cadence/cadence.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(monthsCmd)
}

// loadConfig resolves the config file, preferring the --config flag.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.Default(), nil
		}
		path = filepath.Join(home, ".cadence", "cadence.yaml")
	}
	return config.Load(path)
}

// openStore opens the configured database.
func openStore(cfg config.Config) (*store.DB, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	return store.Open(dbPath)
}
