// Package cli implements the memomap CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/memomap/internal/config"
	"github.com/iammorganparry/memomap/internal/store"
)

var dbPathFlag string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "memomap",
	Short: "Pin personal memories to map locations",
	Long:  "A single-binary memory map: serves an interactive map page and keeps your memories in a local SQLite file.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPathFlag, "db", "d", "", "Database path (default: $MEMOMAP_DB_PATH or ~/.memomap/memomap.db)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPathFlag != "" {
		cfg.DBPath = dbPathFlag
	}
	return cfg, nil
}

func openDB() (*store.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.DBPath)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
