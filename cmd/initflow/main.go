// Package main provides the initflow CLI: a versioned spec store with an
// HTTP API, plus local commands for initializing storage and managing
// accounts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Flag values bound in init.
var (
	flagConfigDir string
	flagDataDir   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "initflow",
	Short: "initflow is a versioned spec document store",
	Long: `initflow stores per-project specification documents with full version
history behind an authenticated HTTP API. Every write archives the
superseded content, so any prior version can be inspected or rolled
back.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: from config.yaml or $(CWD)/.initflow-db)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(userAddCmd)
}
