package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	universeFile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "CEDEAR screener - rank a CEDEAR universe under multiple strategies",
	Long: `CEDEAR Screener CLI

Scores a fixed universe of CEDEARs (Argentine depositary receipts of US
stocks) under momentum, value and defensive strategies, and aggregates
the strategies into a global ranking.

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener api
  go run ./cmd/screener rank --strategy momentum --n 6
  go run ./cmd/screener scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&universeFile, "universe", "", "universe file (default from UNIVERSE_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
