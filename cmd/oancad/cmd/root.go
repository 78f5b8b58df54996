// Package cmd implements the CLI commands for oancad.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "oancad",
	Short: "Deterministic vehicle buy-price engine",
	Long:  "oancad prices trade-in and auction vehicles against a dealer's own historical cost basis. It serves a pricing API backed by the sales ledger, persists every decision as an audit, and escalates anything the rules refuse to price.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
