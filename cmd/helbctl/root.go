package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "helbctl",
	Short:        "Offline HELB loan and budget calculator",
	Long:         "Generate loan repayment schedules and evaluate budgets without a running server.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
