package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"TripPlanner/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tripctl",
	Short: "Maintenance commands for the trip planner",
	Long: `tripctl runs schema migrations, seeds the default trip and
converts amounts with the configured calculator rate.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(convertCmd)
}
