package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "satlog",
		Short: "Supplement saturation log in the terminal",
		Long: `satlog renders a supplement log as a weekly grid coloured by the
estimated saturation level, and prints the stats board for it.`,
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.HiddenDefaultCmd = false

	rootCmd.AddCommand(newGridCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
