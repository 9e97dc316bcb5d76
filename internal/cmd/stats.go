package cmd

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var (
		flags   logFlags
		history bool
	)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the stats board",
		Long:  `Print the stats board for the log, optionally with the daily saturation history.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.buildSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			renderSummary(cmd.OutOrStdout(), session.Summary(), history)
			return nil
		},
	}

	flags.register(statsCmd)
	statsCmd.Flags().BoolVar(&history, "history", false, "Also print the daily saturation history")

	return statsCmd
}
