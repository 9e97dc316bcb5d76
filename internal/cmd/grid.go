package cmd

import (
	"github.com/spf13/cobra"
)

func newGridCmd() *cobra.Command {
	var (
		flags    logFlags
		expanded bool
	)

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "Render the saturation grid",
		Long: `Render the log as one row per week, Sunday first. Logs longer than
eight weeks show only the most recent eight unless --expanded is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.buildSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			renderGrid(cmd.OutOrStdout(), session.Grid(expanded), flags.colorEnabled(cmd.OutOrStdout()))
			return nil
		},
	}

	flags.register(gridCmd)
	gridCmd.Flags().BoolVarP(&expanded, "expanded", "e", false, "Show every week instead of the last eight")

	return gridCmd
}
