package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/wave/internal/app"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the rules grouped by sequence group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, _ := cmd.Flags().GetBool("files")
			return c.app.Plan(cmd.Context(), cmd.OutOrStdout(), app.PlanOptions{
				Config: configPath(cmd),
				Files:  files,
			})
		},
	}
	cmd.Flags().Bool("files", false, "List the files the build produces")
	return cmd
}
