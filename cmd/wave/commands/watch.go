package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/wave/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild automatically when sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			keepGoing, _ := cmd.Flags().GetBool("keep-going")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Config:    configPath(cmd),
				Jobs:      jobs,
				KeepGoing: keepGoing,
			})
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Number of rules run at once")
	cmd.Flags().Bool("keep-going", false, "Keep running later groups when a rule fails")
	return cmd
}
