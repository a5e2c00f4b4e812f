package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/wave/internal/app"
	"go.trai.ch/wave/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run every stale rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kindName, _ := cmd.Flags().GetString("kind")
			kind, err := domain.ParseBuildKind(kindName)
			if err != nil {
				return err
			}
			jobs, _ := cmd.Flags().GetInt("jobs")
			keepGoing, _ := cmd.Flags().GetBool("keep-going")

			_, err = c.app.Build(cmd.Context(), app.BuildOptions{
				Config:    configPath(cmd),
				Kind:      kind,
				Jobs:      jobs,
				KeepGoing: keepGoing,
			})
			return err
		},
	}
	cmd.Flags().StringP("kind", "k", "incremental", "Build kind: full, incremental, auto or clean")
	cmd.Flags().IntP("jobs", "j", 0, "Number of rules run at once (default: from the project file, else CPU count)")
	cmd.Flags().Bool("keep-going", false, "Keep running later groups when a rule fails")
	return cmd
}
