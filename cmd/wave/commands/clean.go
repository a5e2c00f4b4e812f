package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/wave/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the build folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, _ := cmd.Flags().GetBool("files")
			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Config:    configPath(cmd),
				FilesOnly: files,
			})
		},
	}
	cmd.Flags().Bool("files", false, "Only delete the files rules produce")
	return cmd
}
