package cli

import (
	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/output"
)

func NewSpaceCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "space",
		Short: "Show free space and remaining recording time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			files := deps.App.Files

			free, err := files.FreeBytes()
			if err != nil {
				return err
			}
			remaining, err := files.RemainingTime()
			if err != nil {
				return err
			}
			ok, err := files.HasAvailableSpace()
			if err != nil {
				return err
			}

			formatter.Space(files.Dir(), free, remaining, ok)
			return nil
		},
	}
}
