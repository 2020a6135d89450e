package cli

import (
	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/output"
)

func NewNewCmd(deps *Dependencies) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty record file",
		Long:  "Create an empty record file named by the naming preference, or with an explicit file name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			var (
				path string
				err  error
			)
			if name != "" {
				path, err = deps.App.Files.NewNamedRecordFile(name)
			} else {
				path, err = deps.App.Files.NewRecordFile()
			}
			if err != nil {
				return err
			}

			formatter.RecordCreated(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "File name to create instead of a generated one")

	return cmd
}
