package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/output"
	"github.com/hannesa2/AudioRecorder/internal/storage"
)

func NewRenameCmd(deps *Dependencies) *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "rename <record> <new-name>",
		Short: "Rename a record, keeping its directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			path := recordPath(deps, args[0])
			if !deps.App.Files.Rename(path, args[1], ext) {
				return fmt.Errorf("could not rename %s", path)
			}

			formatter.Moved("Renamed", path, storage.RenameTarget(path, args[1], ext))
			return nil
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", "", "New extension (default: keep the current one)")

	return cmd
}
