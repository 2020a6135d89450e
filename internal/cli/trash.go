package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/output"
)

func NewTrashCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "trash <record>...",
		Short: "Move records to the trash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			failed := 0
			for _, arg := range args {
				path := recordPath(deps, arg)
				trashed, ok := deps.App.Files.Trash(path)
				if !ok {
					formatter.Error("could not trash " + path)
					failed++
					continue
				}
				formatter.Moved("Trashed", path, trashed)
			}
			return failures(failed, "trash")
		},
	}
}

func NewRestoreCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <record>...",
		Short: "Restore trashed records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			failed := 0
			for _, arg := range args {
				path := recordPath(deps, arg)
				restored, ok := deps.App.Files.Untrash(path)
				if !ok {
					formatter.Error("could not restore " + path)
					failed++
					continue
				}
				formatter.Moved("Restored", path, restored)
			}
			return failures(failed, "restore")
		},
	}
}

func NewDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record>...",
		Short: "Permanently delete records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			failed := 0
			for _, arg := range args {
				path := recordPath(deps, arg)
				if !deps.App.Files.Delete(path) {
					formatter.Error("could not delete " + path)
					failed++
					continue
				}
				formatter.Success("Deleted " + path)
			}
			return failures(failed, "delete")
		},
	}
}

func failures(n int, op string) error {
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d record(s) failed to %s", n, op)
}
