package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/output"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow preference changes and re-resolve the recordings directory",
		Long:  "Watch the preferences file and re-resolve the recordings directory whenever the storage preference changes. Ctrl+C to stop.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			files := deps.App.Files
			loc := files.Location()
			formatter.DirectoryChanged(loc.Dir, loc.Root.String())
			formatter.Info("Watching " + deps.App.Prefs.Path())

			return deps.App.Prefs.Watch(ctx, func() {
				before := files.Location()
				after := files.UpdateRecordingDir()
				if after != before {
					formatter.DirectoryChanged(after.Dir, after.Root.String())
				}
			})
		},
	}
}
