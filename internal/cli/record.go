package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/output"
)

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Record audio into a new record file",
		Long:  "Record from the default input into a new record file using the current preferences. Ctrl+C to stop.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			settings := deps.App.Prefs.Settings()
			result, err := deps.App.StartRecording.Execute(ctx, func(path string) {
				formatter.RecordingStarted(path, settings)
			})
			if err != nil {
				return err
			}

			formatter.RecordingStopped(result.Duration())
			formatter.RecordCreated(result.Path)
			return nil
		},
	}
}
