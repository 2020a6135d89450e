package cli

import (
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/output"
	"github.com/hannesa2/AudioRecorder/internal/storage"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(cmd.OutOrStdout())
			ok := true

			if _, err := exec.LookPath("ffmpeg"); err != nil {
				f.SetupCheck("ffmpeg", false, "not found in PATH")
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			if dir, err := deps.App.Files.PublicDir(); err != nil {
				f.SetupCheck("Public storage", false, err.Error())
			} else {
				f.SetupCheck("Public storage", true, dir)
			}
			if dir, err := deps.App.Files.PrivateDir(); err != nil {
				f.SetupCheck("Private storage", false, err.Error())
			} else {
				f.SetupCheck("Private storage", true, dir)
			}

			loc := deps.App.Files.Location()
			if loc.Root == storage.RootFallback {
				f.SetupCheck("Recordings directory", false, loc.Dir+" (fallback)")
				ok = false
			} else {
				f.SetupCheck("Recordings directory", true, loc.Dir+" ("+loc.Root.String()+")")
			}

			if space, err := deps.App.Files.HasAvailableSpace(); err != nil {
				f.SetupCheck("Free space", false, err.Error())
				ok = false
			} else if !space {
				f.SetupCheck("Free space", false, "less than "+deps.App.Files.MinRemainingTime().String()+" of recording left")
				ok = false
			} else {
				f.SetupCheck("Free space", true, "enough to record")
			}

			f.SetupCheck("Preferences", true, deps.App.Prefs.Path())

			if ok {
				f.Success("\nAll prerequisites met. Ready to record!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
