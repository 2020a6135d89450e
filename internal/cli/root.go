package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/config"
	"github.com/hannesa2/AudioRecorder/internal/app"
	"github.com/hannesa2/AudioRecorder/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "recorder",
		Short:         "Record audio and manage record files",
		Long:          "A CLI tool that records audio into named record files and manages them: trash, restore, rename, delete, and free space checks.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewNewCmd(deps))
	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewTrashCmd(deps))
	rootCmd.AddCommand(NewRestoreCmd(deps))
	rootCmd.AddCommand(NewDeleteCmd(deps))
	rootCmd.AddCommand(NewRenameCmd(deps))
	rootCmd.AddCommand(NewSpaceCmd(deps))
	rootCmd.AddCommand(NewSettingsCmd(deps))
	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}

// recordPath resolves a bare file name against the recordings directory.
func recordPath(deps *Dependencies, arg string) string {
	if filepath.IsAbs(arg) || strings.ContainsAny(arg, `/\`) {
		return arg
	}
	return filepath.Join(deps.App.Files.Dir(), arg)
}
