package cli

import (
	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/output"
	"github.com/hannesa2/AudioRecorder/internal/prefs"
)

func NewSettingsCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show recording preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			for _, key := range prefs.Keys() {
				v, err := deps.App.Prefs.Get(key)
				if err != nil {
					return err
				}
				formatter.Setting(key, v)
			}
			loc := deps.App.Files.Location()
			formatter.DirectoryChanged(loc.Dir, loc.Root.String())
			return nil
		},
	}

	cmd.AddCommand(newSettingsSetCmd(deps))

	return cmd
}

func newSettingsSetCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change a recording preference",
		Args:      cobra.ExactArgs(2),
		ValidArgs: prefs.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			res, err := deps.App.UpdateSetting.Execute(args[0], args[1])
			if err != nil {
				return err
			}

			formatter.Setting(args[0], args[1])
			if res.Moved {
				formatter.DirectoryChanged(res.Location.Dir, res.Location.Root.String())
			}
			return nil
		},
	}
}
