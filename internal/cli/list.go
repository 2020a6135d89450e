package cli

import (
	"github.com/spf13/cobra"

	"github.com/hannesa2/AudioRecorder/internal/domain/record/usecases"
	"github.com/hannesa2/AudioRecorder/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	var opts usecases.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List record files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			records, err := deps.App.ListRecords.Execute(opts)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				formatter.Info("No records found")
				return nil
			}

			loc := deps.App.Files.Location()
			formatter.RecordListHeader(loc.Dir, loc.Root.String())
			for _, r := range records {
				formatter.RecordListItem(r)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.IncludeTrashed, "all", "a", false, "Include trashed records")
	cmd.Flags().BoolVar(&opts.TrashedOnly, "trash", false, "Only list trashed records")

	return cmd
}
