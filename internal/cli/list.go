package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mateusdtakayama/meet-transcript/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			infos, err := deps.App.Browse.List()
			if err != nil {
				return err
			}

			if len(infos) == 0 {
				formatter.Info("No meetings found")
				return nil
			}

			formatter.MeetingListHeader()
			for _, info := range infos {
				formatter.MeetingListItem(info.Label, info.HasTranscript, info.HasSummary)
			}

			return nil
		},
	}

	return cmd
}
