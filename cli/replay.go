package cli

import (
	"github.com/mobile-next/ghostcli/commands"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run a recorded touch stream through a consumer",
	Long:  `Feeds the events in a JSON event script, in order, to a gesture interpreter and an optional overlay consumer (plain, ghost, transform or transform-icon). Prints every intent produced and the final consumer state.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := commands.LoadEvents(eventsFile)
		if err != nil {
			return finish(commands.NewErrorResponse(err))
		}

		return finish(commands.ReplayCommand(commands.ReplayRequest{
			Events:    events,
			Consumer:  consumerName,
			ImagePath: imagePath,
		}))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVar(&eventsFile, "file", "", "event script to replay, or '-' for stdin")
	replayCmd.Flags().StringVar(&consumerName, "consumer", "plain", "consumer to drive: plain, ghost, transform or transform-icon")
	replayCmd.Flags().StringVar(&imagePath, "image", "", "image returned by the transform capturer")
	_ = replayCmd.MarkFlagRequired("file")
}
