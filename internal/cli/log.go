package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/cli/appctx"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent catalog mutations",
	Args:  cobra.NoArgs,
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runLog),
}

var logLimit int

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "Number of events to show")
}

func runLog(app *appctx.App, cmd *cobra.Command, args []string) error {
	events, err := app.Store.Events().Recent(logLimit)
	if err != nil {
		return err
	}

	rows := make([][]string, len(events))
	for i, ev := range events {
		rows[i] = []string{ev.Timestamp.Format(time.RFC3339), ev.EventType, ev.Payload}
	}

	renderer, err := rendererFor(app, cmd)
	if err != nil {
		return err
	}
	return renderer.RenderTable([]string{"TIME", "EVENT", "PAYLOAD"}, rows)
}
