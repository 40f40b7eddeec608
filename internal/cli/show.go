package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/catalog"
	"github.com/mkanno/shelfq/internal/cli/appctx"
)

var showCmd = &cobra.Command{
	Use:   "show <id|isbn>",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runShow),
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(app *appctx.App, cmd *cobra.Command, args []string) error {
	cat := app.Store.LoadCatalog()

	book := cat.Find(args[0])
	if book == nil {
		return fmt.Errorf("no book matching %q", args[0])
	}

	renderer, err := rendererFor(app, cmd)
	if err != nil {
		return err
	}
	columns := catalog.SyncColumns(cat, app.Store.LoadColumns())
	return renderer.Book(book, columns)
}
