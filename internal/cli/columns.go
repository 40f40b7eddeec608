package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/catalog"
	"github.com/mkanno/shelfq/internal/cli/appctx"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List or change column visibility",
	Long: `Without arguments, lists the column configuration. Extras columns
discovered in imports appear here and start hidden.`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runColumns),
}

var columnsShowCmd = &cobra.Command{
	Use:   "show <column>",
	Short: "Make a column visible",
	Args:  cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), func(app *appctx.App, cmd *cobra.Command, args []string) error {
		return setColumnVisible(app, cmd, args[0], true)
	}),
}

var columnsHideCmd = &cobra.Command{
	Use:   "hide <column>",
	Short: "Hide a column",
	Args:  cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), func(app *appctx.App, cmd *cobra.Command, args []string) error {
		return setColumnVisible(app, cmd, args[0], false)
	}),
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.AddCommand(columnsShowCmd)
	columnsCmd.AddCommand(columnsHideCmd)
}

func runColumns(app *appctx.App, cmd *cobra.Command, args []string) error {
	columns := catalog.SyncColumns(app.Store.LoadCatalog(), app.Store.LoadColumns())

	rows := make([][]string, len(columns))
	for i, col := range columns {
		visible := "hidden"
		if col.Visible {
			visible = "visible"
		}
		rows[i] = []string{col.ID, col.Label, visible}
	}

	renderer, err := rendererFor(app, cmd)
	if err != nil {
		return err
	}
	return renderer.RenderTable([]string{"ID", "LABEL", "VISIBILITY"}, rows)
}

func setColumnVisible(app *appctx.App, cmd *cobra.Command, id string, visible bool) error {
	columns := catalog.SyncColumns(app.Store.LoadCatalog(), app.Store.LoadColumns())

	found := false
	for i := range columns {
		if columns[i].ID == id {
			columns[i].Visible = visible
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no column %q", id)
	}

	if err := app.Store.SaveColumns(columns); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
