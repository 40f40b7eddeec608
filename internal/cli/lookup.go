package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/isbn"
	"github.com/mkanno/shelfq/internal/lookup"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <isbn>",
	Short: "Look up bibliographic data for an ISBN",
	Long: `Queries public catalog services for one ISBN and prints the merged
bibliographic fields. The catalog is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.NoDB(), runLookup),
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(app *appctx.App, cmd *cobra.Command, args []string) error {
	canonical := isbn.Normalize(args[0])
	if canonical == "" {
		return fmt.Errorf("no digits in %q", args[0])
	}

	client := lookup.New(app.Config.LookupUserAgent, app.Config.LookupRPS, app.Log)
	res, err := client.Lookup(cmd.Context(), canonical)
	if err != nil {
		return err
	}

	renderer, err := rendererFor(app, cmd)
	if err != nil {
		return err
	}
	if formatOf(app, cmd) == "json" {
		return renderer.RenderJSON(res)
	}
	return renderer.RenderTable(
		[]string{"FIELD", "VALUE"},
		[][]string{
			{"ISBN", canonical},
			{"Title", res.Title},
			{"Author", res.Author},
			{"Publisher", res.Publisher},
			{"Year", res.Year},
			{"Cover", res.Cover},
		},
	)
}
