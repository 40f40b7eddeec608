package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/catalog"
	"github.com/mkanno/shelfq/internal/cli/appctx"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as canonical CSV",
	Long: `Writes the whole catalog as CSV in the canonical column order.
Extras columns are appended after the fixed set. The default output
file carries the current date; use --out - to write to stdout.`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runExport),
}

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "O", "", "Output path ('-' for stdout)")
}

func runExport(app *appctx.App, cmd *cobra.Command, args []string) error {
	cat := app.Store.LoadCatalog()
	csv := catalog.ExportCSV(cat)

	if exportOut == "-" {
		fmt.Fprint(cmd.OutOrStdout(), csv)
		return nil
	}

	path := exportOut
	if path == "" {
		path = catalog.ExportFilename(time.Now())
	}
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d book(s) to %s\n", cat.Len(), path)
	return nil
}
