package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/catalog"
	"github.com/mkanno/shelfq/internal/cli/appctx"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a CSV file into the catalog",
	Long: `Imports a CSV file, reconciling its rows with the current catalog.
Matched books are merged according to the policy; unmatched rows are
added. Nothing is ever deleted by an import.

With --dry-run the merge is computed and reported but not saved, and
a unified diff of the catalog's CSV form is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runImport),
}

var (
	importPolicy string
	importDryRun bool
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importPolicy, "policy", "", "Merge policy: fill or overwrite (default from config)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Compute and report the merge without saving")
}

func runImport(app *appctx.App, cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	policyStr := importPolicy
	if policyStr == "" {
		policyStr = app.Config.MergePolicy
	}
	policy, err := catalog.ParsePolicy(policyStr)
	if err != nil {
		return err
	}

	existing := app.Store.LoadCatalog()
	result, err := catalog.ImportCSV(string(data), existing, catalog.ImportOptions{Policy: policy})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d record(s), layout %s\n", args[0], result.Decoded, result.Variant)
	fmt.Fprintln(out, result.Report.String())

	if importDryRun {
		diff, err := catalogDiff(existing, result.Catalog)
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Fprintln(out, "no changes")
		} else {
			fmt.Fprint(out, diff)
		}
		fmt.Fprintln(out, "dry run, nothing saved")
		return nil
	}

	columns := catalog.SyncColumns(result.Catalog, app.Store.LoadColumns())
	if err := app.Store.SaveColumns(columns); err != nil {
		return err
	}
	return app.Store.SaveCatalog(result.Catalog, "catalog.imported", result.Report)
}

// catalogDiff renders before/after catalogs in canonical CSV form and
// diffs them, so a dry run shows exactly what the file would change.
func catalogDiff(before, after *catalog.Catalog) (string, error) {
	beforeCSV := catalog.ExportCSV(before)
	afterCSV := catalog.ExportCSV(after)
	if beforeCSV == afterCSV {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(beforeCSV),
		B:        difflib.SplitLines(afterCSV),
		FromFile: "catalog",
		ToFile:   "after import",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, "\n") + "\n", nil
}
