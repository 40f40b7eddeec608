package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shelfq",
	Short: "Personal book catalog with CSV reconciliation",
	Long: `shelfq keeps a personal book catalog on a SQLite backend. It imports
and exports the catalog as CSV in several header layouts, merges
overlapping files without duplicating books, and can fill in missing
bibliographic data from public lookup services.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to database file (overrides SHELFQ_DB_PATH)")
	rootCmd.PersistentFlags().String("output", "", "Output format: table, json, ndjson, yaml, tsv")
	rootCmd.PersistentFlags().Bool("porcelain", false, "Stable machine-readable output")
}
