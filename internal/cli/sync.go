package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/catalog"
	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/db"
	"github.com/mkanno/shelfq/internal/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Exchange the catalog with another store file",
	Long: `Copies the catalog between this store and another shelfq database,
for moving between machines or keeping a backup file on shared
storage. push replaces the remote catalog wholesale; pull merges the
remote catalog into the local one filling blanks, never deleting.`,
}

var syncPushCmd = &cobra.Command{
	Use:   "push <path>",
	Short: "Replace the catalog in another store file with this one",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runSyncPush),
}

var syncPullCmd = &cobra.Command{
	Use:   "pull <path>",
	Short: "Merge the catalog from another store file into this one",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runSyncPull),
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
}

// openRemote opens (and migrates) a second store file.
func openRemote(app *appctx.App, path string) (*store.Store, func(), error) {
	remote, err := db.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := remote.Migrate(); err != nil {
		remote.Close()
		return nil, nil, fmt.Errorf("failed to migrate %s: %w", path, err)
	}
	return store.New(remote, app.Log), func() { remote.Close() }, nil
}

func runSyncPush(app *appctx.App, cmd *cobra.Command, args []string) error {
	remote, closeRemote, err := openRemote(app, args[0])
	if err != nil {
		return err
	}
	defer closeRemote()

	cat := app.Store.LoadCatalog()
	if err := remote.SaveCatalog(cat, "catalog.pushed", map[string]int{"books": cat.Len()}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "pushed %d book(s) to %s\n", cat.Len(), args[0])
	return nil
}

func runSyncPull(app *appctx.App, cmd *cobra.Command, args []string) error {
	remote, closeRemote, err := openRemote(app, args[0])
	if err != nil {
		return err
	}
	defer closeRemote()

	local := app.Store.LoadCatalog()
	incoming := remote.LoadCatalog()

	merged, report := catalog.Merge(local, incoming.Books, catalog.PolicyFill)
	fmt.Fprintln(cmd.OutOrStdout(), report.String())

	if report.Added == 0 && report.Updated == 0 {
		return nil
	}
	return app.Store.SaveCatalog(merged, "catalog.pulled", report)
}
