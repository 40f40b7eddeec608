package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/domain"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id|isbn>...",
	Short: "Remove books from the catalog",
	Long: `Removes one or more books. Removal is permanent; a confirmation is
required unless --yes is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runRm),
}

var rmYes bool

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().BoolVar(&rmYes, "yes", false, "Skip confirmation prompt")
}

func runRm(app *appctx.App, cmd *cobra.Command, args []string) error {
	cat := app.Store.LoadCatalog()

	books := make([]*domain.Book, 0, len(args))
	for _, arg := range args {
		book := cat.Find(arg)
		if book == nil {
			return fmt.Errorf("no book matching %q", arg)
		}
		books = append(books, book)
	}

	if !rmYes {
		prompt := fmt.Sprintf("Permanently remove %d book(s).", len(books))
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
			return fmt.Errorf("aborted")
		}
	}

	removed := make([]string, 0, len(books))
	for _, book := range books {
		cat.Remove(book.ID)
		removed = append(removed, book.ID)
	}

	if err := app.Store.SaveCatalog(cat, "book.removed", removed); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %d book(s)\n", len(removed))
	return nil
}
