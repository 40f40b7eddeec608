package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/domain"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalog with sample books",
	Long: `Adds a handful of sample books for trying out the tool. Does nothing
when the catalog already has entries unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runSeed),
}

var seedForce bool

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Seed even when the catalog is not empty")
}

func sampleBooks() []*domain.Book {
	return []*domain.Book{
		{
			Title:     "こころ",
			Author:    "夏目漱石",
			Publisher: "岩波書店",
			Year:      "1914",
			ISBN:      "9784003101018",
			Status:    domain.StatusHeld,
			Tags:      []string{"fiction", "classic"},
		},
		{
			Title:     "雪国",
			Author:    "川端康成",
			Publisher: "新潮社",
			Year:      "1937",
			Status:    domain.StatusHeld,
			Tags:      []string{"fiction"},
		},
		{
			Title:     "The Go Programming Language",
			Author:    "Alan A. A. Donovan, Brian W. Kernighan",
			Publisher: "Addison-Wesley",
			Year:      "2015",
			ISBN:      "9780134190440",
			Location:  "desk",
			Status:    domain.StatusCheckedOut,
			Tags:      []string{"programming"},
		},
	}
}

func runSeed(app *appctx.App, cmd *cobra.Command, args []string) error {
	cat := app.Store.LoadCatalog()
	if cat.Len() > 0 && !seedForce {
		fmt.Fprintln(cmd.OutOrStdout(), "catalog is not empty, use --force to seed anyway")
		return nil
	}

	added := 0
	for _, b := range sampleBooks() {
		if b.ISBN != "" && cat.FindByISBN(b.ISBN) != nil {
			continue
		}
		b.ID = domain.NewID()
		cat.Upsert(b)
		added++
	}

	if added == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to seed")
		return nil
	}
	if err := app.Store.SaveCatalog(cat, "catalog.seeded", map[string]int{"added": added}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d book(s)\n", added)
	return nil
}
