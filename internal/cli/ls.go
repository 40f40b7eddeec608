package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/catalog"
	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/domain"
)

var lsCmd = &cobra.Command{
	Use:   "ls [query]",
	Short: "List books in the catalog",
	Long: `Lists catalog entries, optionally filtered by author, tag, status,
or a free-text query matched against title, author, and ISBN.`,
	Args: cobra.MaximumNArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runLs),
}

var (
	lsAuthor string
	lsTag    string
	lsStatus string
	lsSort   string
)

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVar(&lsAuthor, "author", "", "Filter by author substring")
	lsCmd.Flags().StringVar(&lsTag, "tag", "", "Filter by exact tag")
	lsCmd.Flags().StringVar(&lsStatus, "status", "", "Filter by status (held, checked-out)")
	lsCmd.Flags().StringVar(&lsSort, "sort", "title", "Sort by: title, author, year")
}

func runLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	cat := app.Store.LoadCatalog()

	var query string
	if len(args) == 1 {
		query = strings.ToLower(args[0])
	}

	var status domain.Status
	if lsStatus != "" {
		status = domain.ParseStatus(lsStatus)
	}

	books := make([]*domain.Book, 0, cat.Len())
	for _, b := range cat.Books {
		if lsAuthor != "" && !strings.Contains(strings.ToLower(b.Author), strings.ToLower(lsAuthor)) {
			continue
		}
		if lsTag != "" && !hasTag(b, lsTag) {
			continue
		}
		if lsStatus != "" && b.Status != status {
			continue
		}
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		books = append(books, b)
	}

	if err := sortBooks(books, lsSort); err != nil {
		return err
	}

	renderer, err := rendererFor(app, cmd)
	if err != nil {
		return err
	}
	columns := catalog.SyncColumns(cat, app.Store.LoadColumns())
	return renderer.Books(books, columns)
}

func hasTag(b *domain.Book, tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func matchesQuery(b *domain.Book, query string) bool {
	return strings.Contains(strings.ToLower(b.Title), query) ||
		strings.Contains(strings.ToLower(b.Author), query) ||
		strings.Contains(b.ISBN, query)
}

func sortBooks(books []*domain.Book, key string) error {
	switch key {
	case "", "title":
		sort.SliceStable(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	case "author":
		sort.SliceStable(books, func(i, j int) bool { return books[i].Author < books[j].Author })
	case "year":
		sort.SliceStable(books, func(i, j int) bool { return books[i].Year < books[j].Year })
	default:
		return fmt.Errorf("unknown sort key %q (title, author, year)", key)
	}
	return nil
}
