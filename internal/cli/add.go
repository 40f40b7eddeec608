package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/isbn"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Long: `Adds one book. The ISBN may be pasted or scanned in any common form
(hyphens, full-width digits, ISBN-10); it is normalized before storage.`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runAdd),
}

var (
	addTitle     string
	addAuthor    string
	addPublisher string
	addYear      string
	addISBN      string
	addLocation  string
	addStatus    string
	addNote      string
	addTags      string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "Book title")
	addCmd.Flags().StringVar(&addAuthor, "author", "", "Author")
	addCmd.Flags().StringVar(&addPublisher, "publisher", "", "Publisher")
	addCmd.Flags().StringVar(&addYear, "year", "", "Publication year")
	addCmd.Flags().StringVar(&addISBN, "isbn", "", "ISBN (any common form)")
	addCmd.Flags().StringVar(&addLocation, "location", "", "Shelf location")
	addCmd.Flags().StringVar(&addStatus, "status", "", "Status: held or checked-out")
	addCmd.Flags().StringVar(&addNote, "note", "", "Free-form note")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Tags, separated by comma or semicolon")
}

func runAdd(app *appctx.App, cmd *cobra.Command, args []string) error {
	// Validate before an id is generated: a generated id alone must
	// not make an otherwise blank record storable.
	if addTitle == "" && isbn.Normalize(addISBN) == "" {
		return fmt.Errorf("nothing to add: give at least --title or --isbn")
	}

	book := &domain.Book{
		ID:        domain.NewID(),
		Title:     addTitle,
		Author:    addAuthor,
		Publisher: addPublisher,
		Year:      addYear,
		ISBN:      isbn.Normalize(addISBN),
		Location:  addLocation,
		Status:    domain.ParseStatus(addStatus),
		Note:      addNote,
		Tags:      domain.SplitTags(addTags),
	}

	cat := app.Store.LoadCatalog()
	if book.ISBN != "" {
		if existing := cat.FindByISBN(book.ISBN); existing != nil {
			return fmt.Errorf("ISBN %s already cataloged as %q (%s)", book.ISBN, existing.Title, existing.ID)
		}
	}
	cat.Upsert(book)

	if err := app.Store.SaveCatalog(cat, "book.added", book); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), book.ID)
	return nil
}
