package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/isbn"
	"github.com/mkanno/shelfq/internal/parse"
)

var setCmd = &cobra.Command{
	Use:   "set <id|isbn>",
	Short: "Update fields of a book",
	Long: `Updates fields of one book. Fields are given as flags, or as a JSON
or YAML document on stdin with --stdin (format auto-detected).`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runSet),
}

var (
	setTitle     string
	setAuthor    string
	setPublisher string
	setYear      string
	setISBN      string
	setLocation  string
	setStatus    string
	setNote      string
	setTags      string
	setStdin     bool
	setFormat    string
)

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVar(&setTitle, "title", "", "Book title")
	setCmd.Flags().StringVar(&setAuthor, "author", "", "Author")
	setCmd.Flags().StringVar(&setPublisher, "publisher", "", "Publisher")
	setCmd.Flags().StringVar(&setYear, "year", "", "Publication year")
	setCmd.Flags().StringVar(&setISBN, "isbn", "", "ISBN (any common form)")
	setCmd.Flags().StringVar(&setLocation, "location", "", "Shelf location")
	setCmd.Flags().StringVar(&setStatus, "status", "", "Status: held or checked-out")
	setCmd.Flags().StringVar(&setNote, "note", "", "Free-form note")
	setCmd.Flags().StringVar(&setTags, "tags", "", "Tags, separated by comma or semicolon")
	setCmd.Flags().BoolVar(&setStdin, "stdin", false, "Read a JSON or YAML document from stdin")
	setCmd.Flags().StringVar(&setFormat, "format", "", "Force stdin format: json or yaml")
}

func runSet(app *appctx.App, cmd *cobra.Command, args []string) error {
	cat := app.Store.LoadCatalog()

	book := cat.Find(args[0])
	if book == nil {
		return fmt.Errorf("no book matching %q", args[0])
	}

	if setStdin {
		data, err := readAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		update, err := parse.Parse(data, setFormat)
		if err != nil {
			return err
		}
		update.Apply(book)
	}

	applySetFlags(cmd, book)

	if err := app.Store.SaveCatalog(cat, "book.updated", book); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), book.ID)
	return nil
}

// applySetFlags copies only the flags the user actually set, so an
// empty value clears the field when given explicitly.
func applySetFlags(cmd *cobra.Command, book *domain.Book) {
	if cmd.Flags().Changed("title") {
		book.Title = setTitle
	}
	if cmd.Flags().Changed("author") {
		book.Author = setAuthor
	}
	if cmd.Flags().Changed("publisher") {
		book.Publisher = setPublisher
	}
	if cmd.Flags().Changed("year") {
		book.Year = setYear
	}
	if cmd.Flags().Changed("isbn") {
		book.ISBN = isbn.Normalize(setISBN)
	}
	if cmd.Flags().Changed("location") {
		book.Location = setLocation
	}
	if cmd.Flags().Changed("status") {
		book.Status = domain.ParseStatus(setStatus)
	}
	if cmd.Flags().Changed("note") {
		book.Note = setNote
	}
	if cmd.Flags().Changed("tags") {
		book.Tags = domain.SplitTags(setTags)
	}
}
