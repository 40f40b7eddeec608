package csvio

import (
	"strings"

	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/isbn"
)

// DecodeRow converts one data row into a Book using the resolved
// layout. It returns (nil, false) for rows that are not catalog
// entries: rows whose cells are all blank, and rows with no title, no
// isbn, and (when the layout carries an id column) no id. Such rows
// are filtered, never surfaced as errors.
func DecodeRow(row []string, layout *Layout) (*domain.Book, bool) {
	if allBlank(row) {
		return nil, false
	}

	cell := func(field string) string {
		idx, ok := layout.Fields[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	b := &domain.Book{
		ID:        cell(FieldID),
		Title:     cell(FieldTitle),
		Author:    cell(FieldAuthor),
		Publisher: cell(FieldPublisher),
		Year:      cell(FieldYear),
		ISBN:      isbn.Normalize(cell(FieldISBN)),
		Location:  cell(FieldLocation),
		Note:      cell(FieldNote),
		Tags:      domain.SplitTags(cell(FieldTags)),
		Status:    domain.ParseStatus(cell(FieldStatus)),
	}

	if b.Title == "" && b.ISBN == "" && b.ID == "" {
		return nil, false
	}

	for key, idx := range layout.Extras {
		if idx >= len(row) {
			continue
		}
		b.SetExtra(key, strings.TrimSpace(row[idx]))
	}

	return b, true
}

// DecodeRows decodes every data row, silently dropping skipped rows.
func DecodeRows(rows [][]string, layout *Layout) []*domain.Book {
	var books []*domain.Book
	for _, row := range rows {
		if b, ok := DecodeRow(row, layout); ok {
			books = append(books, b)
		}
	}
	return books
}

func allBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
