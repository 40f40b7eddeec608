package csvio

import (
	"sort"
	"strings"

	"github.com/mkanno/shelfq/internal/domain"
)

// canonicalFields is the export column order. Exports always use this
// layout, never a legacy one, so export→import round-trips are
// lossless for every field the format carries.
var canonicalFields = []string{
	FieldID, FieldTitle, FieldAuthor, FieldISBN, FieldYear,
	FieldPublisher, FieldTags, FieldLocation, FieldStatus, FieldNote,
}

// Encode serializes books to CSV text under the canonical header.
// Every extras key present anywhere in the input becomes a trailing
// column (sorted for determinism). Tags are joined with semicolons.
func Encode(books []*domain.Book) string {
	extraKeys := collectExtraKeys(books)

	var sb strings.Builder
	writeRow(&sb, append(append([]string{}, canonicalFields...), extraKeys...))

	for _, b := range books {
		row := []string{
			b.ID, b.Title, b.Author, b.ISBN, b.Year,
			b.Publisher, strings.Join(b.Tags, ";"), b.Location,
			string(b.Status), b.Note,
		}
		for _, key := range extraKeys {
			row = append(row, b.Extra(key))
		}
		writeRow(&sb, row)
	}

	return sb.String()
}

func collectExtraKeys(books []*domain.Book) []string {
	seen := make(map[string]bool)
	for _, b := range books {
		for k := range b.Extras {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeRow(sb *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(escapeCell(cell))
	}
	sb.WriteByte('\n')
}

// escapeCell quotes a cell only when it contains a comma, a double
// quote, or a line break, doubling interior quotes.
func escapeCell(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
