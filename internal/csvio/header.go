package csvio

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Canonical field names shared by the resolver, decoder, and encoder.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldAuthor    = "author"
	FieldISBN      = "isbn"
	FieldYear      = "year"
	FieldPublisher = "publisher"
	FieldTags      = "tags"
	FieldLocation  = "location"
	FieldStatus    = "status"
	FieldNote      = "note"
)

// Extras keys assigned to the localized layout's non-canonical columns.
const (
	ExtraMagazineCode = "magazine_code"
	ExtraTimestamp    = "timestamp"
	ExtraCover        = "cover"
)

// column is one fixed position of a layout variant: the header label
// expected there and the canonical field (or extras key) it feeds.
type column struct {
	label string
	field string
	extra bool
}

// variantDef is one accepted historical header layout.
type variantDef struct {
	name string
	cols []column
}

func col(label, field string) column      { return column{label: label, field: field} }
func extraCol(label, field string) column { return column{label: label, field: field, extra: true} }

var genericCols = []column{
	col("title", FieldTitle),
	col("author", FieldAuthor),
	col("isbn", FieldISBN),
	col("year", FieldYear),
	col("publisher", FieldPublisher),
	col("tags", FieldTags),
	col("location", FieldLocation),
	col("status", FieldStatus),
	col("note", FieldNote),
}

var localizedCols = []column{
	col("ISBN", FieldISBN),
	extraCol("雑誌コード", ExtraMagazineCode),
	col("書名", FieldTitle),
	col("著者", FieldAuthor),
	col("出版社", FieldPublisher),
	col("出版年", FieldYear),
	extraCol("登録日時", ExtraTimestamp),
	extraCol("書影", ExtraCover),
	col("場所", FieldLocation),
	col("状態", FieldStatus),
	col("メモ", FieldNote),
}

// variants in resolution priority order: longest, most specific first.
var variants = []variantDef{
	{name: "localized+id+tags", cols: withTags(withID(localizedCols), "タグ")},
	{name: "localized+id", cols: withID(localizedCols)},
	{name: "localized+tags", cols: withTags(localizedCols, "タグ")},
	{name: "localized", cols: localizedCols},
	{name: "generic+id", cols: withID(genericCols)},
	{name: "generic", cols: genericCols},
}

func withID(cols []column) []column {
	return append([]column{col("id", FieldID)}, cols...)
}

func withTags(cols []column, label string) []column {
	out := make([]column, len(cols), len(cols)+1)
	copy(out, cols)
	return append(out, col(label, FieldTags))
}

// Layout is a resolved header: which variant matched and where each
// canonical field and extras column sits. Absent fields are simply not
// present in the maps.
type Layout struct {
	Variant string
	Fields  map[string]int
	Extras  map[string]int
}

// HasField reports whether the matched variant carries the field.
func (l *Layout) HasField(field string) bool {
	_, ok := l.Fields[field]
	return ok
}

// HeaderError reports a header row matching no known variant. It is
// fatal to the whole import.
type HeaderError struct {
	Header   []string
	Accepted []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("unrecognized CSV header %q; accepted headers:\n  %s",
		strings.Join(e.Header, ","), strings.Join(e.Accepted, "\n  "))
}

// Resolve matches the header row against the known variants in
// priority order. Comparison of each cell against the expected label
// is whitespace-insensitive and width-insensitive (full-width and
// half-width forms fold together) but case-sensitive. Columns past the
// matched layout are captured as extras keyed by their verbatim
// (trimmed) header label.
func Resolve(header []string) (*Layout, error) {
	normalized := make([]string, len(header))
	for i, cell := range header {
		normalized[i] = normalizeLabel(cell)
	}

	for _, v := range variants {
		if !matches(normalized, v.cols) {
			continue
		}
		layout := &Layout{
			Variant: v.name,
			Fields:  make(map[string]int),
			Extras:  make(map[string]int),
		}
		for i, c := range v.cols {
			if c.extra {
				layout.Extras[c.field] = i
			} else {
				layout.Fields[c.field] = i
			}
		}
		for i := len(v.cols); i < len(header); i++ {
			label := strings.TrimSpace(header[i])
			if label == "" {
				continue
			}
			layout.Extras[label] = i
		}
		return layout, nil
	}

	return nil, &HeaderError{Header: header, Accepted: AcceptedHeaders()}
}

// AcceptedHeaders lists every accepted header form, for error messages.
func AcceptedHeaders() []string {
	out := make([]string, len(variants))
	for i, v := range variants {
		labels := make([]string, len(v.cols))
		for j, c := range v.cols {
			labels[j] = c.label
		}
		out[i] = strings.Join(labels, ",")
	}
	return out
}

func matches(normalized []string, cols []column) bool {
	if len(normalized) < len(cols) {
		return false
	}
	for i, c := range cols {
		if normalized[i] != normalizeLabel(c.label) {
			return false
		}
	}
	return true
}

// normalizeLabel folds full-width/half-width forms and removes all
// whitespace. Case is preserved.
func normalizeLabel(s string) string {
	folded := width.Fold.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
}
