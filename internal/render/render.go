package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkanno/shelfq/internal/domain"
)

// Format represents an output format
type Format string

const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTSV    Format = "tsv"
)

// ParseFormat validates a format string, defaulting to table.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatNDJSON, FormatYAML, FormatTSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (table, json, ndjson, yaml, tsv)", s)
	}
}

// Options for rendering
type Options struct {
	Format    Format
	Porcelain bool
}

// Renderer handles output rendering
type Renderer struct {
	writer io.Writer
	opts   Options
}

// NewRenderer creates a new renderer
func NewRenderer(writer io.Writer, opts Options) *Renderer {
	return &Renderer{
		writer: writer,
		opts:   opts,
	}
}

// Books renders a book list in the configured format. columns controls
// which fields appear in table and TSV output; hidden columns are
// skipped there but always present in JSON and YAML.
func (r *Renderer) Books(books []*domain.Book, columns []domain.Column) error {
	switch r.opts.Format {
	case FormatJSON:
		return r.RenderJSON(books)
	case FormatNDJSON:
		items := make([]interface{}, len(books))
		for i, b := range books {
			items[i] = b
		}
		return r.RenderNDJSON(items)
	case FormatYAML:
		return r.RenderYAML(books)
	case FormatTSV:
		headers, rows := BookRows(books, columns)
		return r.RenderTSV(headers, rows)
	default:
		headers, rows := BookRows(books, columns)
		return r.RenderTable(headers, rows)
	}
}

// Book renders a single record. Table format shows a vertical
// field/value listing instead of a one-row table.
func (r *Renderer) Book(b *domain.Book, columns []domain.Column) error {
	switch r.opts.Format {
	case FormatJSON:
		return r.RenderJSON(b)
	case FormatYAML:
		return r.RenderYAML(b)
	default:
		rows := make([][]string, 0, len(columns))
		for _, col := range columns {
			if !col.Visible {
				continue
			}
			rows = append(rows, []string{col.Label, bookField(b, col.ID)})
		}
		return r.RenderTable([]string{"FIELD", "VALUE"}, rows)
	}
}

// BookRows converts books into table headers and rows following the
// visible columns in order.
func BookRows(books []*domain.Book, columns []domain.Column) ([]string, [][]string) {
	visible := make([]domain.Column, 0, len(columns))
	for _, col := range columns {
		if col.Visible {
			visible = append(visible, col)
		}
	}

	headers := make([]string, len(visible))
	for i, col := range visible {
		headers[i] = strings.ToUpper(col.Label)
	}

	rows := make([][]string, len(books))
	for i, b := range books {
		row := make([]string, len(visible))
		for j, col := range visible {
			row[j] = bookField(b, col.ID)
		}
		rows[i] = row
	}
	return headers, rows
}

func bookField(b *domain.Book, id string) string {
	switch id {
	case "id":
		return b.ID
	case "title":
		return b.Title
	case "author":
		return b.Author
	case "isbn":
		return b.ISBN
	case "year":
		return b.Year
	case "publisher":
		return b.Publisher
	case "tags":
		return strings.Join(b.Tags, ", ")
	case "location":
		return b.Location
	case "status":
		return string(b.Status)
	case "note":
		return b.Note
	default:
		return b.Extra(id)
	}
}

// RenderJSON renders data as JSON
func (r *Renderer) RenderJSON(data interface{}) error {
	encoder := json.NewEncoder(r.writer)
	if !r.opts.Porcelain {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// RenderNDJSON renders data as newline-delimited JSON
func (r *Renderer) RenderNDJSON(items []interface{}) error {
	encoder := json.NewEncoder(r.writer)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// RenderYAML renders data as YAML
func (r *Renderer) RenderYAML(data interface{}) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(data)
}

// RenderTSV renders data as tab-separated values
func (r *Renderer) RenderTSV(headers []string, rows [][]string) error {
	if _, err := fmt.Fprintln(r.writer, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(r.writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable renders data as a formatted table
func (r *Renderer) RenderTable(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if r.opts.Porcelain {
		// Porcelain mode: just tab-separated
		fmt.Fprintln(r.writer, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(r.writer, strings.Join(row, "\t"))
		}
		return nil
	}

	r.renderTableRow(headers, widths)
	r.renderTableSeparator(widths)
	for _, row := range rows {
		r.renderTableRow(row, widths)
	}
	return nil
}

func (r *Renderer) renderTableRow(cells []string, widths []int) {
	for i, cell := range cells {
		if i < len(widths) {
			fmt.Fprintf(r.writer, "%-*s", widths[i], cell)
			if i < len(cells)-1 {
				fmt.Fprint(r.writer, "  ")
			}
		}
	}
	fmt.Fprintln(r.writer)
}

func (r *Renderer) renderTableSeparator(widths []int) {
	for i, width := range widths {
		fmt.Fprint(r.writer, strings.Repeat("-", width))
		if i < len(widths)-1 {
			fmt.Fprint(r.writer, "  ")
		}
	}
	fmt.Fprintln(r.writer)
}
