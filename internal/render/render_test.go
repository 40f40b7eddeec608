package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mkanno/shelfq/internal/domain"
)

func sampleBooks() []*domain.Book {
	return []*domain.Book{
		{ID: "b1", Title: "Kokoro", Author: "Natsume Soseki", ISBN: "9784003101018", Status: domain.StatusHeld},
		{ID: "b2", Title: "Snow Country", Author: "Kawabata Yasunari", Status: domain.StatusCheckedOut, Tags: []string{"fiction", "nobel"}},
	}
}

func TestBooksTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Options{Format: FormatTable})
	if err := r.Books(sampleBooks(), domain.DefaultColumns()); err != nil {
		t.Fatalf("Books() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "TITLE") {
		t.Errorf("missing header in output:\n%s", out)
	}
	if !strings.Contains(out, "Kokoro") || !strings.Contains(out, "Snow Country") {
		t.Errorf("missing rows in output:\n%s", out)
	}
	if !strings.Contains(out, "fiction, nobel") {
		t.Errorf("tags not joined in output:\n%s", out)
	}
}

func TestBooksTableHidesColumns(t *testing.T) {
	columns := domain.DefaultColumns()
	for i := range columns {
		if columns[i].ID == "author" {
			columns[i].Visible = false
		}
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, Options{Format: FormatTable})
	if err := r.Books(sampleBooks(), columns); err != nil {
		t.Fatalf("Books() error: %v", err)
	}
	if strings.Contains(buf.String(), "Natsume Soseki") {
		t.Errorf("hidden column rendered:\n%s", buf.String())
	}
}

func TestBooksJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Options{Format: FormatJSON})
	if err := r.Books(sampleBooks(), domain.DefaultColumns()); err != nil {
		t.Fatalf("Books() error: %v", err)
	}

	var decoded []*domain.Book
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "b1" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestBooksNDJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Options{Format: FormatNDJSON})
	if err := r.Books(sampleBooks(), domain.DefaultColumns()); err != nil {
		t.Fatalf("Books() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		var b domain.Book
		if err := json.Unmarshal([]byte(line), &b); err != nil {
			t.Errorf("line %q is not valid JSON: %v", line, err)
		}
	}
}

func TestBookVertical(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Options{Format: FormatTable})
	if err := r.Book(sampleBooks()[0], domain.DefaultColumns()); err != nil {
		t.Fatalf("Book() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Kokoro") || !strings.Contains(out, "9784003101018") {
		t.Errorf("output:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatTable {
		t.Errorf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) accepted")
	}
}
