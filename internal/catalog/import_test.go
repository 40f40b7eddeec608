package catalog

import (
	"errors"
	"testing"

	"github.com/mkanno/shelfq/internal/csvio"
	"github.com/mkanno/shelfq/internal/domain"
)

const localizedNoIDHeader = "ISBN,雑誌コード,書名,著者,出版社,出版年,登録日時,書影,場所,状態,メモ\n"

func TestImportLocalizedLegacyIntoEmptyCatalog(t *testing.T) {
	text := localizedNoIDHeader +
		"9784480090474,,最初の本,著者A,筑摩書房,2001,,,,,\n" +
		"9784003101018,,二冊目,著者B,岩波書店,1914,,,,,\n" +
		",,三冊目,著者C,,,,,,,\n"

	res, err := ImportCSV(text, New(), ImportOptions{})
	if err != nil {
		t.Fatalf("ImportCSV() error: %v", err)
	}

	if res.Report.Added != 3 || res.Report.Updated != 0 {
		t.Fatalf("report = %+v, want 3 added", res.Report)
	}
	if res.Variant != "localized" {
		t.Errorf("variant = %q, want localized", res.Variant)
	}
	for _, b := range res.Catalog.Books {
		if b.ID == "" {
			t.Error("imported record missing generated id")
		}
		if len(b.Tags) != 0 {
			t.Errorf("imported record has tags %v, want none", b.Tags)
		}
		if b.Status != domain.StatusHeld {
			t.Errorf("status = %q, want held", b.Status)
		}
	}
}

func TestImportFillKeepsExistingNote(t *testing.T) {
	existing := &Catalog{Books: []*domain.Book{{
		ID:     "id-1",
		Title:  "ある本",
		ISBN:   "9784480090474",
		Note:   "original",
		Status: domain.StatusHeld,
	}}}

	text := localizedNoIDHeader +
		"9784480090474,,ある本,著者A,,,,,,,\n"

	res, err := ImportCSV(text, existing, ImportOptions{Policy: PolicyFill})
	if err != nil {
		t.Fatalf("ImportCSV() error: %v", err)
	}
	if res.Report.Updated != 1 {
		t.Fatalf("report = %+v, want 1 updated", res.Report)
	}
	if got := res.Catalog.FindByID("id-1").Note; got != "original" {
		t.Errorf("note = %q, want original preserved", got)
	}
}

func TestImportTwiceIsIdempotent(t *testing.T) {
	text := "id,title,author,isbn,year,publisher,tags,location,status,note\n" +
		"id-1,One,A,9784480090474,2001,Pub,x;y,,held,\n" +
		"id-2,Two,B,,1999,,,shelf,checked-out,note\n"

	first, err := ImportCSV(text, New(), ImportOptions{})
	if err != nil {
		t.Fatalf("first import error: %v", err)
	}
	if first.Report.Added != 2 {
		t.Fatalf("first report = %+v", first.Report)
	}

	second, err := ImportCSV(text, first.Catalog, ImportOptions{})
	if err != nil {
		t.Fatalf("second import error: %v", err)
	}
	if second.Report.Added != 0 || second.Report.Updated != 0 {
		t.Errorf("second report = %+v, want 0 added 0 updated", second.Report)
	}
}

func TestImportMalformedHeaderAborts(t *testing.T) {
	text := "id,name,author\nid-1,x,y\n"
	existing := &Catalog{Books: []*domain.Book{book("id-0", "Untouched", "")}}

	_, err := ImportCSV(text, existing, ImportOptions{})
	var herr *csvio.HeaderError
	if !errors.As(err, &herr) {
		t.Fatalf("error = %v, want *csvio.HeaderError", err)
	}
	if existing.Len() != 1 || existing.Books[0].Title != "Untouched" {
		t.Error("failed import modified the catalog")
	}
}

func TestImportEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty file", text: ""},
		{name: "header only", text: localizedNoIDHeader},
		{name: "only blank rows", text: localizedNoIDHeader + ",,,,,,,,,,\n,,,,,,,,,,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportCSV(tt.text, New(), ImportOptions{})
			if !errors.Is(err, ErrEmptyImport) {
				t.Errorf("error = %v, want ErrEmptyImport", err)
			}
		})
	}
}

func TestImportRoundTripThroughExport(t *testing.T) {
	existing := &Catalog{Books: []*domain.Book{
		{
			ID: "id-1", Title: "One, with comma", Author: "A", ISBN: "9784480090474",
			Tags: []string{"x"}, Status: domain.StatusCheckedOut,
			Extras: map[string]string{"cover": "c.jpg"},
		},
		{ID: "id-2", Title: "Two", Status: domain.StatusHeld},
	}}

	res, err := ImportCSV(ExportCSV(existing), existing, ImportOptions{})
	if err != nil {
		t.Fatalf("re-import of export failed: %v", err)
	}
	if res.Report.Added != 0 || res.Report.Updated != 0 {
		t.Errorf("re-import report = %+v, want all skipped", res.Report)
	}
}
