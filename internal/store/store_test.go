package store

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/mkanno/shelfq/internal/catalog"
	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/testutil"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	database, _ := testutil.TempDB(t)
	return New(database, zerolog.Nop())
}

func TestLoadCatalogEmpty(t *testing.T) {
	s := tempStore(t)
	c := s.LoadCatalog()
	if c == nil || c.Len() != 0 {
		t.Fatalf("LoadCatalog() on fresh store = %+v, want empty catalog", c)
	}
}

func TestSaveAndLoadCatalog(t *testing.T) {
	s := tempStore(t)

	c := catalog.New()
	c.Books = append(c.Books, &domain.Book{
		ID:     "id-1",
		Title:  "A Book",
		ISBN:   "9784480090474",
		Tags:   []string{"x", "y"},
		Status: domain.StatusCheckedOut,
		Extras: map[string]string{"cover": "c.jpg"},
	})

	if err := s.SaveCatalog(c, "catalog.imported", map[string]int{"added": 1}); err != nil {
		t.Fatalf("SaveCatalog() error: %v", err)
	}

	got := s.LoadCatalog()
	if got.Len() != 1 {
		t.Fatalf("loaded %d books, want 1", got.Len())
	}
	if !got.Books[0].Equal(c.Books[0]) {
		t.Errorf("loaded book differs:\n  want %+v\n  got  %+v", c.Books[0], got.Books[0])
	}
}

func TestSaveCatalogOverwrites(t *testing.T) {
	s := tempStore(t)

	first := catalog.New()
	first.Books = append(first.Books, &domain.Book{ID: "1", Title: "First", Status: domain.StatusHeld})
	if err := s.SaveCatalog(first, "", nil); err != nil {
		t.Fatal(err)
	}

	second := catalog.New()
	second.Books = append(second.Books, &domain.Book{ID: "2", Title: "Second", Status: domain.StatusHeld})
	if err := s.SaveCatalog(second, "", nil); err != nil {
		t.Fatal(err)
	}

	got := s.LoadCatalog()
	if got.Len() != 1 || got.Books[0].ID != "2" {
		t.Errorf("catalog not replaced wholesale: %+v", got.Books)
	}
}

func TestLoadCatalogCorruptDegradesToEmpty(t *testing.T) {
	s := tempStore(t)

	tx, err := s.db.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if err := upsert(tx, KeyCatalog, "{not json"); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	c := s.LoadCatalog()
	if c == nil || c.Len() != 0 {
		t.Errorf("corrupt catalog did not degrade to empty: %+v", c)
	}
}

func TestColumnsRoundTrip(t *testing.T) {
	s := tempStore(t)

	if cols := s.LoadColumns(); cols != nil {
		t.Fatalf("fresh store columns = %+v, want nil", cols)
	}

	want := []domain.Column{
		{ID: "title", Label: "Title", Visible: true},
		{ID: "cover", Label: "cover", Visible: false},
	}
	if err := s.SaveColumns(want); err != nil {
		t.Fatal(err)
	}

	got := s.LoadColumns()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("LoadColumns() = %+v, want %+v", got, want)
	}
}

func TestMutationEventsLogged(t *testing.T) {
	s := tempStore(t)

	if err := s.SaveCatalog(catalog.New(), "catalog.seeded", map[string]int{"count": 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveCatalog(catalog.New(), "catalog.imported", nil); err != nil {
		t.Fatal(err)
	}

	evs, err := s.Events().Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	// Newest first.
	if evs[0].EventType != "catalog.imported" || evs[1].EventType != "catalog.seeded" {
		t.Errorf("unexpected event order: %q, %q", evs[0].EventType, evs[1].EventType)
	}
	if evs[1].Payload == "" {
		t.Error("event payload not stored")
	}
}
