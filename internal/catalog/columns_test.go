package catalog

import (
	"testing"

	"github.com/mkanno/shelfq/internal/domain"
)

func TestSyncColumnsStartsFromDefaults(t *testing.T) {
	cols := SyncColumns(New(), nil)
	if len(cols) != len(domain.DefaultColumns()) {
		t.Fatalf("got %d columns, want defaults", len(cols))
	}
	if cols[0].ID != "id" || cols[0].Visible {
		t.Errorf("first column = %+v, want hidden id", cols[0])
	}
	if cols[1].ID != "title" || !cols[1].Visible {
		t.Errorf("second column = %+v, want visible title", cols[1])
	}
}

func TestSyncColumnsDiscoversExtras(t *testing.T) {
	c := &Catalog{Books: []*domain.Book{
		{ID: "1", Title: "x", Extras: map[string]string{"cover": "c", "owner": "o"}},
	}}

	existing := domain.DefaultColumns()
	cols := SyncColumns(c, existing)

	byID := make(map[string]domain.Column)
	for _, col := range cols {
		byID[col.ID] = col
	}
	for _, key := range []string{"cover", "owner"} {
		col, ok := byID[key]
		if !ok {
			t.Fatalf("extras column %q not discovered", key)
		}
		if col.Visible {
			t.Errorf("newly discovered column %q defaults visible", key)
		}
	}
}

func TestSyncColumnsPreservesUserVisibility(t *testing.T) {
	c := &Catalog{Books: []*domain.Book{
		{ID: "1", Title: "x", Extras: map[string]string{"cover": "c"}},
	}}

	existing := []domain.Column{
		{ID: "title", Label: "Title", Visible: false},
		{ID: "cover", Label: "Cover", Visible: true},
	}
	cols := SyncColumns(c, existing)

	if cols[0].Visible {
		t.Error("user-hidden column re-shown")
	}
	for _, col := range cols {
		if col.ID == "cover" && !col.Visible {
			t.Error("user-shown extras column hidden by sync")
		}
	}
}
