package catalog

import "github.com/mkanno/shelfq/internal/domain"

// SyncColumns extends the column-visibility configuration with any
// extras keys discovered in the catalog. Existing entries keep their
// position and visibility; newly discovered columns are appended
// hidden. A nil or empty existing list starts from the defaults.
func SyncColumns(c *Catalog, existing []domain.Column) []domain.Column {
	if len(existing) == 0 {
		existing = domain.DefaultColumns()
	}

	known := make(map[string]bool, len(existing))
	out := make([]domain.Column, len(existing))
	copy(out, existing)
	for _, col := range existing {
		known[col.ID] = true
	}

	for _, key := range c.ExtraKeys() {
		if known[key] {
			continue
		}
		out = append(out, domain.Column{ID: key, Label: key, Visible: false})
	}
	return out
}
