// Package catalog holds the in-memory catalog snapshot and the
// operations that produce new snapshots from it: CSV import with
// reconciliation, canonical CSV export, and column-config derivation.
// Mutations never happen in place on a shared snapshot; callers
// replace the whole catalog with the returned one and persist it.
package catalog

import (
	"sort"

	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/isbn"
)

// Catalog is the full ordered collection of book records at a point in
// time.
type Catalog struct {
	Books []*domain.Book `json:"books"`
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.Books)
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{Books: make([]*domain.Book, len(c.Books))}
	for i, b := range c.Books {
		out.Books[i] = b.Clone()
	}
	return out
}

// FindByID returns the record with the given id, or nil.
func (c *Catalog) FindByID(id string) *domain.Book {
	if id == "" {
		return nil
	}
	for _, b := range c.Books {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// FindByISBN returns the first record with the given canonical ISBN,
// or nil.
func (c *Catalog) FindByISBN(canonical string) *domain.Book {
	if canonical == "" {
		return nil
	}
	for _, b := range c.Books {
		if b.ISBN == canonical {
			return b
		}
	}
	return nil
}

// Find looks a record up by id first, then by ISBN. The key is
// normalized for the ISBN comparison so hyphenated and full-width
// forms resolve too.
func (c *Catalog) Find(key string) *domain.Book {
	if b := c.FindByID(key); b != nil {
		return b
	}
	return c.FindByISBN(isbn.Normalize(key))
}

// Upsert replaces the record with the same id, or appends when absent.
func (c *Catalog) Upsert(book *domain.Book) {
	for i, b := range c.Books {
		if b.ID == book.ID {
			c.Books[i] = book
			return
		}
	}
	c.Books = append(c.Books, book)
}

// Remove deletes the record with the given id and reports whether it
// was present.
func (c *Catalog) Remove(id string) bool {
	for i, b := range c.Books {
		if b.ID == id {
			c.Books = append(c.Books[:i], c.Books[i+1:]...)
			return true
		}
	}
	return false
}

// ExtraKeys returns every extras key present in the catalog, sorted.
func (c *Catalog) ExtraKeys() []string {
	seen := make(map[string]bool)
	for _, b := range c.Books {
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
