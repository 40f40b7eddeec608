// Package domain defines the catalog entities shared across the
// application: the Book record, its status enumeration, and the
// column-visibility configuration.
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Status represents the lending state of a book
type Status string

const (
	StatusHeld       Status = "held"
	StatusCheckedOut Status = "checked-out"
)

// ParseStatus maps a raw cell value to a Status. The checked-out labels
// ("checked-out" and the localized "貸出中") must match exactly; every
// other value, including empty, means held.
func ParseStatus(s string) Status {
	switch strings.TrimSpace(s) {
	case string(StatusCheckedOut), "貸出中":
		return StatusCheckedOut
	default:
		return StatusHeld
	}
}

// Book represents one catalog entry.
type Book struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Author    string            `json:"author"`
	Publisher string            `json:"publisher"`
	Year      string            `json:"year"`
	ISBN      string            `json:"isbn"`
	Location  string            `json:"location"`
	Note      string            `json:"note"`
	Tags      []string          `json:"tags,omitempty"`
	Status    Status            `json:"status"`
	Extras    map[string]string `json:"extras,omitempty"`
}

// NewID generates a fresh opaque book identifier.
func NewID() string {
	return uuid.NewString()
}

// IsValid reports whether the record qualifies as a catalog entry.
// A record with neither title, isbn, nor id is a blank row and must
// not be stored.
func (b *Book) IsValid() bool {
	return b.Title != "" || b.ISBN != "" || b.ID != ""
}

// Clone returns a deep copy of the book.
func (b *Book) Clone() *Book {
	c := *b
	if b.Tags != nil {
		c.Tags = make([]string, len(b.Tags))
		copy(c.Tags, b.Tags)
	}
	if b.Extras != nil {
		c.Extras = make(map[string]string, len(b.Extras))
		for k, v := range b.Extras {
			c.Extras[k] = v
		}
	}
	return &c
}

// Equal reports whether two books are field-for-field identical.
// Tag order is significant (it is preserved across round-trips);
// extras compare by key set and value.
func (b *Book) Equal(o *Book) bool {
	if b.ID != o.ID || b.Title != o.Title || b.Author != o.Author ||
		b.Publisher != o.Publisher || b.Year != o.Year || b.ISBN != o.ISBN ||
		b.Location != o.Location || b.Note != o.Note || b.Status != o.Status {
		return false
	}
	if len(b.Tags) != len(o.Tags) {
		return false
	}
	for i := range b.Tags {
		if b.Tags[i] != o.Tags[i] {
			return false
		}
	}
	if len(b.Extras) != len(o.Extras) {
		return false
	}
	for k, v := range b.Extras {
		if o.Extras[k] != v {
			return false
		}
	}
	return true
}

// Extra returns the extras value for key, or empty.
func (b *Book) Extra(key string) string {
	if b.Extras == nil {
		return ""
	}
	return b.Extras[key]
}

// SetExtra records an extras value, allocating the map on first use.
// Empty values are not stored.
func (b *Book) SetExtra(key, value string) {
	if value == "" {
		return
	}
	if b.Extras == nil {
		b.Extras = make(map[string]string)
	}
	b.Extras[key] = value
}

// SplitTags splits a raw tag cell on runs of separators (semicolon,
// comma, Japanese comma, whitespace), trims each piece, and drops
// empties and duplicates while preserving first-seen order.
func SplitTags(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ';', ',', '、', ' ', '\t', '\n', '\r', '　':
			return true
		}
		return false
	})
	return MergeTags(nil, parts)
}

// MergeTags appends the incoming tags onto existing, dropping empties
// and duplicates while preserving order of first appearance.
func MergeTags(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	var out []string
	for _, list := range [][]string{existing, incoming} {
		for _, t := range list {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
