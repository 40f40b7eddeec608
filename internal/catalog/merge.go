package catalog

import (
	"fmt"

	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/isbn"
)

// Policy selects how a matched incoming record is combined with the
// existing one. Both behaviors exist in the catalog format's history;
// the caller picks one explicitly per merge run.
type Policy string

const (
	// PolicyFill only fills currently-blank fields from incoming data,
	// never overwriting non-empty existing values. Tags are unioned,
	// extras filled per key, and status always takes the incoming
	// value. This is the default.
	PolicyFill Policy = "fill"

	// PolicyOverwrite replaces every field with the incoming value,
	// except the id; extras are shallow-merged with incoming keys
	// winning.
	PolicyOverwrite Policy = "overwrite"
)

// ParsePolicy validates a policy name from a flag or config value.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyFill, PolicyOverwrite:
		return Policy(s), nil
	case "":
		return PolicyFill, nil
	default:
		return "", fmt.Errorf("unknown merge policy %q (want %q or %q)", s, PolicyFill, PolicyOverwrite)
	}
}

// Report counts the outcome of one merge run.
type Report struct {
	Added       int `json:"added"`
	Updated     int `json:"updated"`
	Skipped     int `json:"skipped"`
	IDConflicts int `json:"id_conflicts"`
}

func (r Report) String() string {
	return fmt.Sprintf("%d added, %d updated, %d skipped, %d id conflicts",
		r.Added, r.Updated, r.Skipped, r.IDConflicts)
}

// Merge reconciles incoming records into the existing catalog and
// returns a new catalog snapshot; the existing one is not touched.
// Each incoming record is matched by id first, then by canonical ISBN;
// when the two keys resolve to different existing records the ISBN
// wins as the merge target, the incoming id is not adopted, and the
// refusal is counted as an id conflict. Unmatched records become new
// entries (with a generated id when they carry none). Matched records
// merge under the given policy. Records
// that merge to a field-for-field identical result count as skipped,
// not updated. Existing records are never deleted.
func Merge(existing *Catalog, incoming []*domain.Book, policy Policy) (*Catalog, Report) {
	out := existing.Clone()
	var report Report

	for _, in := range incoming {
		if !in.IsValid() {
			continue
		}

		byID := out.FindByID(in.ID)
		byISBN := matchISBN(out, in)

		var target *domain.Book
		conflict := false
		migrate := false
		switch {
		case byID != nil && byISBN != nil && byID != byISBN:
			// The incoming id belongs to one record while its ISBN
			// identifies another. The natural key decides the merge
			// target; the id stays where it is and the refused
			// adoption is reported.
			target = byISBN
			conflict = true
		case byID != nil:
			target = byID
		case byISBN != nil:
			target = byISBN
			migrate = in.ID != "" && in.ID != byISBN.ID
		}

		if target == nil {
			added := in.Clone()
			if added.ID == "" {
				added.ID = domain.NewID()
			}
			added.ISBN = isbn.Normalize(added.ISBN)
			if added.Status == "" {
				added.Status = domain.StatusHeld
			}
			out.Books = append(out.Books, added)
			report.Added++
			continue
		}

		merged := apply(policy, target, in)
		if conflict {
			report.IDConflicts++
			merged.ID = target.ID
		} else if migrate {
			// Identifier migration: an ISBN match carries the
			// authoritative id from the exporting side, and nothing
			// else owns it.
			merged.ID = in.ID
		}

		if merged.Equal(target) {
			report.Skipped++
			continue
		}
		replace(out, target, merged)
		report.Updated++
	}

	return out, report
}

// matchISBN resolves the incoming record's natural key against the
// catalog.
func matchISBN(c *Catalog, in *domain.Book) *domain.Book {
	canonical := isbn.Normalize(in.ISBN)
	if !isbn.IsCanonical(canonical) {
		return nil
	}
	return c.FindByISBN(canonical)
}

func apply(policy Policy, existing, incoming *domain.Book) *domain.Book {
	if policy == PolicyOverwrite {
		return overwriteMerge(existing, incoming)
	}
	return fillMerge(existing, incoming)
}

// fillMerge keeps every non-empty existing value and takes incoming
// values only for blanks. Status is the exception: it always reflects
// the latest external statement when one is present.
func fillMerge(existing, incoming *domain.Book) *domain.Book {
	out := existing.Clone()

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&out.Title, incoming.Title)
	fill(&out.Author, incoming.Author)
	fill(&out.Publisher, incoming.Publisher)
	fill(&out.Year, incoming.Year)
	fill(&out.ISBN, incoming.ISBN)
	fill(&out.Location, incoming.Location)
	fill(&out.Note, incoming.Note)

	out.Tags = domain.MergeTags(out.Tags, incoming.Tags)
	for k, v := range incoming.Extras {
		if out.Extra(k) == "" {
			out.SetExtra(k, v)
		}
	}
	if incoming.Status != "" {
		out.Status = incoming.Status
	}

	out.ISBN = isbn.Normalize(out.ISBN)
	return out
}

// overwriteMerge takes the incoming record outright, keeping only the
// existing id and shallow-merging extras (incoming keys win, existing
// keys absent from incoming survive).
func overwriteMerge(existing, incoming *domain.Book) *domain.Book {
	out := incoming.Clone()
	out.ID = existing.ID
	if out.Status == "" {
		out.Status = domain.StatusHeld
	}

	if len(existing.Extras) > 0 {
		merged := make(map[string]string, len(existing.Extras)+len(out.Extras))
		for k, v := range existing.Extras {
			merged[k] = v
		}
		for k, v := range out.Extras {
			merged[k] = v
		}
		out.Extras = merged
	}

	out.ISBN = isbn.Normalize(out.ISBN)
	return out
}

func replace(c *Catalog, old, merged *domain.Book) {
	for i, b := range c.Books {
		if b == old {
			c.Books[i] = merged
			return
		}
	}
}
