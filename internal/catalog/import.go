package catalog

import (
	"errors"
	"fmt"

	"github.com/mkanno/shelfq/internal/csvio"
)

// ErrEmptyImport reports a file that parsed but yielded zero valid
// records after decode filtering. The catalog is left unchanged.
var ErrEmptyImport = errors.New("no importable records found in file")

// ImportOptions configures one CSV import run.
type ImportOptions struct {
	Policy Policy
}

// ImportResult is the outcome of a successful import: the new catalog
// snapshot plus the merge report.
type ImportResult struct {
	Catalog *Catalog
	Report  Report

	// Variant names the header layout the file matched.
	Variant string

	// Decoded is the number of valid records the file produced.
	Decoded int
}

// ImportCSV reconciles raw CSV text into the existing catalog and
// returns a full new snapshot. The existing catalog is never modified:
// on any error the caller keeps it as-is, so a failed import changes
// nothing. Header mismatch and an empty record set are the only fatal
// conditions; malformed individual rows are filtered silently.
func ImportCSV(text string, existing *Catalog, opts ImportOptions) (*ImportResult, error) {
	rows := csvio.Scan(text)
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}

	layout, err := csvio.Resolve(rows[0])
	if err != nil {
		return nil, fmt.Errorf("resolving header: %w", err)
	}

	books := csvio.DecodeRows(rows[1:], layout)
	if len(books) == 0 {
		return nil, ErrEmptyImport
	}

	policy := opts.Policy
	if policy == "" {
		policy = PolicyFill
	}

	merged, report := Merge(existing, books, policy)
	return &ImportResult{
		Catalog: merged,
		Report:  report,
		Variant: layout.Variant,
		Decoded: len(books),
	}, nil
}
