package catalog

import (
	"fmt"
	"time"

	"github.com/mkanno/shelfq/internal/csvio"
)

// ExportCSV serializes the catalog under the canonical header layout,
// regardless of which layout was last imported.
func ExportCSV(c *Catalog) string {
	return csvio.Encode(c.Books)
}

// ExportFilename returns the conventional date-stamped export name.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("shelfq-%s.csv", now.Format("20060102"))
}
