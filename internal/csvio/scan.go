// Package csvio reads and writes the catalog exchange format: a CSV
// file whose header row identifies one of several historical column
// layouts. Tokenizing, layout resolution, row decoding, and canonical
// encoding live here; merging decoded records into a catalog is the
// catalog package's job.
package csvio

import "strings"

// Scan splits raw text into rows of cell strings. Fields are separated
// by commas; a field wrapped in double quotes may contain literal
// commas and newlines, with "" standing for one literal quote. CRLF is
// normalized to LF first. A trailing row without a final newline is
// still emitted. An unterminated quote does not fail: the remaining
// text is taken as literal content.
func Scan(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false
	cellStarted := false

	flushCell := func() {
		row = append(row, cell.String())
		cell.Reset()
		cellStarted = false
	}
	flushRow := func() {
		flushCell()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					cell.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			cell.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			inQuotes = true
			cellStarted = true
		case ',':
			flushCell()
			cellStarted = true
		case '\n':
			flushRow()
		default:
			cell.WriteByte(c)
			cellStarted = true
		}
	}

	// Trailing partial row with any content.
	if cell.Len() > 0 || cellStarted || len(row) > 0 {
		flushRow()
	}

	return rows
}
