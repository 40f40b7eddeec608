package domain

// Column describes one entry of the column-visibility configuration.
// This is presentation state layered over the catalog, persisted
// separately from the catalog itself.
type Column struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// DefaultColumns returns the visibility list for the canonical field
// set. Extras columns are appended later as they are discovered.
func DefaultColumns() []Column {
	return []Column{
		{ID: "id", Label: "ID", Visible: false},
		{ID: "title", Label: "Title", Visible: true},
		{ID: "author", Label: "Author", Visible: true},
		{ID: "publisher", Label: "Publisher", Visible: true},
		{ID: "year", Label: "Year", Visible: true},
		{ID: "isbn", Label: "ISBN", Visible: true},
		{ID: "location", Label: "Location", Visible: false},
		{ID: "status", Label: "Status", Visible: true},
		{ID: "tags", Label: "Tags", Visible: true},
		{ID: "note", Label: "Note", Visible: false},
	}
}
