// Package parse reads book field documents supplied on stdin for the
// add and set commands. JSON and YAML are accepted, detected from the
// content when no explicit format is given.
package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/isbn"
)

// BookUpdate represents parsed book data with optional fields.
// Nil means "leave unchanged"; a pointer to the empty string clears
// the field.
type BookUpdate struct {
	Title     *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Author    *string  `json:"author,omitempty" yaml:"author,omitempty"`
	Publisher *string  `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Year      *string  `json:"year,omitempty" yaml:"year,omitempty"`
	ISBN      *string  `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	Location  *string  `json:"location,omitempty" yaml:"location,omitempty"`
	Status    *string  `json:"status,omitempty" yaml:"status,omitempty"`
	Note      *string  `json:"note,omitempty" yaml:"note,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Format represents supported input formats
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat attempts to determine the format of the input data
// Returns an error if the format cannot be reliably determined
func DetectFormat(data []byte) (Format, error) {
	trimmed := strings.TrimSpace(string(data))

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var js json.RawMessage
		if err := json.Unmarshal(data, &js); err == nil {
			return FormatJSON, nil
		}
		// If it starts with { but isn't valid JSON, that's an error
		return "", fmt.Errorf("input appears to be JSON but is invalid")
	}

	// YAML parser is very permissive; only accept input with mapping
	// structure so arbitrary prose is rejected
	var yamlTest interface{}
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		if _, ok := yamlTest.(map[string]interface{}); ok {
			return FormatYAML, nil
		}
	}

	return "", fmt.Errorf("could not detect input format (expected JSON or YAML)")
}

// ParseJSON parses JSON-formatted book data
func ParseJSON(data []byte) (*BookUpdate, error) {
	var update BookUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &update, nil
}

// ParseYAML parses YAML-formatted book data
func ParseYAML(data []byte) (*BookUpdate, error) {
	var update BookUpdate
	if err := yaml.Unmarshal(data, &update); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return &update, nil
}

// Parse parses book data in the specified format.
// If format is empty, auto-detects the format.
func Parse(data []byte, format string) (*BookUpdate, error) {
	var detectedFormat Format
	var err error

	if format == "" {
		detectedFormat, err = DetectFormat(data)
		if err != nil {
			return nil, err
		}
	} else {
		detectedFormat = Format(format)
	}

	switch detectedFormat {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML, "yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Apply writes the update's set fields onto b. ISBNs go through the
// same canonicalization as every other entry path.
func (u *BookUpdate) Apply(b *domain.Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Publisher != nil {
		b.Publisher = *u.Publisher
	}
	if u.Year != nil {
		b.Year = *u.Year
	}
	if u.ISBN != nil {
		b.ISBN = isbn.Normalize(*u.ISBN)
	}
	if u.Location != nil {
		b.Location = *u.Location
	}
	if u.Status != nil {
		b.Status = domain.ParseStatus(*u.Status)
	}
	if u.Note != nil {
		b.Note = *u.Note
	}
	if u.Tags != nil {
		// Tags follow the CSV cell rules: separator characters split,
		// duplicates collapse, order of first appearance survives.
		var tags []string
		for _, raw := range u.Tags {
			tags = append(tags, domain.SplitTags(raw)...)
		}
		b.Tags = domain.MergeTags(nil, tags)
	}
}
