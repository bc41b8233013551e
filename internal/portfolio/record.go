package portfolio

import (
	"fmt"
	"strings"
)

// Field names usable with Record.GetStringField and the result filters.
const (
	RecordIDField         = "ID"
	RecordIssuerField     = "Issuer"
	RecordCollectionField = "Collection"
)

// Collection names in their fixed load order. Merged ranking relies on this
// order for tie-breaking, so it never changes between invocations.
const (
	CollectionResume       = "resume"
	CollectionCertificates = "certificates"
	CollectionProjects     = "projects"
)

// Record is a single searchable portfolio item. Records are immutable once
// loaded from their source file.
type Record struct {
	ID          string   `json:"id"`
	Collection  string   `json:"collection"`
	Kind        string   `json:"kind,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Issuer      string   `json:"issuer,omitempty"`
	Date        string   `json:"date,omitempty"`
}

// Ref returns the stable identifier used in CLI output and feedback,
// in the form "collection/id".
func (r *Record) Ref() string {
	return fmt.Sprintf("%s/%s", r.Collection, r.ID)
}

// SearchText joins every searchable text field of the record into one string
// for tokenization.
func (r *Record) SearchText() string {
	parts := make([]string, 0, 4+len(r.Keywords))
	parts = append(parts, r.Title, r.Description, r.Issuer, r.Kind)
	parts = append(parts, r.Keywords...)
	return strings.Join(parts, " ")
}

func (r *Record) GetStringField(name string) string {
	switch name {
	case RecordIDField:
		return r.ID
	case RecordIssuerField:
		return r.Issuer
	case RecordCollectionField:
		return r.Collection

	default:
		return ""
	}
}

// Collection is an ordered list of records loaded from one source file.
type Collection struct {
	Name    string
	Records []*Record

	// Repository holds the free-form repository_info section of the
	// certificates file, when present.
	Repository map[string]any
}

func (c *Collection) Len() int {
	return len(c.Records)
}

func (c *Collection) FindByID(id string) *Record {
	for _, record := range c.Records {
		if record.ID == id {
			return record
		}
	}
	return nil
}
