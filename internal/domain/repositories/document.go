package repositories

import (
	"context"

	"sopgen/internal/domain/models/sop"
)

// DocumentSummary is the listing projection of a stored document.
type DocumentSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DocNumber    string `json:"doc_number"`
	Approved     bool   `json:"approved"`
	SectionCount int    `json:"section_count"`
	VersionCount int    `json:"version_count"`
	LastModified string `json:"last_modified"`
}

// DocumentRepository persists document snapshots. Implementations store
// the full serialized document (sections, versions, metadata) so a load
// reproduces approval state and version history exactly.
type DocumentRepository interface {
	// Save stores the document, overwriting any previous snapshot with
	// the same ID.
	Save(ctx context.Context, doc *sop.Document) error

	// Get loads a document by ID. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*sop.Document, error)

	// List returns summaries of every stored document, most recently
	// modified first.
	List(ctx context.Context) ([]DocumentSummary, error)

	// Delete removes a stored document. Deleting an absent ID returns
	// domain.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
