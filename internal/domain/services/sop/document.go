package sop

import (
	"context"

	models "sopgen/internal/domain/models/sop"
	"sopgen/internal/domain/repositories"
)

// CreateDocumentRequest carries the input for creating a document. When
// Template names a library template, the new document starts from its
// section skeleton.
type CreateDocumentRequest struct {
	Title     string `json:"title"`
	DocNumber string `json:"doc_number"`
	CreatedBy string `json:"created_by"`
	Template  string `json:"template,omitempty"`
}

// AddSectionRequest carries the input for adding a section. Order below
// zero appends.
type AddSectionRequest struct {
	DocumentID  string `json:"-"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	Order       int    `json:"order"`
}

// UpdateSectionRequest carries the input for replacing section content.
type UpdateSectionRequest struct {
	DocumentID  string `json:"-"`
	Title       string `json:"-"`
	Content     string `json:"content"`
	AIGenerated bool   `json:"ai_generated"`
}

// LogVersionRequest carries the input for recording an audit-trail entry.
type LogVersionRequest struct {
	DocumentID string `json:"-"`
	User       string `json:"user"`
	Role       string `json:"role"`
	Changes    string `json:"changes"`
}

// DocumentService orchestrates document lifecycle, section editing, version
// history and the approval state machine over a repository.
type DocumentService interface {
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]repositories.DocumentSummary, error)
	DeleteDocument(ctx context.Context, id string) error

	AddSection(ctx context.Context, req *AddSectionRequest) (*models.Document, error)
	RemoveSection(ctx context.Context, documentID, title string) (*models.Document, error)
	UpdateSection(ctx context.Context, req *UpdateSectionRequest) (*models.Document, error)

	LogVersion(ctx context.Context, req *LogVersionRequest) (*models.Document, error)
	ApproveDocument(ctx context.Context, documentID, approver string) (*models.Document, error)
	UnlockDocument(ctx context.Context, documentID string) (*models.Document, error)
}
