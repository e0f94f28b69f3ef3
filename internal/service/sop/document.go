package sop

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
	"sopgen/internal/domain/repositories"
	sopSvc "sopgen/internal/domain/services/sop"
)

// TemplateLoader instantiates documents from the template library.
type TemplateLoader interface {
	LoadTemplate(name string) (*models.Document, error)
}

// documentService implements the DocumentService interface.
type documentService struct {
	repo      repositories.DocumentRepository
	templates TemplateLoader
	logger    *slog.Logger
}

// NewDocumentService creates a new document service. templates may be nil
// when the template library is not configured.
func NewDocumentService(repo repositories.DocumentRepository, templates TemplateLoader, logger *slog.Logger) sopSvc.DocumentService {
	return &documentService{
		repo:      repo,
		templates: templates,
		logger:    logger,
	}
}

// CreateDocument creates a new draft document, optionally seeded from a
// library template.
func (s *documentService) CreateDocument(ctx context.Context, req *sopSvc.CreateDocumentRequest) (*models.Document, error) {
	if err := validateCreateDocument(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	var doc *models.Document
	if req.Template != "" {
		if s.templates == nil {
			return nil, &domain.ValidationError{Message: "template library is not configured"}
		}
		loaded, err := s.templates.LoadTemplate(req.Template)
		if err != nil {
			return nil, err
		}
		doc = loaded
		doc.Title = req.Title
		if req.DocNumber != "" {
			doc.DocNumber = req.DocNumber
		}
		doc.CreatedBy = req.CreatedBy
	} else {
		doc = models.NewDocument(req.Title, req.DocNumber, req.CreatedBy)
	}

	doc.ID = uuid.New().String()

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.logger.Info("document created",
		"document_id", doc.ID,
		"title", doc.Title,
		"template", req.Template,
		"created_by", req.CreatedBy)
	return doc, nil
}

// GetDocument loads a document by ID.
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	if id == "" {
		return nil, &domain.ValidationError{Message: "document id is required"}
	}
	return s.repo.Get(ctx, id)
}

// ListDocuments returns summaries of all stored documents.
func (s *documentService) ListDocuments(ctx context.Context) ([]repositories.DocumentSummary, error) {
	return s.repo.List(ctx)
}

// DeleteDocument removes a stored document.
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return &domain.ValidationError{Message: "document id is required"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("document deleted", "document_id", id)
	return nil
}

// AddSection adds a section to a draft document. Section titles must be
// unique within a document; lookups by title would otherwise silently
// resolve to the first match.
func (s *documentService) AddSection(ctx context.Context, req *sopSvc.AddSectionRequest) (*models.Document, error) {
	if err := validateAddSection(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	contentType := models.ContentType(req.ContentType)
	if req.ContentType == "" {
		contentType = models.ContentText
	}
	if !contentType.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid content type '%s'", req.ContentType)}
	}

	doc, err := s.repo.Get(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.Approved {
		return nil, &domain.LockedError{Message: "document is approved and cannot be modified"}
	}
	if doc.GetSection(req.Title) != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("section '%s' already exists", req.Title),
			ResourceType: "section",
			ResourceID:   req.Title,
		}
	}

	doc.AddSection(req.Title, req.Content, contentType, req.Order)

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.logger.Info("section added",
		"document_id", doc.ID,
		"section", req.Title,
		"content_type", contentType)
	return doc, nil
}

// RemoveSection removes a section from a draft document.
func (s *documentService) RemoveSection(ctx context.Context, documentID, title string) (*models.Document, error) {
	doc, err := s.repo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Approved {
		return nil, &domain.LockedError{Message: "document is approved and cannot be modified"}
	}
	if doc.GetSection(title) == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("section '%s' not found", title)}
	}

	doc.RemoveSection(title)

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.logger.Info("section removed", "document_id", doc.ID, "section", title)
	return doc, nil
}

// UpdateSection replaces a section's content.
func (s *documentService) UpdateSection(ctx context.Context, req *sopSvc.UpdateSectionRequest) (*models.Document, error) {
	doc, err := s.repo.Get(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	sec := doc.GetSection(req.Title)
	if sec == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("section '%s' not found", req.Title)}
	}
	if !doc.UpdateSection(req.Title, req.Content, req.AIGenerated) {
		return nil, &domain.LockedError{Message: fmt.Sprintf("section '%s' is locked", req.Title)}
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.logger.Info("section updated",
		"document_id", doc.ID,
		"section", req.Title,
		"ai_generated", req.AIGenerated)
	return doc, nil
}

// LogVersion records an audit-trail entry with a snapshot of the current
// sections.
func (s *documentService) LogVersion(ctx context.Context, req *sopSvc.LogVersionRequest) (*models.Document, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.User, validation.Required),
		validation.Field(&req.Changes, validation.Required),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	role := req.Role
	if role == "" {
		role = "editor"
	}

	doc, err := s.repo.Get(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	doc.LogVersion(req.User, role, req.Changes)

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.logger.Info("version logged",
		"document_id", doc.ID,
		"version_id", len(doc.Versions),
		"user", req.User)
	return doc, nil
}

// ApproveDocument marks the document approved and locks every section.
// Approving twice is a conflict.
func (s *documentService) ApproveDocument(ctx context.Context, documentID, approver string) (*models.Document, error) {
	if approver == "" {
		return nil, &domain.ValidationError{Message: "approver is required"}
	}

	doc, err := s.repo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Approved {
		return nil, &domain.ConflictError{
			Message:      "document is already approved",
			ResourceType: "document",
			ResourceID:   doc.ID,
		}
	}

	doc.Approve(approver)

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.logger.Info("document approved", "document_id", doc.ID, "approver", approver)
	return doc, nil
}

// UnlockDocument reverses approval, unlocking every section while keeping
// the version history.
func (s *documentService) UnlockDocument(ctx context.Context, documentID string) (*models.Document, error) {
	doc, err := s.repo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	doc.Unlock()

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.logger.Info("document unlocked", "document_id", doc.ID)
	return doc, nil
}

func validateCreateDocument(req *sopSvc.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.DocNumber, validation.Length(0, 50)),
		validation.Field(&req.CreatedBy, validation.Required),
	)
}

func validateAddSection(req *sopSvc.AddSectionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.DocumentID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
	)
}
