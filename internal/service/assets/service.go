package assets

import (
	"context"
	"log/slog"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
	"sopgen/internal/domain/repositories"
)

// Service attaches processed uploads to stored documents. Logo uploads
// replace the previous logo and photo batches replace the previous batch;
// flowcharts accumulate.
type Service struct {
	repo   repositories.DocumentRepository
	logger *slog.Logger
}

// NewService creates an asset service.
func NewService(repo repositories.DocumentRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) load(ctx context.Context, documentID string) (*models.Document, error) {
	doc, err := s.repo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Approved {
		return nil, &domain.LockedError{Message: "document is approved and cannot be modified"}
	}
	return doc, nil
}

// AttachLogo processes a logo upload and stores it on the document.
func (s *Service) AttachLogo(ctx context.Context, documentID string, up Upload) (*models.Document, error) {
	doc, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}

	logo, err := NewHandler(s.logger).ProcessLogo(up)
	if err != nil {
		return nil, err
	}
	doc.Metadata.CompanyLogo = logo

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("logo attached", "document_id", doc.ID, "name", logo.Name)
	return doc, nil
}

// AttachPhotos processes a batch of equipment photos and stores them on
// the document, replacing any previous batch. At least one upload must
// survive validation.
func (s *Service) AttachPhotos(ctx context.Context, documentID string, uploads []Upload) (*models.Document, error) {
	doc, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}

	photos := NewHandler(s.logger).ProcessEquipmentPhotos(uploads)
	if len(photos) == 0 {
		return nil, &domain.ValidationError{Message: "no valid equipment photos in upload"}
	}
	doc.Metadata.EquipmentPhotos = photos

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("equipment photos attached", "document_id", doc.ID, "count", len(photos))
	return doc, nil
}

// AttachFlowchart processes a flowchart upload (image or PDF) and appends
// it to the document's flowcharts.
func (s *Service) AttachFlowchart(ctx context.Context, documentID string, up Upload) (*models.Document, error) {
	doc, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}

	chart, err := NewHandler(s.logger).ProcessFlowchart(up)
	if err != nil {
		return nil, err
	}
	doc.Metadata.Flowcharts = append(doc.Metadata.Flowcharts, *chart)

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("flowchart attached", "document_id", doc.ID, "name", chart.Name)
	return doc, nil
}
