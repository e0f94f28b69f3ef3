package jsonfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
	"sopgen/internal/domain/repositories"
)

// Store persists documents as one JSON file per document. It is the
// default storage backend; a single process owns the directory, so a
// process-wide mutex is enough for consistency.
type Store struct {
	dir    string
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewStore creates a file-backed document store rooted at dir.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating document directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save stores the document, overwriting any previous snapshot. The write
// goes through a temp file and rename so readers never see a torn file.
func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.ID == "" {
		return &domain.ValidationError{Message: "document id is required"}
	}

	data, err := doc.Serialize()
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+doc.ID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(doc.ID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storing document: %w", err)
	}
	return nil
}

// Get loads a document by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path(id))
	s.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("document '%s' not found", id)}
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc, err := models.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("decoding document '%s': %w", id, err)
	}
	return doc, nil
}

// List returns summaries of every stored document, most recently modified
// first.
func (s *Store) List(ctx context.Context) ([]repositories.DocumentSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type entry struct {
		summary  repositories.DocumentSummary
		modified time.Time
	}
	var docs []entry

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable document file", "file", e.Name(), "error", err)
			continue
		}
		doc, err := models.Deserialize(data)
		if err != nil {
			s.logger.Warn("skipping corrupt document file", "file", e.Name(), "error", err)
			continue
		}

		docs = append(docs, entry{
			summary: repositories.DocumentSummary{
				ID:           doc.ID,
				Title:        doc.Title,
				DocNumber:    doc.DocNumber,
				Approved:     doc.Approved,
				SectionCount: len(doc.Sections),
				VersionCount: len(doc.Versions),
				LastModified: doc.LastModified.Format(time.RFC3339),
			},
			modified: doc.LastModified,
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].modified.After(docs[j].modified)
	})

	summaries := make([]repositories.DocumentSummary, len(docs))
	for i, d := range docs {
		summaries[i] = d.summary
	}
	return summaries, nil
}

// Delete removes a stored document.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("document '%s' not found", id)}
		}
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}
