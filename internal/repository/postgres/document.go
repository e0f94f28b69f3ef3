package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
	"sopgen/internal/domain/repositories"
)

// DocumentRepository stores full document snapshots as JSONB, with a few
// projection columns for cheap listings. The document model owns its own
// serialization, so the payload column is authoritative.
type DocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a postgres document repository.
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &DocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// EnsureSchema creates the documents table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			doc_number    TEXT NOT NULL DEFAULT '',
			approved      BOOLEAN NOT NULL DEFAULT FALSE,
			section_count INTEGER NOT NULL DEFAULT 0,
			version_count INTEGER NOT NULL DEFAULT 0,
			last_modified TIMESTAMPTZ NOT NULL,
			payload       JSONB NOT NULL
		)
	`, tables.Documents)

	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save upserts the document snapshot.
func (r *DocumentRepository) Save(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		return &domain.ValidationError{Message: "document id is required"}
	}

	payload, err := doc.Serialize()
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, doc_number, approved, section_count, version_count, last_modified, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title         = EXCLUDED.title,
			doc_number    = EXCLUDED.doc_number,
			approved      = EXCLUDED.approved,
			section_count = EXCLUDED.section_count,
			version_count = EXCLUDED.version_count,
			last_modified = EXCLUDED.last_modified,
			payload       = EXCLUDED.payload
	`, r.tables.Documents)

	_, err = r.pool.Exec(ctx, query,
		doc.ID,
		doc.Title,
		doc.DocNumber,
		doc.Approved,
		len(doc.Sections),
		len(doc.Versions),
		doc.LastModified,
		payload,
	)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Get loads a document by ID.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE id = $1`, r.tables.Documents)

	var payload []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("document '%s' not found", id)}
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	doc, err := models.Deserialize(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding document '%s': %w", id, err)
	}
	return doc, nil
}

// List returns summaries of every stored document, most recently modified
// first, without decoding full payloads.
func (r *DocumentRepository) List(ctx context.Context) ([]repositories.DocumentSummary, error) {
	query := fmt.Sprintf(`
		SELECT id, title, doc_number, approved, section_count, version_count, last_modified
		FROM %s
		ORDER BY last_modified DESC
	`, r.tables.Documents)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var summaries []repositories.DocumentSummary
	for rows.Next() {
		var s repositories.DocumentSummary
		var lastModified time.Time
		if err := rows.Scan(&s.ID, &s.Title, &s.DocNumber, &s.Approved, &s.SectionCount, &s.VersionCount, &lastModified); err != nil {
			return nil, fmt.Errorf("scan document summary: %w", err)
		}
		s.LastModified = lastModified.Format(time.RFC3339)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return summaries, nil
}

// Delete removes a stored document.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("document '%s' not found", id)}
	}
	return nil
}
