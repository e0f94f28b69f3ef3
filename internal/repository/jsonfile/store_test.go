package jsonfile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func sampleDocument(id, title string) *models.Document {
	doc := models.NewDocument(title, "SOP-001", "alice")
	doc.ID = id
	doc.AddSection("Purpose", "Why we do this", models.ContentText, -1)
	doc.LogVersion("alice", "author", "Initial draft")
	return doc
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := sampleDocument("doc-1", "Thermal Cycling")
	doc.Approve("bob")

	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != doc.Title || got.ID != doc.ID {
		t.Errorf("loaded = %q/%q", got.ID, got.Title)
	}
	if !got.Approved || got.Approver != "bob" {
		t.Errorf("approval state lost: approved=%v approver=%q", got.Approved, got.Approver)
	}
	if len(got.Sections) != 1 || !got.Sections[0].Locked {
		t.Errorf("sections = %+v", got.Sections)
	}
	if len(got.Versions) != 2 {
		t.Fatalf("versions = %d, want 2", len(got.Versions))
	}
	if got.Versions[1].Changes != "Document approved" {
		t.Errorf("approval version = %+v", got.Versions[1])
	}
	if len(got.Versions[0].ContentSnapshot) != 1 {
		t.Errorf("snapshot not persisted: %+v", got.Versions[0])
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := sampleDocument("doc-1", "First Title")
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	doc.Title = "Second Title"
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	got, err := store.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Second Title" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestSaveRequiresID(t *testing.T) {
	store := newTestStore(t)
	doc := models.NewDocument("No ID", "", "alice")
	if err := store.Save(context.Background(), doc); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListOrdersByLastModified(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := sampleDocument("doc-old", "Older")
	older.LastModified = time.Now().UTC().Add(-time.Hour)
	newer := sampleDocument("doc-new", "Newer")
	newer.LastModified = time.Now().UTC()

	for _, doc := range []*models.Document{older, newer} {
		if err := store.Save(ctx, doc); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d", len(summaries))
	}
	if summaries[0].ID != "doc-new" || summaries[1].ID != "doc-old" {
		t.Errorf("order = %s, %s", summaries[0].ID, summaries[1].ID)
	}
	if summaries[0].SectionCount != 1 || summaries[0].VersionCount != 1 {
		t.Errorf("summary counts = %+v", summaries[0])
	}
}

func TestListSkipsCorruptFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleDocument("doc-1", "Good")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(store.dir, "junk.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing junk: %v", err)
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "doc-1" {
		t.Errorf("summaries = %+v", summaries)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleDocument("doc-1", "Doomed")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "doc-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
	if err := store.Delete(ctx, "doc-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete = %v", err)
	}
}
