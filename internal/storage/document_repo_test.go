package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDocumentRepo_Upsert(t *testing.T) {
	repo := NewDocumentRepo(newTestDB(t))
	ctx := context.Background()

	doc := &DocumentRecord{ID: "doc-1", Title: "First", Format: "html", Body: "<p>a</p>", Hash: "h1"}
	changed, err := repo.Upsert(ctx, doc)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !changed {
		t.Error("Upsert() of a new document should report a change")
	}
	if doc.UpdatedAt.IsZero() {
		t.Error("Upsert() did not set UpdatedAt")
	}
	firstUpdate := doc.UpdatedAt

	t.Run("title only", func(t *testing.T) {
		changed, err := repo.Upsert(ctx, &DocumentRecord{ID: "doc-1", Title: "Renamed", Format: "html", Body: "<p>a</p>", Hash: "h1"})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if changed {
			t.Error("Upsert() with the same hash should not report a change")
		}

		got, err := repo.GetByID(ctx, "doc-1")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.Title != "Renamed" {
			t.Errorf("Title = %q, want Renamed", got.Title)
		}
		if !got.UpdatedAt.Equal(firstUpdate) {
			t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, firstUpdate)
		}
	})

	t.Run("new content", func(t *testing.T) {
		changed, err := repo.Upsert(ctx, &DocumentRecord{ID: "doc-1", Title: "Renamed", Format: "html", Body: "<p>b</p>", Hash: "h2"})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if !changed {
			t.Error("Upsert() with a new hash should report a change")
		}

		got, err := repo.GetByID(ctx, "doc-1")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.Body != "<p>b</p>" || got.Hash != "h2" {
			t.Errorf("GetByID() = %+v, want updated body and hash", got)
		}
	})

	t.Run("new format", func(t *testing.T) {
		changed, err := repo.Upsert(ctx, &DocumentRecord{ID: "doc-1", Format: "text", Body: "<p>b</p>", Hash: "h2"})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if !changed {
			t.Error("Upsert() with a new format should report a change")
		}
	})
}

func TestDocumentRepo_GetByID(t *testing.T) {
	repo := NewDocumentRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, &DocumentRecord{ID: "doc-1", Title: "T", Format: "markdown", Body: "# T", Hash: "h"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "existing", id: "doc-1"},
		{name: "missing", id: "doc-2", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByID() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if got.ID != tt.id || got.Format != "markdown" || got.Body != "# T" {
				t.Errorf("GetByID() = %+v", got)
			}
		})
	}
}

func TestDocumentRepo_List(t *testing.T) {
	repo := NewDocumentRepo(newTestDB(t))
	ctx := context.Background()

	docs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("List() = %v, want empty slice", docs)
	}

	for _, id := range []string{"older", "newer"} {
		if _, err := repo.Upsert(ctx, &DocumentRecord{ID: id, Format: "text", Body: "body " + id, Hash: id}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	docs, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("List() returned %d documents, want 2", len(docs))
	}
	if docs[0].ID != "newer" || docs[1].ID != "older" {
		t.Errorf("List() order = [%s %s], want [newer older]", docs[0].ID, docs[1].ID)
	}
	if docs[0].Body != "" {
		t.Error("List() should not load bodies")
	}
}

func TestDocumentRepo_Delete(t *testing.T) {
	repo := NewDocumentRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, &DocumentRecord{ID: "doc-1", Format: "text", Body: "b", Hash: "h"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := repo.Delete(ctx, "doc-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after Delete() error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
