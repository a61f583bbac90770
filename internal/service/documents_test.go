package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"content-analyzer/internal/content"
	"content-analyzer/internal/service"
	"content-analyzer/internal/service/mocks"
	"content-analyzer/internal/storage"
	storage_mocks "content-analyzer/internal/storage/mocks"
)

func TestContentHash(t *testing.T) {
	a := service.ContentHash(content.FormatText, "body")
	if len(a) != 64 {
		t.Errorf("ContentHash() length = %d, want 64", len(a))
	}
	if a != service.ContentHash(content.FormatText, "body") {
		t.Error("ContentHash() should be deterministic")
	}
	if a == service.ContentHash(content.FormatHTML, "body") {
		t.Error("ContentHash() should depend on the format")
	}
	if a == service.ContentHash(content.FormatText, "body2") {
		t.Error("ContentHash() should depend on the body")
	}
}

func TestDocumentService_Put(t *testing.T) {
	body := "# Guide\n\nContent marketing builds audiences."
	hash := service.ContentHash(content.FormatMarkdown, body)
	storeErr := errors.New("database is locked")

	tests := []struct {
		name        string
		in          service.DocumentInput
		setup       func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache)
		wantErr     error
		wantChanged bool
		wantTitle   string
	}{
		{
			name: "new document takes title from heading",
			in:   service.DocumentInput{ID: "doc-1", Format: "md", Body: body},
			setup: func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {
				gomock.InOrder(
					docs.EXPECT().GetByID(gomock.Any(), "doc-1").Return(nil, storage.ErrNotFound),
					docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, rec *storage.DocumentRecord) (bool, error) {
							if rec.Hash != hash || rec.Format != "markdown" {
								t.Errorf("Upsert() record = %+v", rec)
							}
							return true, nil
						}),
					rc.EXPECT().Clear(gomock.Any(), "doc-1").Return(int64(0), nil),
				)
			},
			wantChanged: true,
			wantTitle:   "Guide",
		},
		{
			name: "changed content clears before and after",
			in:   service.DocumentInput{ID: "doc-1", Title: "Mine", Format: "markdown", Body: body},
			setup: func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {
				gomock.InOrder(
					docs.EXPECT().GetByID(gomock.Any(), "doc-1").Return(&storage.DocumentRecord{ID: "doc-1", Format: "markdown", Hash: "old"}, nil),
					rc.EXPECT().Clear(gomock.Any(), "doc-1").Return(int64(4), nil),
					docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil),
					rc.EXPECT().Clear(gomock.Any(), "doc-1").Return(int64(0), nil),
				)
			},
			wantChanged: true,
			wantTitle:   "Mine",
		},
		{
			name: "unchanged content keeps cache",
			in:   service.DocumentInput{ID: "doc-1", Title: "Renamed", Format: "markdown", Body: body},
			setup: func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {
				docs.EXPECT().GetByID(gomock.Any(), "doc-1").Return(&storage.DocumentRecord{ID: "doc-1", Format: "markdown", Hash: hash}, nil)
				docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantChanged: false,
			wantTitle:   "Renamed",
		},
		{
			name: "failed clear leaves document untouched",
			in:   service.DocumentInput{ID: "doc-1", Format: "markdown", Body: body},
			setup: func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {
				docs.EXPECT().GetByID(gomock.Any(), "doc-1").Return(&storage.DocumentRecord{ID: "doc-1", Format: "markdown", Hash: "old"}, nil)
				rc.EXPECT().Clear(gomock.Any(), "doc-1").Return(int64(0), storeErr)
			},
			wantErr: service.ErrCacheUnavailable,
		},
		{
			name: "failed clear after write only warns",
			in:   service.DocumentInput{ID: "doc-1", Format: "markdown", Body: body},
			setup: func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {
				docs.EXPECT().GetByID(gomock.Any(), "doc-1").Return(nil, storage.ErrNotFound)
				docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil)
				rc.EXPECT().Clear(gomock.Any(), "doc-1").Return(int64(0), storeErr)
			},
			wantChanged: true,
			wantTitle:   "Guide",
		},
		{
			name:    "unknown format",
			in:      service.DocumentInput{ID: "doc-1", Format: "pdf", Body: body},
			setup:   func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {},
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "empty body",
			in:      service.DocumentInput{ID: "doc-1", Format: "text", Body: " \n "},
			setup:   func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {},
			wantErr: service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			docs := storage_mocks.NewMockDocumentStore(ctrl)
			rc := mocks.NewMockResultCache(ctrl)
			tt.setup(docs, rc)

			svc := service.NewDocumentService(docs, rc)
			doc, changed, err := svc.Put(testContext(), tt.in)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Put() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("Put() changed = %v, want %v", changed, tt.wantChanged)
			}
			if doc.Title != tt.wantTitle {
				t.Errorf("Put() title = %q, want %q", doc.Title, tt.wantTitle)
			}
			if doc.Format != content.FormatMarkdown || doc.Hash != hash {
				t.Errorf("Put() document = %+v", doc)
			}
		})
	}
}

func TestDocumentService_PutGeneratesID(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := storage_mocks.NewMockDocumentStore(ctrl)
	rc := mocks.NewMockResultCache(ctrl)

	docs.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
	docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil)
	rc.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(int64(0), nil)

	svc := service.NewDocumentService(docs, rc)
	doc, _, err := svc.Put(testContext(), service.DocumentInput{Format: "text", Body: "plain body text"})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if len(doc.ID) != 36 {
		t.Errorf("Put() generated ID = %q, want UUID", doc.ID)
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := storage_mocks.NewMockDocumentStore(ctrl)
	updated := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	docs.EXPECT().GetByID(gomock.Any(), "doc-1").Return(&storage.DocumentRecord{
		ID:        "doc-1",
		Title:     "Intro",
		Format:    "html",
		Body:      "<h1>Intro</h1><p>Content marketing builds audiences.</p>",
		Hash:      "abc",
		UpdatedAt: updated,
	}, nil)
	docs.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	svc := service.NewDocumentService(docs, mocks.NewMockResultCache(ctrl))

	detail, err := svc.Get(testContext(), "doc-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if detail.ID != "doc-1" || detail.Format != content.FormatHTML || !detail.UpdatedAt.Equal(updated) {
		t.Errorf("Get() document = %+v", detail.Document)
	}
	if len(detail.Paragraphs) != 1 || detail.Paragraphs[0].Text != "Content marketing builds audiences." {
		t.Errorf("Get() paragraphs = %+v", detail.Paragraphs)
	}
	if len(detail.Headings) != 1 || detail.Headings[0].Text != "Intro" {
		t.Errorf("Get() headings = %+v", detail.Headings)
	}
	if detail.Stats.Headings.Total != 1 || detail.Stats.WordCount == 0 {
		t.Errorf("Get() stats = %+v", detail.Stats)
	}

	if _, err := svc.Get(testContext(), "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := storage_mocks.NewMockDocumentStore(ctrl)

	docs.EXPECT().List(gomock.Any()).Return([]*storage.DocumentRecord{
		{ID: "b", Title: "B", Format: "text", Hash: "h2"},
		{ID: "a", Title: "A", Format: "html", Hash: "h1"},
	}, nil)

	svc := service.NewDocumentService(docs, mocks.NewMockResultCache(ctrl))
	got, err := svc.List(testContext())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].Format != content.FormatHTML {
		t.Errorf("List() = %+v", got)
	}
}

func TestDocumentService_Delete(t *testing.T) {
	storeErr := errors.New("database is locked")

	tests := []struct {
		name    string
		setup   func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache)
		wantErr error
	}{
		{
			name: "clears cache then deletes",
			setup: func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {
				gomock.InOrder(
					rc.EXPECT().Clear(gomock.Any(), "doc-1").Return(int64(2), nil),
					docs.EXPECT().Delete(gomock.Any(), "doc-1").Return(nil),
				)
			},
		},
		{
			name: "not found",
			setup: func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {
				rc.EXPECT().Clear(gomock.Any(), "doc-1").Return(int64(0), nil)
				docs.EXPECT().Delete(gomock.Any(), "doc-1").Return(storage.ErrNotFound)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "cache failure keeps document",
			setup: func(docs *storage_mocks.MockDocumentStore, rc *mocks.MockResultCache) {
				rc.EXPECT().Clear(gomock.Any(), "doc-1").Return(int64(0), storeErr)
			},
			wantErr: service.ErrCacheUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			docs := storage_mocks.NewMockDocumentStore(ctrl)
			rc := mocks.NewMockResultCache(ctrl)
			tt.setup(docs, rc)

			err := service.NewDocumentService(docs, rc).Delete(testContext(), "doc-1")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
