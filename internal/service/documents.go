package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_service.go -package=mocks -mock_names=DocumentService=MockDocumentService content-analyzer/internal/service DocumentService

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"content-analyzer/internal/content"
	"content-analyzer/internal/contextutil"
	"content-analyzer/internal/relevance"
	"content-analyzer/internal/storage"
)

// DocumentInput is a document to store.
type DocumentInput struct {
	// ID is generated when empty.
	ID     string
	Title  string
	Format string
	Body   string
}

// Document is a stored document without its body.
type Document struct {
	ID        string
	Title     string
	Format    content.Format
	Hash      string
	UpdatedAt time.Time
}

// DocumentDetail is a stored document with its extracted structure.
type DocumentDetail struct {
	Document
	Body       string
	Stats      content.Stats
	Paragraphs []relevance.Paragraph
	Headings   []content.Heading
}

// DocumentService stores documents and keeps their cached analyses in step
// with their content.
type DocumentService interface {
	// Put stores a document. It reports whether its content changed, in
	// which case the document's cached analyses were dropped.
	Put(ctx context.Context, in DocumentInput) (*Document, bool, error)
	// Get returns a document with its statistics.
	Get(ctx context.Context, id string) (*DocumentDetail, error)
	// List returns every stored document.
	List(ctx context.Context) ([]*Document, error)
	// Delete deletes a document and its cached analyses.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	documents storage.DocumentStore
	cache     ResultCache
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documents storage.DocumentStore, resultCache ResultCache) DocumentService {
	return &documentService{documents: documents, cache: resultCache}
}

// ContentHash returns the hex SHA-256 of a document's format and body.
func ContentHash(format content.Format, body string) string {
	sum := sha256.Sum256([]byte(string(format) + "\x00" + body))
	return hex.EncodeToString(sum[:])
}

// Put stores a document. Cached analyses are cleared before a content change
// is written, so a failed clear leaves the old content in place, and once more
// afterwards to drop results computed in between.
func (s *documentService) Put(ctx context.Context, in DocumentInput) (*Document, bool, error) {
	logger := contextutil.LoggerFromContext(ctx)

	format, err := content.ParseFormat(in.Format)
	if err != nil {
		return nil, false, &ValidationError{Field: "format", Message: "must be html, markdown or text"}
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, false, &ValidationError{Field: "body", Message: "cannot be empty"}
	}

	extracted, err := content.Extract(format, in.Body)
	if err != nil {
		return nil, false, &ValidationError{Field: "body", Message: err.Error()}
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = extracted.Title()
	}

	rec := &storage.DocumentRecord{
		ID:     id,
		Title:  title,
		Format: string(format),
		Body:   in.Body,
		Hash:   ContentHash(format, in.Body),
	}

	existing, err := s.documents.GetByID(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, false, WrapError(err, "failed to load document")
	}
	if existing != nil && (existing.Hash != rec.Hash || existing.Format != rec.Format) {
		if _, err := s.cache.Clear(ctx, id); err != nil {
			logger.ErrorContext(ctx, "failed to clear cache before update", "document_id", id, "error", err)
			return nil, false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
		}
	}

	changed, err := s.documents.Upsert(ctx, rec)
	if err != nil {
		return nil, false, WrapError(err, "failed to store document")
	}

	if changed {
		if n, err := s.cache.Clear(ctx, id); err != nil {
			logger.WarnContext(ctx, "failed to clear cache after update", "document_id", id, "error", err)
		} else if n > 0 {
			logger.InfoContext(ctx, "stale analyses cleared", "document_id", id, "entries", n)
		}
	}

	logger.InfoContext(ctx, "document stored", "document_id", id, "format", format, "changed", changed)
	return toDocument(rec), changed, nil
}

// Get returns a document with its statistics.
func (s *documentService) Get(ctx context.Context, id string) (*DocumentDetail, error) {
	rec, err := s.documents.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("document %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load document")
	}

	doc, err := content.Extract(content.Format(rec.Format), rec.Body)
	if err != nil {
		return nil, WrapError(err, "failed to extract document")
	}

	return &DocumentDetail{
		Document:   *toDocument(rec),
		Body:       rec.Body,
		Stats:      content.ComputeStats(doc),
		Paragraphs: doc.Paragraphs,
		Headings:   doc.Headings,
	}, nil
}

// List returns every stored document.
func (s *documentService) List(ctx context.Context) ([]*Document, error) {
	recs, err := s.documents.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list documents")
	}
	docs := make([]*Document, len(recs))
	for i, rec := range recs {
		docs[i] = toDocument(rec)
	}
	return docs, nil
}

// Delete clears a document's cached analyses, then deletes the document.
func (s *documentService) Delete(ctx context.Context, id string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := s.cache.Clear(ctx, id); err != nil {
		logger.ErrorContext(ctx, "failed to clear cache before delete", "document_id", id, "error", err)
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	err := s.documents.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("document %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return WrapError(err, "failed to delete document")
	}

	logger.InfoContext(ctx, "document deleted", "document_id", id)
	return nil
}

func toDocument(rec *storage.DocumentRecord) *Document {
	return &Document{
		ID:        rec.ID,
		Title:     rec.Title,
		Format:    content.Format(rec.Format),
		Hash:      rec.Hash,
		UpdatedAt: rec.UpdatedAt,
	}
}
