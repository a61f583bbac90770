package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks content-analyzer/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Upsert inserts a document or replaces an existing one with the same ID.
	// It reports whether the stored content (format or hash) changed.
	Upsert(ctx context.Context, doc *DocumentRecord) (bool, error)
	// GetByID gets a document by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)
	// List returns all documents without their bodies, most recently updated first.
	List(ctx context.Context) ([]*DocumentRecord, error)
	// Delete deletes a document. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Upsert inserts a document or replaces an existing one with the same ID.
// updated_at only moves when the content changes; a title-only edit keeps it.
// doc.UpdatedAt is set to the stored value.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) (bool, error) {
	existing, err := r.GetByID(ctx, doc.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("failed to check existing document: %w", err)
	}

	changed := existing == nil || existing.Hash != doc.Hash || existing.Format != doc.Format
	updatedAt := time.Now().UTC()
	if !changed {
		updatedAt = existing.UpdatedAt
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, format, body, hash, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 title = excluded.title, format = excluded.format, body = excluded.body,
		 hash = excluded.hash, updated_at = excluded.updated_at`,
		doc.ID, doc.Title, doc.Format, doc.Body, doc.Hash, updatedAt.UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert document: %w", err)
	}

	doc.UpdatedAt = updatedAt
	return changed, nil
}

// GetByID gets a document by its ID. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*DocumentRecord, error) {
	var doc DocumentRecord
	var updatedAt int64

	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, format, body, hash, updated_at FROM documents WHERE id = ?",
		id,
	).Scan(&doc.ID, &doc.Title, &doc.Format, &doc.Body, &doc.Hash, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &doc, nil
}

// List returns all documents without their bodies, most recently updated first.
// Returns an empty slice if there are none.
func (r *DocumentRepo) List(ctx context.Context) ([]*DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, format, hash, updated_at FROM documents ORDER BY updated_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := []*DocumentRecord{}
	for rows.Next() {
		var doc DocumentRecord
		var updatedAt int64
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Format, &doc.Hash, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.UpdatedAt = time.Unix(0, updatedAt).UTC()
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// Delete deletes a document. Returns ErrNotFound if it does not exist.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
