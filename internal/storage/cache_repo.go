package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_cache_store.go -package=mocks content-analyzer/internal/storage CacheStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CacheStore defines the interface for persisted analysis results.
type CacheStore interface {
	// Latest returns the newest record for a cache key.
	// Returns ErrNotFound if there is none.
	Latest(ctx context.Context, key string) (*CacheRecord, error)
	// Insert appends a record. A missing ID or CreatedAt is filled in.
	Insert(ctx context.Context, rec *CacheRecord) error
	// DeleteByDocument deletes every record of a document and returns how many were removed.
	DeleteByDocument(ctx context.Context, documentID string) (int64, error)
	// DeleteAll deletes every record and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	// Prune keeps the newest keep records of a key and deletes the rest.
	Prune(ctx context.Context, key string, keep int) (int64, error)
}

// CacheRepo provides methods for analysis cache operations.
// It implements the CacheStore interface.
type CacheRepo struct {
	db *sql.DB
}

// NewCacheRepo creates a new CacheRepo.
func NewCacheRepo(db *sql.DB) *CacheRepo {
	return &CacheRepo{db: db}
}

// Latest returns the newest record for a cache key. Records inserted within
// the same nanosecond are ordered by insertion.
func (r *CacheRepo) Latest(ctx context.Context, key string) (*CacheRecord, error) {
	var rec CacheRecord
	var createdAt int64

	err := r.db.QueryRowContext(ctx,
		`SELECT id, cache_key, document_id, mode, analysis_kind, topic_phrase_hash, topic_phrase, analysis_data, created_at
		 FROM analysis_cache WHERE cache_key = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		key,
	).Scan(&rec.ID, &rec.CacheKey, &rec.DocumentID, &rec.Mode, &rec.Kind,
		&rec.PhraseHash, &rec.Phrase, &rec.Data, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache record: %w", err)
	}

	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	return &rec, nil
}

// Insert appends a record. Records are never updated in place.
func (r *CacheRepo) Insert(ctx context.Context, rec *CacheRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO analysis_cache
		 (id, cache_key, document_id, mode, analysis_kind, topic_phrase_hash, topic_phrase, analysis_data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CacheKey, rec.DocumentID, rec.Mode, rec.Kind,
		rec.PhraseHash, rec.Phrase, rec.Data, rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cache record: %w", err)
	}
	return nil
}

// DeleteByDocument deletes every record of a document.
func (r *CacheRepo) DeleteByDocument(ctx context.Context, documentID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM analysis_cache WHERE document_id = ?", documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache records by document: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAll deletes every record.
func (r *CacheRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM analysis_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache records: %w", err)
	}
	return res.RowsAffected()
}

// Prune keeps the newest keep records of a key and deletes the rest.
// keep <= 0 deletes nothing.
func (r *CacheRepo) Prune(ctx context.Context, key string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM analysis_cache WHERE cache_key = ? AND rowid NOT IN (
			SELECT rowid FROM analysis_cache WHERE cache_key = ?
			ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`,
		key, key, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache records: %w", err)
	}
	return res.RowsAffected()
}
