package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the documents and analysis_cache tables.
// It is idempotent and can be run multiple times safely.
//
// Timestamps are stored as Unix nanoseconds so that ordering by created_at
// is exact.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			format TEXT NOT NULL,
			body TEXT NOT NULL,
			hash TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS analysis_cache (
			id TEXT PRIMARY KEY,
			cache_key TEXT NOT NULL,
			document_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			analysis_kind TEXT NOT NULL,
			topic_phrase_hash TEXT NOT NULL,
			topic_phrase TEXT NOT NULL,
			analysis_data TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_cache_key ON analysis_cache (cache_key, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_cache_document ON analysis_cache (document_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
