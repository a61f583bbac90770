package storage

import "time"

// DocumentRecord is a stored document body.
type DocumentRecord struct {
	ID        string
	Title     string
	Format    string // html, markdown or text
	Body      string
	Hash      string // SHA256 hex string of format and body
	UpdatedAt time.Time
}

// CacheRecord is one persisted analysis result. Records are append-only;
// several may share a CacheKey and the newest one wins.
type CacheRecord struct {
	ID         string // UUID
	CacheKey   string
	DocumentID string
	Mode       string
	Kind       string
	PhraseHash string
	Phrase     string // verbatim topic phrase, truncated
	Data       string // JSON-encoded report
	CreatedAt  time.Time
}
