package cache

import (
	"context"
	"fmt"

	"content-analyzer/internal/storage"
)

// RetentionPolicy decides how much history is kept for a key after a write.
type RetentionPolicy interface {
	// Apply trims the history of key in store.
	Apply(ctx context.Context, store storage.CacheStore, key string) error
	String() string
}

// KeepAll keeps every entry ever written.
var KeepAll RetentionPolicy = keepAll{}

type keepAll struct{}

func (keepAll) Apply(context.Context, storage.CacheStore, string) error { return nil }

func (keepAll) String() string { return "keep-all" }

// KeepLatest keeps the newest n entries per key. n <= 0 is KeepAll.
func KeepLatest(n int) RetentionPolicy {
	if n <= 0 {
		return KeepAll
	}
	return keepLatest{n: n}
}

type keepLatest struct {
	n int
}

func (p keepLatest) Apply(ctx context.Context, store storage.CacheStore, key string) error {
	if _, err := store.Prune(ctx, key, p.n); err != nil {
		return fmt.Errorf("failed to apply retention: %w", err)
	}
	return nil
}

func (p keepLatest) String() string {
	return fmt.Sprintf("keep-latest-%d", p.n)
}
