package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"content-analyzer/internal/contextutil"
	"content-analyzer/internal/relevance"
	"content-analyzer/internal/storage"
)

// ErrMiss is returned by Get when no entry exists for a key.
var ErrMiss = errors.New("cache miss")

// Entry is a memoized analysis result. Entries are immutable; Data holds the
// report exactly as it was serialized when the entry was written.
type Entry struct {
	Key        string
	DocumentID string
	Mode       relevance.Mode
	Kind       relevance.Kind
	PhraseHash string
	Phrase     string
	Data       json.RawMessage
	CreatedAt  time.Time
}

// Manager reads and writes entries in a storage.CacheStore, optionally through
// an in-memory LRU of the newest entry per key.
//
// A read or write only populates the LRU if no Clear of its document (and no
// ClearAll) completed while it was talking to the store, and never replaces a
// newer entry with an older one.
type Manager struct {
	store     storage.CacheStore
	retention RetentionPolicy
	memory    *lru.Cache[string, *Entry]

	mu          sync.Mutex
	epoch       uint64            // bumped by ClearAll
	generations map[string]uint64 // bumped by Clear, per document
}

// generation identifies the clear state a store operation started under.
type generation struct {
	epoch    uint64
	document uint64
}

// Option configures a Manager.
type Option func(*Manager) error

// WithRetention sets the retention policy. The default is KeepAll.
func WithRetention(p RetentionPolicy) Option {
	return func(m *Manager) error {
		if p != nil {
			m.retention = p
		}
		return nil
	}
}

// WithMemory puts an LRU of size entries in front of the store. size <= 0
// disables it.
func WithMemory(size int) Option {
	return func(m *Manager) error {
		if size <= 0 {
			m.memory = nil
			return nil
		}
		c, err := lru.New[string, *Entry](size)
		if err != nil {
			return fmt.Errorf("failed to create memory cache: %w", err)
		}
		m.memory = c
		return nil
	}
}

// NewManager creates a Manager over store.
func NewManager(store storage.CacheStore, opts ...Option) (*Manager, error) {
	m := &Manager{store: store, retention: KeepAll, generations: make(map[string]uint64)}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Retention returns the active retention policy.
func (m *Manager) Retention() RetentionPolicy {
	return m.retention
}

// Get returns the newest entry for key, or ErrMiss. Any other error means the
// store could not be read.
func (m *Manager) Get(ctx context.Context, key Key) (*Entry, error) {
	logger := contextutil.LoggerFromContext(ctx)
	k := key.String()

	if m.memory != nil {
		if e, ok := m.memory.Get(k); ok {
			logger.DebugContext(ctx, "cache hit", "key", k, "source", "memory")
			return e, nil
		}
	}

	gen := m.generation(key.DocumentID)
	rec, err := m.store.Latest(ctx, k)
	if errors.Is(err, storage.ErrNotFound) {
		logger.DebugContext(ctx, "cache miss", "key", k)
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	e := &Entry{
		Key:        rec.CacheKey,
		DocumentID: rec.DocumentID,
		Mode:       relevance.Mode(rec.Mode),
		Kind:       relevance.Kind(rec.Kind),
		PhraseHash: rec.PhraseHash,
		Phrase:     rec.Phrase,
		Data:       json.RawMessage(rec.Data),
		CreatedAt:  rec.CreatedAt,
	}
	m.remember(gen, e)
	logger.DebugContext(ctx, "cache hit", "key", k, "source", "store")
	return e, nil
}

// Set serializes report and appends it as the newest entry for key, then
// applies the retention policy. A retention failure is logged and does not
// fail the write.
func (m *Manager) Set(ctx context.Context, key Key, report any) (*Entry, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	k := key.String()
	rec := &storage.CacheRecord{
		CacheKey:   k,
		DocumentID: key.DocumentID,
		Mode:       key.Mode.String(),
		Kind:       key.Kind.String(),
		PhraseHash: PhraseHash(key.Phrase),
		Phrase:     truncatePhrase(key.Phrase),
		Data:       string(data),
		CreatedAt:  time.Now().UTC(),
	}
	gen := m.generation(key.DocumentID)
	if err := m.store.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to write cache: %w", err)
	}

	if err := m.retention.Apply(ctx, m.store, k); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "cache retention failed",
			"key", k, "policy", m.retention.String(), "error", err)
	}

	e := &Entry{
		Key:        k,
		DocumentID: rec.DocumentID,
		Mode:       key.Mode,
		Kind:       key.Kind,
		PhraseHash: rec.PhraseHash,
		Phrase:     rec.Phrase,
		Data:       data,
		CreatedAt:  rec.CreatedAt,
	}
	m.remember(gen, e)
	return e, nil
}

// Clear deletes every entry of a document and returns how many persisted
// entries were removed.
func (m *Manager) Clear(ctx context.Context, documentID string) (int64, error) {
	n, err := m.store.DeleteByDocument(ctx, documentID)

	m.mu.Lock()
	m.generations[documentID]++
	if m.memory != nil {
		for _, k := range m.memory.Keys() {
			if e, ok := m.memory.Peek(k); ok && e.DocumentID == documentID {
				m.memory.Remove(k)
			}
		}
	}
	m.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache for document: %w", err)
	}
	return n, nil
}

// ClearAll deletes every entry.
func (m *Manager) ClearAll(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteAll(ctx)

	m.mu.Lock()
	m.epoch++
	clear(m.generations)
	if m.memory != nil {
		m.memory.Purge()
	}
	m.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return n, nil
}

func (m *Manager) generation(documentID string) generation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return generation{epoch: m.epoch, document: m.generations[documentID]}
}

// remember adds e to the LRU unless a clear of its document finished after
// gen was taken or the LRU already holds a newer entry for the key.
func (m *Manager) remember(gen generation, e *Entry) {
	if m.memory == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != (generation{epoch: m.epoch, document: m.generations[e.DocumentID]}) {
		return
	}
	if cur, ok := m.memory.Peek(e.Key); ok && cur.CreatedAt.After(e.CreatedAt) {
		return
	}
	m.memory.Add(e.Key, e)
}
