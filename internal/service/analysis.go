package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_result_cache.go -package=mocks content-analyzer/internal/service ResultCache
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis_service.go -package=mocks -mock_names=AnalysisService=MockAnalysisService content-analyzer/internal/service AnalysisService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"content-analyzer/internal/cache"
	"content-analyzer/internal/content"
	"content-analyzer/internal/contextutil"
	"content-analyzer/internal/relevance"
	"content-analyzer/internal/storage"
)

// ResultCache memoizes analysis reports.
// This interface is defined from the service layer's perspective (consumer-first).
type ResultCache interface {
	// Get returns the newest entry for key, or cache.ErrMiss.
	Get(ctx context.Context, key cache.Key) (*cache.Entry, error)
	// Set stores report as the newest entry for key.
	Set(ctx context.Context, key cache.Key, report any) (*cache.Entry, error)
	// Clear deletes every entry of a document.
	Clear(ctx context.Context, documentID string) (int64, error)
	// ClearAll deletes every entry.
	ClearAll(ctx context.Context) (int64, error)
}

// AnalysisRequest asks for one analysis of a stored document.
type AnalysisRequest struct {
	DocumentID string
	Phrase     string
	// Mode is "server", "client" or "browser"; empty selects the default.
	Mode string
}

// AnalysisResult is an analysis report with its cache metadata. Data holds
// the serialized report; on a cache hit it is byte-identical to the stored one,
// so the phrase inside Data is the one of the request that computed it and may
// differ from Phrase in case or surrounding whitespace.
type AnalysisResult struct {
	Key        string
	DocumentID string
	Mode       relevance.Mode
	Kind       relevance.Kind
	// Phrase is the trimmed phrase of this request.
	Phrase     string
	Cached     bool
	CreatedAt  time.Time
	Warnings   []string
	Data       json.RawMessage
}

// AnalysisService runs cached relevance analyses.
type AnalysisService interface {
	// AnalyzeWords scores the terms of a document against a topic phrase.
	AnalyzeWords(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
	// AnalyzeChunks scores the paragraphs of a document against a topic phrase.
	AnalyzeChunks(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
	// ClearCache deletes the cached analyses of a document.
	ClearCache(ctx context.Context, documentID string) (int64, error)
	// ClearAllCache deletes every cached analysis.
	ClearAllCache(ctx context.Context) (int64, error)
}

// AnalysisOptions configure an AnalysisService.
type AnalysisOptions struct {
	DefaultMode relevance.Mode
	Scoring     relevance.Options
}

type analysisService struct {
	documents   storage.DocumentStore
	cache       ResultCache
	scorers     map[relevance.Mode]relevance.Scorer
	defaultMode relevance.Mode
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(documents storage.DocumentStore, resultCache ResultCache, opts AnalysisOptions) (AnalysisService, error) {
	if opts.DefaultMode == "" {
		opts.DefaultMode = relevance.ModeServer
	}
	if !opts.DefaultMode.IsValid() {
		return nil, fmt.Errorf("%w: %q", relevance.ErrUnknownMode, opts.DefaultMode)
	}

	scorers := make(map[relevance.Mode]relevance.Scorer, 2)
	for _, mode := range []relevance.Mode{relevance.ModeServer, relevance.ModeClient} {
		s, err := relevance.NewScorer(mode, opts.Scoring)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s scorer: %w", mode, err)
		}
		scorers[mode] = s
	}

	return &analysisService{
		documents:   documents,
		cache:       resultCache,
		scorers:     scorers,
		defaultMode: opts.DefaultMode,
	}, nil
}

// AnalyzeWords scores the terms of a document against a topic phrase.
func (s *analysisService) AnalyzeWords(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	return s.analyze(ctx, req, relevance.KindWords)
}

// AnalyzeChunks scores the paragraphs of a document against a topic phrase.
func (s *analysisService) AnalyzeChunks(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	return s.analyze(ctx, req, relevance.KindChunks)
}

func (s *analysisService) analyze(ctx context.Context, req AnalysisRequest, kind relevance.Kind) (*AnalysisResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	mode, err := s.validate(req)
	if err != nil {
		logger.WarnContext(ctx, "invalid analysis request", "error", err)
		return nil, err
	}
	phrase := strings.TrimSpace(req.Phrase)
	key := cache.NewKey(req.DocumentID, mode, kind, phrase)

	result := &AnalysisResult{
		Key:        key.String(),
		DocumentID: req.DocumentID,
		Mode:       mode,
		Kind:       kind,
		Phrase:     phrase,
	}

	cacheUsable := true
	entry, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		result.Cached = true
		result.CreatedAt = entry.CreatedAt
		result.Data = entry.Data
		return result, nil
	case errors.Is(err, cache.ErrMiss):
	default:
		cacheUsable = false
		logger.WarnContext(ctx, "cache read failed, computing uncached", "key", result.Key, "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("cache read failed: %v", err))
	}

	start := time.Now()
	report, err := s.compute(ctx, req.DocumentID, phrase, mode, kind)
	if err != nil {
		return nil, err
	}

	if cacheUsable {
		entry, err := s.cache.Set(ctx, key, report)
		if err == nil {
			result.CreatedAt = entry.CreatedAt
			result.Data = entry.Data
		} else {
			logger.WarnContext(ctx, "cache write failed", "key", result.Key, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("cache write failed: %v", err))
		}
	}
	if result.Data == nil {
		data, err := json.Marshal(report)
		if err != nil {
			return nil, WrapError(err, "failed to encode report")
		}
		result.Data = data
		result.CreatedAt = time.Now().UTC()
	}

	logger.InfoContext(ctx, "analysis completed",
		"document_id", req.DocumentID,
		"kind", kind,
		"mode", mode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (s *analysisService) validate(req AnalysisRequest) (relevance.Mode, error) {
	if strings.TrimSpace(req.DocumentID) == "" {
		return "", &ValidationError{Field: "document_id", Message: "cannot be empty"}
	}
	if strings.TrimSpace(req.Phrase) == "" {
		return "", &ValidationError{Field: "phrase", Message: "cannot be empty"}
	}
	if req.Mode == "" {
		return s.defaultMode, nil
	}
	mode, err := relevance.ParseMode(req.Mode)
	if err != nil {
		return "", &ValidationError{Field: "mode", Message: fmt.Sprintf("must be server or client, got %q", req.Mode)}
	}
	return mode, nil
}

func (s *analysisService) compute(ctx context.Context, documentID, phrase string, mode relevance.Mode, kind relevance.Kind) (any, error) {
	rec, err := s.documents.GetByID(ctx, documentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("document %q: %w", documentID, ErrNotFound)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load document")
	}

	doc, err := content.Extract(content.Format(rec.Format), rec.Body)
	if err != nil {
		return nil, WrapError(err, "failed to extract document")
	}

	scorer := s.scorers[mode]
	if kind == relevance.KindChunks {
		return scorer.Chunks(doc.Paragraphs, phrase), nil
	}
	return scorer.Words(doc.Text, phrase), nil
}

// ClearCache deletes the cached analyses of a document.
func (s *analysisService) ClearCache(ctx context.Context, documentID string) (int64, error) {
	if strings.TrimSpace(documentID) == "" {
		return 0, &ValidationError{Field: "document_id", Message: "cannot be empty"}
	}
	n, err := s.cache.Clear(ctx, documentID)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to clear cache", "document_id", documentID, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "cache cleared", "document_id", documentID, "entries", n)
	return n, nil
}

// ClearAllCache deletes every cached analysis.
func (s *analysisService) ClearAllCache(ctx context.Context) (int64, error) {
	n, err := s.cache.ClearAll(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to clear cache", "error", err)
		return 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "cache wiped", "entries", n)
	return n, nil
}
