package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"content-analyzer/internal/contextutil"
	"content-analyzer/internal/service"
)

// AnalysisHandler handles HTTP requests for relevance analyses.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalysisRequest represents the HTTP request payload for an analysis.
//
// swagger:model AnalysisRequest
type AnalysisRequest struct {
	// Topic phrase to score the document against
	Phrase string `json:"phrase"`

	// Scoring pipeline: "server" or "client" ("browser" is accepted as an alias)
	Mode string `json:"mode,omitempty"`
}

// AnalysisResponse represents an analysis report with its cache metadata.
//
// swagger:model AnalysisResponse
type AnalysisResponse struct {
	// Cache key of the result
	Key        string `json:"key"`
	DocumentID string `json:"document_id"`
	Mode       string `json:"mode"`

	// "word" or "chunk"
	Kind   string `json:"kind"`
	Phrase string `json:"phrase"`

	// Cached is true when the report was served from the cache
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"created_at"`

	// Warnings about degraded cache behaviour
	Warnings []string `json:"warnings,omitempty"`

	// The word or chunk report
	Data json.RawMessage `json:"data"`
}

// Words handles POST /api/documents/{id}/analysis/words.
func (h *AnalysisHandler) Words(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.analysisService.AnalyzeWords)
}

// Chunks handles POST /api/documents/{id}/analysis/chunks.
func (h *AnalysisHandler) Chunks(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.analysisService.AnalyzeChunks)
}

type analyzeFunc func(ctx context.Context, req service.AnalysisRequest) (*service.AnalysisResult, error)

func (h *AnalysisHandler) serve(w http.ResponseWriter, r *http.Request, analyze analyzeFunc) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := analyze(ctx, service.AnalysisRequest{
		DocumentID: chi.URLParam(r, "id"),
		Phrase:     req.Phrase,
		Mode:       req.Mode,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to analyze document")
		return
	}

	writeJSON(w, ctx, http.StatusOK, AnalysisResponse{
		Key:        result.Key,
		DocumentID: result.DocumentID,
		Mode:       string(result.Mode),
		Kind:       string(result.Kind),
		Phrase:     result.Phrase,
		Cached:     result.Cached,
		CreatedAt:  result.CreatedAt,
		Warnings:   result.Warnings,
		Data:       result.Data,
	})
}
