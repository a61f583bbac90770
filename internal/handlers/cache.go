package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"content-analyzer/internal/service"
)

// CacheHandler handles HTTP requests that clear cached analyses.
type CacheHandler struct {
	analysisService service.AnalysisService
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(analysisService service.AnalysisService) *CacheHandler {
	return &CacheHandler{analysisService: analysisService}
}

// ClearResponse reports how many cache entries were removed.
//
// swagger:model ClearResponse
type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

// ClearDocument handles DELETE /api/documents/{id}/cache.
func (h *CacheHandler) ClearDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := h.analysisService.ClearCache(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to clear cache")
		return
	}
	writeJSON(w, ctx, http.StatusOK, ClearResponse{Deleted: n})
}

// ClearAll handles DELETE /api/cache.
func (h *CacheHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := h.analysisService.ClearAllCache(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to clear cache")
		return
	}
	writeJSON(w, ctx, http.StatusOK, ClearResponse{Deleted: n})
}
