package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"content-analyzer/internal/content"
	"content-analyzer/internal/contextutil"
	"content-analyzer/internal/relevance"
	"content-analyzer/internal/service"
)

// DocumentsHandler handles HTTP requests for stored documents.
type DocumentsHandler struct {
	documentService service.DocumentService
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(documentService service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{documentService: documentService}
}

// PutDocumentRequest represents the HTTP request payload for storing a document.
//
// swagger:model PutDocumentRequest
type PutDocumentRequest struct {
	// Optional title; taken from the first heading when empty
	Title string `json:"title,omitempty"`

	// "html" (default), "markdown" or "text"
	Format string `json:"format,omitempty"`
	Body   string `json:"body"`
}

// DocumentResponse represents a stored document without its body.
//
// swagger:model DocumentResponse
type DocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Format    string    `json:"format"`
	Hash      string    `json:"hash"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PutDocumentResponse reports a stored document and whether its content changed.
//
// swagger:model PutDocumentResponse
type PutDocumentResponse struct {
	DocumentResponse
	Changed bool `json:"changed"`
}

// DocumentDetailResponse represents a document with its statistics and paragraphs.
//
// swagger:model DocumentDetailResponse
type DocumentDetailResponse struct {
	DocumentResponse
	Body       string                `json:"body"`
	Stats      content.Stats         `json:"stats"`
	Paragraphs []relevance.Paragraph `json:"paragraphs"`
	Headings   []content.Heading     `json:"headings"`
}

// ListDocumentsResponse represents the stored documents.
//
// swagger:model ListDocumentsResponse
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// List handles GET /api/documents.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.documentService.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list documents")
		return
	}

	resp := ListDocumentsResponse{Documents: make([]DocumentResponse, len(docs))}
	for i, doc := range docs {
		resp.Documents[i] = toDocumentResponse(doc)
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// Put handles PUT /api/documents/{id}.
func (h *DocumentsHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req PutDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, changed, err := h.documentService.Put(ctx, service.DocumentInput{
		ID:     chi.URLParam(r, "id"),
		Title:  req.Title,
		Format: req.Format,
		Body:   req.Body,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to store document")
		return
	}

	writeJSON(w, ctx, http.StatusOK, PutDocumentResponse{
		DocumentResponse: toDocumentResponse(doc),
		Changed:          changed,
	})
}

// Get handles GET /api/documents/{id}.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := h.documentService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get document")
		return
	}

	writeJSON(w, ctx, http.StatusOK, DocumentDetailResponse{
		DocumentResponse: toDocumentResponse(&detail.Document),
		Body:             detail.Body,
		Stats:            detail.Stats,
		Paragraphs:       detail.Paragraphs,
		Headings:         detail.Headings,
	})
}

// Delete handles DELETE /api/documents/{id}.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.documentService.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDocumentResponse(doc *service.Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Format:    string(doc.Format),
		Hash:      doc.Hash,
		UpdatedAt: doc.UpdatedAt,
	}
}
