package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"content-analyzer/internal/relevance"
	"content-analyzer/internal/service"
	"content-analyzer/internal/service/mocks"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockAnalysisService, *mocks.MockDocumentService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	analysis := mocks.NewMockAnalysisService(ctrl)
	documents := mocks.NewMockDocumentService(ctrl)

	router := NewRouter(&Deps{
		AnalysisService: analysis,
		DocumentService: documents,
		DB:              okPinger{},
	})
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
	return router, analysis, documents
}

func TestRouter_Routes(t *testing.T) {
	phraseBody := `{"phrase":"content marketing"}`

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService)
		wantStatus int
	}{
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/documents",
			method: http.MethodGet,
			path:   "/api/documents",
			setup: func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService) {
				d.EXPECT().List(gomock.Any()).Return([]*service.Document{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "PUT /api/documents/{id}",
			method: http.MethodPut,
			path:   "/api/documents/doc-1",
			body:   `{"format":"text","body":"hello world body"}`,
			setup: func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService) {
				d.EXPECT().
					Put(gomock.Any(), service.DocumentInput{ID: "doc-1", Format: "text", Body: "hello world body"}).
					Return(&service.Document{ID: "doc-1"}, true, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "PUT /api/documents/{id} invalid body",
			method:     http.MethodPut,
			path:       "/api/documents/doc-1",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "GET /api/documents/{id}",
			method: http.MethodGet,
			path:   "/api/documents/missing",
			setup: func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService) {
				d.EXPECT().Get(gomock.Any(), "missing").Return(nil, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "DELETE /api/documents/{id}",
			method: http.MethodDelete,
			path:   "/api/documents/doc-1",
			setup: func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService) {
				d.EXPECT().Delete(gomock.Any(), "doc-1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "POST words analysis",
			method: http.MethodPost,
			path:   "/api/documents/doc-1/analysis/words",
			body:   phraseBody,
			setup: func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService) {
				a.EXPECT().
					AnalyzeWords(gomock.Any(), service.AnalysisRequest{DocumentID: "doc-1", Phrase: "content marketing"}).
					Return(&service.AnalysisResult{Mode: relevance.ModeServer, Kind: relevance.KindWords, Data: json.RawMessage(`{}`)}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST chunks analysis",
			method: http.MethodPost,
			path:   "/api/documents/doc-1/analysis/chunks",
			body:   phraseBody,
			setup: func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService) {
				a.EXPECT().
					AnalyzeChunks(gomock.Any(), service.AnalysisRequest{DocumentID: "doc-1", Phrase: "content marketing"}).
					Return(&service.AnalysisResult{Mode: relevance.ModeServer, Kind: relevance.KindChunks, Data: json.RawMessage(`{}`)}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE /api/documents/{id}/cache",
			method: http.MethodDelete,
			path:   "/api/documents/doc-1/cache",
			setup: func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService) {
				a.EXPECT().ClearCache(gomock.Any(), "doc-1").Return(int64(2), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE /api/cache",
			method: http.MethodDelete,
			path:   "/api/cache",
			setup: func(a *mocks.MockAnalysisService, d *mocks.MockDocumentService) {
				a.EXPECT().ClearAllCache(gomock.Any()).Return(int64(5), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET words analysis method not allowed",
			method:     http.MethodGet,
			path:       "/api/documents/doc-1/analysis/words",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, analysis, documents := newTestRouter(t)
			if tt.setup != nil {
				tt.setup(analysis, documents)
			}

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}

func TestRouter_Preflight(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/documents/doc-1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Router OPTIONS status = %v, want %v", w.Code, http.StatusNoContent)
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	router, analysis, _ := newTestRouter(t)
	analysis.EXPECT().ClearAllCache(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/cache", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Router panic status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
}
