package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"content-analyzer/internal/content"
	"content-analyzer/internal/relevance"
	"content-analyzer/internal/service"
	"content-analyzer/internal/service/mocks"
)

var testUpdatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func TestDocumentsHandler_Put(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		mockSetup   func(*mocks.MockDocumentService)
		wantStatus  int
		wantChanged bool
	}{
		{
			name: "stores document",
			body: PutDocumentRequest{Format: "markdown", Body: "# Guide\n\nSome body text here."},
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().
					Put(gomock.Any(), service.DocumentInput{ID: "doc-1", Format: "markdown", Body: "# Guide\n\nSome body text here."}).
					Return(&service.Document{ID: "doc-1", Title: "Guide", Format: content.FormatMarkdown, Hash: "h", UpdatedAt: testUpdatedAt}, true, nil)
			},
			wantStatus:  http.StatusOK,
			wantChanged: true,
		},
		{
			name: "unchanged document",
			body: PutDocumentRequest{Title: "T", Body: "<p>same</p>"},
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().
					Put(gomock.Any(), gomock.Any()).
					Return(&service.Document{ID: "doc-1", Title: "T", Format: content.FormatHTML}, false, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid JSON body",
			body:       "{",
			mockSetup:  func(m *mocks.MockDocumentService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "validation error",
			body: PutDocumentRequest{Format: "pdf", Body: "x"},
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().
					Put(gomock.Any(), gomock.Any()).
					Return(nil, false, &service.ValidationError{Field: "format", Message: "must be html, markdown or text"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "cache unavailable",
			body: PutDocumentRequest{Body: "<p>new</p>"},
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil, false, service.ErrCacheUnavailable)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockDocumentService(ctrl)
			tt.mockSetup(mockService)

			handler := NewDocumentsHandler(mockService)
			req := newRequest(t, http.MethodPut, "/api/documents/doc-1", tt.body, map[string]string{"id": "doc-1"})
			w := httptest.NewRecorder()

			handler.Put(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Put() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decodeBody[PutDocumentResponse](t, w)
			if resp.ID != "doc-1" || resp.Changed != tt.wantChanged {
				t.Errorf("Put() response = %+v", resp)
			}
		})
	}
}

func TestDocumentsHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockDocumentService(ctrl)

	mockService.EXPECT().Get(gomock.Any(), "doc-1").Return(&service.DocumentDetail{
		Document:   service.Document{ID: "doc-1", Title: "Intro", Format: content.FormatHTML, Hash: "h", UpdatedAt: testUpdatedAt},
		Body:       "<p>Content marketing builds audiences.</p>",
		Stats:      content.Stats{WordCount: 4, ReadingTimeMinutes: 1},
		Paragraphs: []relevance.Paragraph{{Index: 0, Text: "Content marketing builds audiences.", WordCount: 4, CharCount: 35}},
	}, nil)
	mockService.EXPECT().Get(gomock.Any(), "missing").Return(nil, service.ErrNotFound)

	handler := NewDocumentsHandler(mockService)

	w := httptest.NewRecorder()
	handler.Get(w, newRequest(t, http.MethodGet, "/api/documents/doc-1", nil, map[string]string{"id": "doc-1"}))
	if w.Code != http.StatusOK {
		t.Fatalf("Get() status = %v, want %v", w.Code, http.StatusOK)
	}
	resp := decodeBody[DocumentDetailResponse](t, w)
	if resp.ID != "doc-1" || resp.Format != "html" || !resp.UpdatedAt.Equal(testUpdatedAt) {
		t.Errorf("Get() document = %+v", resp.DocumentResponse)
	}
	if resp.Stats.WordCount != 4 || len(resp.Paragraphs) != 1 {
		t.Errorf("Get() detail = %+v", resp)
	}

	w = httptest.NewRecorder()
	handler.Get(w, newRequest(t, http.MethodGet, "/api/documents/missing", nil, map[string]string{"id": "missing"}))
	if w.Code != http.StatusNotFound {
		t.Errorf("Get() missing status = %v, want %v", w.Code, http.StatusNotFound)
	}
}

func TestDocumentsHandler_List(t *testing.T) {
	tests := []struct {
		name       string
		docs       []*service.Document
		err        error
		wantStatus int
		wantCount  int
	}{
		{
			name: "documents",
			docs: []*service.Document{
				{ID: "a", Format: content.FormatText},
				{ID: "b", Format: content.FormatHTML},
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "empty",
			docs:       []*service.Document{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "service error",
			err:        errors.New("db closed"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockDocumentService(ctrl)
			mockService.EXPECT().List(gomock.Any()).Return(tt.docs, tt.err)

			w := httptest.NewRecorder()
			NewDocumentsHandler(mockService).List(w, newRequest(t, http.MethodGet, "/api/documents", nil, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("List() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decodeBody[map[string][]DocumentResponse](t, w)
			docs, ok := resp["documents"]
			if !ok || docs == nil {
				t.Fatalf("List() documents should be an array, got %v", resp)
			}
			if len(docs) != tt.wantCount {
				t.Errorf("List() count = %d, want %d", len(docs), tt.wantCount)
			}
		})
	}
}

func TestDocumentsHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"cache unavailable", service.ErrCacheUnavailable, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockDocumentService(ctrl)
			mockService.EXPECT().Delete(gomock.Any(), "doc-1").Return(tt.err)

			w := httptest.NewRecorder()
			NewDocumentsHandler(mockService).Delete(w, newRequest(t, http.MethodDelete, "/api/documents/doc-1", nil, map[string]string{"id": "doc-1"}))

			if w.Code != tt.wantStatus {
				t.Errorf("Delete() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}
