package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"content-analyzer/internal/handlers"
	"content-analyzer/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AnalysisService service.AnalysisService
	DocumentService service.DocumentService
	DB              handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	healthHandler := handlers.NewHealthHandler(deps.DB)
	documentsHandler := handlers.NewDocumentsHandler(deps.DocumentService)
	analysisHandler := handlers.NewAnalysisHandler(deps.AnalysisService)
	cacheHandler := handlers.NewCacheHandler(deps.AnalysisService)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documentsHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", documentsHandler.Put)
				r.Get("/", documentsHandler.Get)
				r.Delete("/", documentsHandler.Delete)
				r.Post("/analysis/words", analysisHandler.Words)
				r.Post("/analysis/chunks", analysisHandler.Chunks)
				r.Delete("/cache", cacheHandler.ClearDocument)
			})
		})

		r.Delete("/cache", cacheHandler.ClearAll)
	})

	return r
}
