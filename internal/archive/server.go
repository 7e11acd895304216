package archive

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/drios/docscope/internal/metrics"
)

// Server exposes the archive over HTTP: upload, listing, stats, and delete,
// mirroring the contract the dashboard client consumes.
type Server struct {
	service *Service
	router  chi.Router
}

// NewServer wires the routes. The metrics argument may be nil.
func NewServer(service *Service, m *metrics.Metrics) *Server {
	s := &Server{
		service: service,
		router:  chi.NewRouter(),
	}

	s.router.Use(middleware.Recoverer)
	// The observed deployment accepts any origin; tighten per deployment.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         3600,
	}))
	s.router.Use(m.Middleware("docscope"))

	s.router.Get("/", s.handleRoot)
	s.router.Post("/upload", s.handleUpload)
	s.router.Get("/documents", s.handleListDocuments)
	s.router.Get("/stats", s.handleStats)
	s.router.Delete("/documents/{id}", s.handleDeleteDocument)
	s.router.Method(http.MethodGet, "/metrics", m.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, s.router)
}

// ServeHTTP implements http.Handler for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
