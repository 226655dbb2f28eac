// Package api provides the HTTP API server and handlers for the season
// shelf application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seasonshelf/seasonshelf-server/internal/http/response"
	"github.com/seasonshelf/seasonshelf-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	seasonService *service.SeasonService
	router        *chi.Mux
	logger        *slog.Logger
	name          string
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(seasonService *service.SeasonService, name string, corsOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		seasonService: seasonService,
		router:        chi.NewRouter(),
		logger:        logger,
		name:          name,
	}

	s.setupMiddleware(corsOrigins)
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(corsOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/seasons", func(r chi.Router) {
			r.Get("/", s.handleListSeasons)
			r.Post("/", s.handleIngestSeason)

			r.Route("/{year}/{season}", func(r chi.Router) {
				r.Get("/", s.handleGetSeason)
				r.Get("/books", s.handleQueryBooks)
				r.Delete("/", s.handleDeleteSeason)
			})
		})
	})
}

// handleHealthCheck reports server liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"status": "ok",
		"name":   s.name,
	}, s.logger)
}
