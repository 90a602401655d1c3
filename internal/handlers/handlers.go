package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"folio.dev/internal/config"
	"folio.dev/internal/middleware"
	"folio.dev/internal/projects"
	"folio.dev/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(ctx context.Context, cfg *config.Config, source projects.Source, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	// Initialize services
	projectService := services.NewProjectService(source, logger)
	blogService := services.NewBlogService(cfg.ContentPath, cfg.ShowDrafts, logger)
	pageService := services.NewPageService()

	if cfg.WatchContent {
		if err := blogService.Watch(ctx); err != nil {
			logger.Warn("content watching disabled", zap.Error(err))
		}
	}

	rd, err := newRenderer(cfg.Site, logger)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	projectHandler := NewProjectHandler(projectService, rd)
	blogHandler := NewBlogHandler(blogService, rd)
	pageHandler := NewPageHandler(pageService, projectService, blogService, rd)

	// Pages
	r.Get("/", pageHandler.Home)
	r.Get("/projects", projectHandler.Page)
	r.Get("/speaking", pageHandler.Speaking)
	r.Get("/joke", pageHandler.Joke)
	r.Get("/blog", blogHandler.Index)
	r.Get("/blog/{slug}", blogHandler.Post)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{slug}", projectHandler.GetProject)
		r.Get("/posts", blogHandler.ListPosts)
		r.Get("/posts/{slug}", blogHandler.GetPost)
		r.Get("/talks", pageHandler.ListTalks)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rd.errorPage(w, r, errNotFound)
	})

	return r, nil
}

var errNotFound = errors.New("not found")

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	var fetchErr *projects.FetchError
	switch {
	case errors.Is(err, errNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, projects.ErrUnknownPolicy):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("error encoding JSON", zap.Error(err))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps err to a status and writes it as JSON
func respondServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status >= 500 {
		message = errorMessage(status)
	}
	respondError(w, status, message)
}

// parseIntParam parses an integer query parameter with a default value
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// clamp limits a value to a range
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
