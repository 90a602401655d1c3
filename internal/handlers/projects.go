package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio.dev/internal/projects"
	"folio.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	rd             *renderer
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, rd *renderer) *ProjectHandler {
	return &ProjectHandler{projectService: ps, rd: rd}
}

// Page handles GET /projects
func (h *ProjectHandler) Page(w http.ResponseWriter, r *http.Request) {
	policy, err := projects.ParsePolicy(r.URL.Query().Get("sort"))
	if err != nil {
		h.rd.errorPage(w, r, err)
		return
	}

	list, err := h.projectService.GetAll(r.Context(), policy)
	if err != nil {
		h.rd.errorPage(w, r, err)
		return
	}

	h.rd.html(w, r, http.StatusOK, "projects", "Projects", map[string]any{
		"Projects": list,
		"Sort":     policy.String(),
	})
}

// ListProjects handles GET /api/projects?sort=showcase|ranked
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	policy, err := projects.ParsePolicy(r.URL.Query().Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := h.projectService.Payload(r.Context(), policy)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload)
}

// GetProject handles GET /api/projects/{slug}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.projectService.GetBySlug(r.Context(), slug)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}
