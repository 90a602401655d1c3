package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"folio.dev/internal/models"
	"folio.dev/internal/projects"
	"folio.dev/internal/services"
)

const homeItems = 3

// PageHandler handles the home, speaking and joke pages
type PageHandler struct {
	pageService    *services.PageService
	projectService *services.ProjectService
	blogService    *services.BlogService
	rd             *renderer
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(ps *services.PageService, prs *services.ProjectService, bs *services.BlogService, rd *renderer) *PageHandler {
	return &PageHandler{
		pageService:    ps,
		projectService: prs,
		blogService:    bs,
		rd:             rd,
	}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.projectService.GetAll(r.Context(), projects.PolicyRanked)
	if err != nil {
		h.rd.errorPage(w, r, err)
		return
	}

	// the home page still renders without a blog
	posts, err := h.blogService.List()
	if err != nil {
		h.rd.logger.Warn("home page without posts", zap.Error(err))
		posts = nil
	}

	h.rd.html(w, r, http.StatusOK, "home", "", map[string]any{
		"Projects": ranked[:min(homeItems, len(ranked))],
		"Posts":    posts[:min(homeItems, len(posts))],
	})
}

// Speaking handles GET /speaking
func (h *PageHandler) Speaking(w http.ResponseWriter, r *http.Request) {
	h.rd.html(w, r, http.StatusOK, "speaking", "Speaking", map[string]any{
		"Talks": h.pageService.Talks(),
	})
}

// Joke handles GET /joke?n=N; without n a random joke is shown
func (h *PageHandler) Joke(w http.ResponseWriter, r *http.Request) {
	var (
		joke  models.Joke
		index = parseIntParam(r, "n", -1)
	)
	if index < 0 {
		joke, index = h.pageService.RandomJoke()
	} else {
		index %= h.pageService.JokeCount()
		joke = h.pageService.Joke(index)
	}

	h.rd.html(w, r, http.StatusOK, "joke", "Joke", map[string]any{
		"Joke":  joke,
		"Index": index,
		"Next":  (index + 1) % h.pageService.JokeCount(),
	})
}

// ListTalks handles GET /api/talks
func (h *PageHandler) ListTalks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.pageService.Talks())
}
