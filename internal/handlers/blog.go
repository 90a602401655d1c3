package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio.dev/internal/services"
)

const postsPerPage = 10

// BlogHandler handles the blog pages and post API
type BlogHandler struct {
	blogService *services.BlogService
	rd          *renderer
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(bs *services.BlogService, rd *renderer) *BlogHandler {
	return &BlogHandler{blogService: bs, rd: rd}
}

// Index handles GET /blog?page=N
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogService.List()
	if err != nil {
		h.rd.errorPage(w, r, err)
		return
	}

	pages := max(1, (len(posts)+postsPerPage-1)/postsPerPage)
	page := clamp(parseIntParam(r, "page", 1), 1, pages)
	start := (page - 1) * postsPerPage
	end := min(start+postsPerPage, len(posts))

	data := map[string]any{
		"Posts": posts[start:end],
		"Page":  page,
		"Prev":  0,
		"Next":  0,
	}
	if page > 1 {
		data["Prev"] = page - 1
	}
	if page < pages {
		data["Next"] = page + 1
	}

	h.rd.html(w, r, http.StatusOK, "blog", "Blog", data)
}

// Post handles GET /blog/{slug}
func (h *BlogHandler) Post(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogService.Get(chi.URLParam(r, "slug"))
	if err != nil {
		h.rd.errorPage(w, r, err)
		return
	}

	h.rd.html(w, r, http.StatusOK, "post", post.Title, map[string]any{"Post": post})
}

// ListPosts handles GET /api/posts
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogService.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /api/posts/{slug}
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogService.Get(chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, post)
}
