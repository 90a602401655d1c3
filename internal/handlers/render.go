package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"folio.dev/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "projects", "speaking", "joke", "blog", "post", "error"}

// pageData is what every page template receives
type pageData struct {
	Title string
	Path  string
	Site  *config.Site
	Year  int
	Data  any
}

// renderer executes the layout around one page template
type renderer struct {
	pages  map[string]*template.Template
	site   *config.Site
	logger *zap.Logger
}

func newRenderer(site *config.Site, logger *zap.Logger) (*renderer, error) {
	base, err := template.New("layout").Funcs(componentFuncs()).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	return &renderer{pages: pages, site: site, logger: logger}, nil
}

// html renders page into a buffer first so a template error never
// leaves a half-written response
func (rd *renderer) html(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	t, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown page template", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", pageData{
		Title: title,
		Path:  r.URL.Path,
		Site:  rd.site,
		Year:  time.Now().Year(),
		Data:  data,
	})
	if err != nil {
		rd.logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// errorPage renders the error template for err with the mapped status
func (rd *renderer) errorPage(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		rd.logger.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	rd.html(w, r, status, "error", http.StatusText(status), struct{ Message string }{
		Message: errorMessage(status),
	})
}

func errorMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "There is nothing here."
	case http.StatusBadGateway:
		return "Project data could not be fetched. Please try again shortly."
	case http.StatusBadRequest:
		return "That request did not make sense."
	}
	return "Something went wrong on our side."
}
