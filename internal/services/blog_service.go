package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"folio.dev/internal/models"
	"folio.dev/internal/textutil"
)

// ErrPostNotFound is returned when no post has the requested slug
var ErrPostNotFound = errors.New("post not found")

const wordsPerMinute = 200

// BlogService serves markdown posts from a content directory
type BlogService struct {
	dir        string
	showDrafts bool
	md         goldmark.Markdown
	logger     *zap.Logger

	mu    sync.RWMutex
	gen   uint64                  // bumped by Invalidate
	index []models.PostSummary    // nil until first scan
	files map[string]string       // slug -> file path
	posts map[string]*models.Post // rendered posts
}

// NewBlogService creates a new BlogService for dir
func NewBlogService(dir string, showDrafts bool, logger *zap.Logger) *BlogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{
		dir:        dir,
		showDrafts: showDrafts,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		logger: logger,
		posts:  make(map[string]*models.Post),
	}
}

// List returns every visible post, newest first
func (s *BlogService) List() ([]models.PostSummary, error) {
	s.mu.RLock()
	index := s.index
	s.mu.RUnlock()
	if index != nil {
		return index, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		if err := s.scan(); err != nil {
			return nil, err
		}
	}
	return s.index, nil
}

// Get returns the rendered post for slug
func (s *BlogService) Get(slug string) (*models.Post, error) {
	if _, err := s.List(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	post, cached := s.posts[slug]
	path, exists := s.files[slug]
	gen := s.gen
	s.mu.RUnlock()

	if cached {
		return post, nil
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}

	post, err := s.render(path)
	if err != nil {
		return nil, err
	}

	s.storeRendered(slug, post, gen)
	return post, nil
}

// storeRendered caches post unless the cache was invalidated after gen
// was read, so a post rendered from a stale index is never kept
func (s *BlogService) storeRendered(slug string, post *models.Post, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.posts[slug] = post
	return true
}

// Invalidate drops the index and every rendered post
func (s *BlogService) Invalidate() {
	s.mu.Lock()
	s.gen++
	s.index = nil
	s.files = nil
	s.posts = make(map[string]*models.Post)
	s.mu.Unlock()
}

// scan builds the index from frontmatter only. Caller holds s.mu.
func (s *BlogService) scan() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read content dir: %w", err)
	}

	index := []models.PostSummary{}
	files := make(map[string]string)

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		meta, body, err := parseFrontmatter(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", e.Name(), err)
		}
		if meta.Draft && !s.showDrafts {
			continue
		}
		meta.Slug = postSlug(meta, e.Name())
		if prev, dup := files[meta.Slug]; dup {
			s.logger.Warn("duplicate post slug, keeping first",
				zap.String("slug", meta.Slug), zap.String("kept", prev), zap.String("skipped", path))
			continue
		}

		files[meta.Slug] = path
		index = append(index, models.PostSummary{
			PostMeta:       meta,
			ReadingMinutes: readingMinutes(body),
		})
	}

	slices.SortStableFunc(index, func(a, b models.PostSummary) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})

	s.index = index
	s.files = files
	s.logger.Debug("indexed posts", zap.String("dir", s.dir), zap.Int("count", len(index)))
	return nil
}

func (s *BlogService) render(path string) (*models.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read post: %w", err)
	}
	meta, body, err := parseFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	meta.Slug = postSlug(meta, filepath.Base(path))

	html, headings, err := RenderMarkdown(s.md, body)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}

	return &models.Post{
		PostMeta: meta,
		Source:   path,
		Markdown: string(body),
		HTML:     template.HTML(html),
		Headings: headings,
	}, nil
}

// Watch invalidates the cache whenever a post changes on disk. It
// returns once the watcher is running and stops when ctx is done.
func (s *BlogService) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}
	s.logger.Info("watching content", zap.String("dir", s.dir))

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Ext(event.Name), ".md") || event.Op == fsnotify.Chmod {
					continue
				}
				s.logger.Debug("content changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
				s.Invalidate()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("content watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

// RenderMarkdown converts body to HTML, assigning heading anchors with
// textutil.HeadingIDs, and returns the document's headings
func RenderMarkdown(md goldmark.Markdown, body []byte) (string, []models.Heading, error) {
	pctx := parser.NewContext(parser.WithIDs(textutil.NewHeadingIDs()))
	doc := md.Parser().Parse(text.NewReader(body), parser.WithContext(pctx))

	var headings []models.Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		heading := models.Heading{Level: h.Level, Text: string(h.Text(body))}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				heading.ID = string(b)
			}
		}
		headings = append(headings, heading)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, doc); err != nil {
		return "", nil, err
	}
	return buf.String(), headings, nil
}

// parseFrontmatter splits a "---" fenced YAML header from the body
func parseFrontmatter(data []byte) (models.PostMeta, []byte, error) {
	var meta models.PostMeta

	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return meta, nil, errors.New("missing frontmatter")
	}

	rest := data[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---\n"))
	var header, body []byte
	switch {
	case end >= 0:
		header, body = rest[:end], rest[end+len("\n---\n"):]
	case bytes.HasSuffix(rest, []byte("\n---")):
		header = rest[:len(rest)-len("\n---")]
	default:
		return meta, nil, errors.New("unterminated frontmatter")
	}

	if err := yaml.Unmarshal(header, &meta); err != nil {
		return meta, nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if meta.Title == "" {
		return meta, nil, errors.New("frontmatter has no title")
	}
	return meta, body, nil
}

func postSlug(meta models.PostMeta, filename string) string {
	if meta.Slug != "" {
		return textutil.Slugify(meta.Slug)
	}
	return textutil.Slugify(strings.TrimSuffix(filename, filepath.Ext(filename)))
}

func readingMinutes(body []byte) int {
	words := len(bytes.Fields(body))
	return max(1, (words+wordsPerMinute-1)/wordsPerMinute)
}
