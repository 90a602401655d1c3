// Package projects loads, cleans and orders the projects shown on the
// site. Data flows Source -> Load (lazy sequence) -> Buffer -> Sort, and
// Payload prepares the result for serialization.
package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"folio.dev/internal/models"
)

// Source produces the unordered collection of projects
type Source interface {
	Projects(ctx context.Context) ([]models.Project, error)
}

// StaticSource serves a fixed list compiled into the binary
type StaticSource struct {
	projects []models.Project
}

// NewStaticSource creates a StaticSource over projects. With no
// arguments it serves the built-in showcase list.
func NewStaticSource(projects ...models.Project) *StaticSource {
	if len(projects) == 0 {
		projects = defaultProjects
	}
	return &StaticSource{projects: projects}
}

// Projects returns a copy of every project. It never fails.
func (s *StaticSource) Projects(ctx context.Context) ([]models.Project, error) {
	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

// FileSource reads a project list from a YAML or JSON file on every call
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Projects reads and parses the file
func (s *FileSource) Projects(ctx context.Context) ([]models.Project, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(s.path), err)
	}

	var list models.ProjectList
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".json":
		err = json.Unmarshal(data, &list)
	default:
		err = yaml.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(s.path), err)
	}

	for i, p := range list.Projects {
		if p.Name == "" {
			return nil, fmt.Errorf("%s: project %d has no name", filepath.Base(s.path), i)
		}
		if p.Stars < 0 || p.Downloads < 0 {
			return nil, fmt.Errorf("%s: project %q has negative counters", filepath.Base(s.path), p.Name)
		}
	}
	return list.Projects, nil
}

var defaultProjects = []models.Project{
	{
		Name:        "folio",
		URL:         "https://github.com/folio-dev/folio",
		GitHubURL:   models.String("https://github.com/folio-dev/folio"),
		Description: models.String("The server behind this site: projects, talks and a markdown blog."),
		Stars:       41,
		Language:    models.String("Go"),
	},
	{
		Name:        "tiny-lsp",
		URL:         "https://github.com/folio-dev/tiny-lsp",
		GitHubURL:   models.String("https://github.com/folio-dev/tiny-lsp"),
		Description: models.String("A minimal language server to learn the protocol from."),
		Stars:       212,
		Downloads:   3400,
		Language:    models.String("TypeScript"),
	},
	{
		Name:        "pgsnap",
		URL:         "https://pgsnap.dev",
		GitHubURL:   models.String("https://github.com/folio-dev/pgsnap"),
		HomepageURL: models.String("https://pgsnap.dev"),
		Description: models.String("Point-in-time snapshots of Postgres schemas for code review."),
		Stars:       876,
		Downloads:   15200,
		Language:    models.String("Rust"),
	},
	{
		Name:        "markdown-lint-action",
		URL:         "https://github.com/folio-dev/markdown-lint-action",
		Archived:    true,
		Description: models.String("GitHub Action wrapper around markdownlint."),
		Stars:       58,
		Downloads:   920,
	},
	{
		Name:     "dotfiles",
		URL:      "https://github.com/folio-dev/dotfiles",
		Stars:    19,
		Language: models.String("Shell"),
	},
	{
		Name:        "Advent-of-Code",
		URL:         "https://github.com/folio-dev/advent-of-code",
		GitHubURL:   models.String("https://github.com/folio-dev/advent-of-code"),
		Archived:    true,
		Description: models.String("Solutions, one language per year."),
		Stars:       7,
	},
}
