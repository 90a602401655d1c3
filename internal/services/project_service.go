package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"folio.dev/internal/models"
	"folio.dev/internal/projects"
	"folio.dev/internal/textutil"
)

// ErrProjectNotFound is returned when no project has the requested slug
var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project-related operations
type ProjectService struct {
	source projects.Source
	logger *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(source projects.Source, logger *zap.Logger) *ProjectService {
	return &ProjectService{source: source, logger: logger}
}

// GetAll returns every project ordered by policy. Each call is an
// independent pass over the source.
func (s *ProjectService) GetAll(ctx context.Context, policy projects.Policy) ([]models.Project, error) {
	list, err := projects.Aggregate(ctx, s.source, policy)
	if err != nil {
		s.logger.Error("failed to load projects", zap.Stringer("policy", policy), zap.Error(err))
		return nil, fmt.Errorf("load projects: %w", err)
	}
	return list, nil
}

// Payload returns the ordered projects with absent fields removed
func (s *ProjectService) Payload(ctx context.Context, policy projects.Policy) ([]models.Record, error) {
	list, err := s.GetAll(ctx, policy)
	if err != nil {
		return nil, err
	}
	return projects.Payload(list), nil
}

// GetBySlug returns the project whose slugified name matches slug
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	list, err := s.GetAll(ctx, projects.PolicyShowcase)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if ProjectSlug(list[i]) == slug {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, slug)
}

// ProjectSlug derives the URL slug of a project from its name
func ProjectSlug(p models.Project) string {
	return textutil.Slugify(p.Name)
}
