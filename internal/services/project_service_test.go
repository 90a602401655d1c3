package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folio.dev/internal/models"
	"folio.dev/internal/projects"
)

type failingSource struct{}

func (failingSource) Projects(ctx context.Context) ([]models.Project, error) {
	return nil, errors.New("upstream down")
}

func testProjects() *projects.StaticSource {
	return projects.NewStaticSource(
		models.Project{Name: "B", Stars: 1},
		models.Project{Name: "A", Archived: true, Stars: 5},
		models.Project{Name: "C", Stars: 3, Language: models.String("Go")},
	)
}

func TestProjectService_GetAll(t *testing.T) {
	svc := NewProjectService(testProjects(), zap.NewNop())

	list, err := svc.GetAll(context.Background(), projects.PolicyRanked)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "B", list[2].Name)
}

func TestProjectService_Payload(t *testing.T) {
	svc := NewProjectService(testProjects(), zap.NewNop())

	payload, err := svc.Payload(context.Background(), projects.PolicyShowcase)
	require.NoError(t, err)
	require.Len(t, payload, 3)

	assert.Equal(t, "C", payload[1]["name"])
	assert.Equal(t, "Go", payload[1]["language"])
	assert.NotContains(t, payload[0], "language")
	assert.NotContains(t, payload[0], "description")
}

func TestProjectService_GetBySlug(t *testing.T) {
	svc := NewProjectService(projects.NewStaticSource(), zap.NewNop())

	p, err := svc.GetBySlug(context.Background(), "advent-of-code")
	require.NoError(t, err)
	assert.Equal(t, "Advent-of-Code", p.Name)

	_, err = svc.GetBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_SourceFailure(t *testing.T) {
	svc := NewProjectService(failingSource{}, zap.NewNop())

	list, err := svc.GetAll(context.Background(), projects.PolicyShowcase)
	assert.Nil(t, list)
	assert.EqualError(t, err, "load projects: upstream down")
}
