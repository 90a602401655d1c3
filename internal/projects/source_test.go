package projects

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_YAML(t *testing.T) {
	path := writeFile(t, "projects.yaml", `
projects:
  - name: pgsnap
    url: https://pgsnap.dev
    githubUrl: https://github.com/folio-dev/pgsnap
    stars: 876
    downloads: 15200
  - name: old
    url: https://github.com/folio-dev/old
    archived: true
    description: ""
`)

	list, err := NewFileSource(path).Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "https://github.com/folio-dev/pgsnap", *list[0].GitHubURL)
	assert.Nil(t, list[0].Description)
	assert.Equal(t, 15200, list[0].Downloads)

	// an explicit empty string is a value, not an absence
	require.NotNil(t, list[1].Description)
	assert.Equal(t, "", *list[1].Description)
	assert.True(t, list[1].Archived)
}

func TestFileSource_JSON(t *testing.T) {
	path := writeFile(t, "projects.json", `{"projects":[{"name":"x","url":"/x","stars":2,"downloads":0}]}`)

	list, err := NewFileSource(path).Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Stars)
}

func TestFileSource_Errors(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.yaml")).Projects(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFileSource(writeFile(t, "bad.yaml", "projects: [")).Projects(context.Background())
	assert.ErrorContains(t, err, "failed to parse bad.yaml")

	_, err = NewFileSource(writeFile(t, "neg.yaml", "projects:\n  - name: n\n    stars: -1\n")).Projects(context.Background())
	assert.ErrorContains(t, err, "negative")

	_, err = NewFileSource(writeFile(t, "anon.yaml", "projects:\n  - url: /x\n")).Projects(context.Background())
	assert.ErrorContains(t, err, "no name")
}
