package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio.dev/internal/projects"
)

// setupEnv points the config at a scratch data dir with one post
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	posts := filepath.Join(dir, "posts")
	require.NoError(t, os.MkdirAll(posts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(posts, "hello.md"),
		[]byte("---\ntitle: Hello\ndate: 2025-04-01\n---\nBecause.\n"), 0o644))

	t.Setenv("DATA_PATH", dir)
	t.Setenv("CONTENT_PATH", posts)
	for _, key := range []string{"PROJECTS_FILE", "GITHUB_ENRICH", "STAR_CACHE_PATH", "SHOW_DRAFTS", "WATCH_CONTENT"} {
		t.Setenv(key, "")
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func payloadNames(t *testing.T, out string) []string {
	t.Helper()
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	names := make([]string, len(records))
	for i, r := range records {
		names[i], _ = r["name"].(string)
	}
	return names
}

func TestProjectsCmd_Ranked(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "projects", "--sort", "ranked")
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"pgsnap", "tiny-lsp", "markdown-lint-action", "folio", "dotfiles", "Advent-of-Code"},
		payloadNames(t, out))
	assert.NotContains(t, out, "null")
}

func TestProjectsCmd_FromFile(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
projects:
  - name: B
    url: /b
    stars: 1
  - name: A
    url: /a
    archived: true
    stars: 5
  - name: C
    url: /c
    stars: 3
`), 0o644))
	t.Setenv("PROJECTS_FILE", path)

	out, err := execute(t, "projects", "-s", "showcase")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, payloadNames(t, out))
}

func TestProjectsCmd_UnknownSort(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "projects", "--sort", "chaos")
	assert.ErrorIs(t, err, projects.ErrUnknownPolicy)
	assert.Empty(t, out)
}

func TestReadCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "read")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-04-01")
	assert.Contains(t, out, "hello")

	out, err = execute(t, "read", "hello", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Because.")

	_, err = execute(t, "read", "missing")
	assert.Error(t, err)
}
