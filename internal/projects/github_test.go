package projects

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/go-github/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio.dev/internal/models"
)

type fakeRepos struct {
	mu    sync.Mutex
	repos map[string]*github.Repository
	errs  map[string]error
	calls []string
}

func (f *fakeRepos) Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	key := owner + "/" + repo
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	if err := f.errs[key]; err != nil {
		return nil, nil, err
	}
	r, ok := f.repos[key]
	if !ok {
		return nil, nil, errors.New("404 Not Found")
	}
	return r, nil, nil
}

type memCache struct {
	mu   sync.Mutex
	rows map[string]models.RepoStats
}

func (c *memCache) Lookup(ctx context.Context, fullName string) (*models.RepoStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.rows[fullName]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *memCache) Store(ctx context.Context, stats models.RepoStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[stats.FullName] = stats
	return nil
}

func TestGitHubSource_EnrichesGitHubProjects(t *testing.T) {
	inner := NewStaticSource(
		models.Project{Name: "lib", URL: "https://lib.dev", GitHubURL: models.String("https://github.com/me/lib"), Stars: 1},
		models.Project{Name: "site", URL: "https://example.com", Stars: 2},
		models.Project{Name: "old", URL: "https://github.com/me/old.git", Description: models.String("mine")},
	)
	repos := &fakeRepos{repos: map[string]*github.Repository{
		"me/lib": {
			StargazersCount: github.Int(120),
			Description:     github.String("from github"),
			Language:        github.String("Go"),
		},
		"me/old": {
			StargazersCount: github.Int(9),
			Description:     github.String("ignored"),
			Archived:        github.Bool(true),
		},
	}}
	cache := &memCache{rows: map[string]models.RepoStats{}}

	src := NewGitHubSource(inner, repos, cache, nil)
	list, err := src.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, 120, list[0].Stars)
	assert.Equal(t, "from github", *list[0].Description)
	assert.Equal(t, "Go", *list[0].Language)

	assert.Equal(t, 2, list[1].Stars)
	assert.Nil(t, list[1].Description)

	assert.True(t, list[2].Archived)
	assert.Equal(t, "mine", *list[2].Description)

	assert.ElementsMatch(t, []string{"me/lib", "me/old"}, repos.calls)
	assert.Len(t, cache.rows, 2)
}

func TestGitHubSource_UsesCache(t *testing.T) {
	inner := NewStaticSource(models.Project{Name: "lib", URL: "https://github.com/me/lib"})
	repos := &fakeRepos{}
	cache := &memCache{rows: map[string]models.RepoStats{
		"me/lib": {FullName: "me/lib", Stars: 77, FetchedAt: time.Now()},
	}}

	list, err := NewGitHubSource(inner, repos, cache, nil).Projects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 77, list[0].Stars)
	assert.Empty(t, repos.calls)
}

func TestGitHubSource_FetchFailureFailsWholeList(t *testing.T) {
	inner := NewStaticSource(
		models.Project{Name: "ok", URL: "https://github.com/me/ok"},
		models.Project{Name: "bad", URL: "https://github.com/me/bad"},
	)
	req, err := http.NewRequest(http.MethodGet, "https://api.github.com/repos/me/bad", nil)
	require.NoError(t, err)
	limited := &github.RateLimitError{
		Response: &http.Response{Request: req, StatusCode: http.StatusForbidden},
		Message:  "API rate limit exceeded",
	}
	repos := &fakeRepos{
		repos: map[string]*github.Repository{"me/ok": {StargazersCount: github.Int(1)}},
		errs:  map[string]error{"me/bad": limited},
	}

	list, err := Buffer(Load(context.Background(), NewGitHubSource(inner, repos, nil, nil)))

	assert.Nil(t, list)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "bad", fe.Project)
	assert.Equal(t, "me/bad", fe.Repo)
	assert.True(t, fe.RateLimited())
}

func TestParseGitHubRepo(t *testing.T) {
	cases := []struct {
		in          string
		owner, repo string
		ok          bool
	}{
		{"https://github.com/folio-dev/pgsnap", "folio-dev", "pgsnap", true},
		{"https://GitHub.com/a/b.git", "a", "b", true},
		{"https://github.com/a/b/tree/main", "a", "b", true},
		{"https://github.com/a", "", "", false},
		{"https://gitlab.com/a/b", "", "", false},
		{"/projects", "", "", false},
	}
	for _, tc := range cases {
		owner, repo, ok := ParseGitHubRepo(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.owner, owner, tc.in)
		assert.Equal(t, tc.repo, repo, tc.in)
	}
}
