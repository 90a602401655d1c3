package projects

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"folio.dev/internal/models"
)

// FetchError reports a failed GitHub lookup for one project. It is
// recoverable: callers fail the page or build, and may retry later.
type FetchError struct {
	Project string
	Repo    string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Project, e.Repo, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether GitHub refused the request for quota reasons
func (e *FetchError) RateLimited() bool {
	var rl *github.RateLimitError
	var abuse *github.AbuseRateLimitError
	return errors.As(e.Err, &rl) || errors.As(e.Err, &abuse)
}

// RepoGetter is the slice of the GitHub API used for enrichment.
// *github.RepositoriesService satisfies it.
type RepoGetter interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
}

// RepoCache stores RepoStats between lookups
type RepoCache interface {
	Lookup(ctx context.Context, fullName string) (*models.RepoStats, error)
	Store(ctx context.Context, stats models.RepoStats) error
}

// GitHubSource refreshes live repository data for the projects of an
// inner Source. Projects that do not link to github.com pass through.
type GitHubSource struct {
	inner  Source
	repos  RepoGetter
	cache  RepoCache
	logger *zap.Logger
	limit  int
	now    func() time.Time
}

// NewGitHubClient creates an API client, authenticated when token is set
func NewGitHubClient(ctx context.Context, token string) *github.Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	return github.NewClient(hc)
}

// NewGitHubSource wraps inner. cache may be nil.
func NewGitHubSource(inner Source, repos RepoGetter, cache RepoCache, logger *zap.Logger) *GitHubSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitHubSource{
		inner:  inner,
		repos:  repos,
		cache:  cache,
		logger: logger,
		limit:  4,
		now:    time.Now,
	}
}

// Projects returns the inner projects with GitHub data applied. Any
// failed lookup fails the whole call with a *FetchError.
func (s *GitHubSource) Projects(ctx context.Context) ([]models.Project, error) {
	list, err := s.inner.Projects(ctx)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for i := range list {
		owner, repo, ok := ParseGitHubRepo(list[i].SourceURL())
		if !ok {
			continue
		}
		g.Go(func() error {
			stats, err := s.stats(gctx, owner, repo)
			if err != nil {
				return &FetchError{Project: list[i].Name, Repo: owner + "/" + repo, Err: err}
			}
			applyStats(&list[i], stats)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GitHubSource) stats(ctx context.Context, owner, repo string) (*models.RepoStats, error) {
	fullName := owner + "/" + repo

	if s.cache != nil {
		cached, err := s.cache.Lookup(ctx, fullName)
		if err != nil {
			s.logger.Warn("repo cache lookup failed", zap.String("repo", fullName), zap.Error(err))
		} else if cached != nil {
			s.logger.Debug("repo cache hit", zap.String("repo", fullName))
			return cached, nil
		}
	}

	r, _, err := s.repos.Get(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	stats := &models.RepoStats{
		FullName:    fullName,
		Stars:       r.GetStargazersCount(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Homepage:    r.GetHomepage(),
		Archived:    r.GetArchived(),
		FetchedAt:   s.now(),
	}
	s.logger.Debug("fetched repo", zap.String("repo", fullName), zap.Int("stars", stats.Stars))

	if s.cache != nil {
		if err := s.cache.Store(ctx, *stats); err != nil {
			s.logger.Warn("repo cache store failed", zap.String("repo", fullName), zap.Error(err))
		}
	}
	return stats, nil
}

// applyStats overwrites live counters and fills optional fields the
// hand-written entry left absent
func applyStats(p *models.Project, stats *models.RepoStats) {
	p.Stars = max(stats.Stars, 0)
	p.Archived = p.Archived || stats.Archived
	if p.Description == nil && stats.Description != "" {
		p.Description = models.String(stats.Description)
	}
	if p.Language == nil && stats.Language != "" {
		p.Language = models.String(stats.Language)
	}
	if p.HomepageURL == nil && stats.Homepage != "" {
		p.HomepageURL = models.String(stats.Homepage)
	}
}

// ParseGitHubRepo extracts owner and repository from a github.com URL
func ParseGitHubRepo(raw string) (owner, repo string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(u.Hostname(), "github.com") {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
