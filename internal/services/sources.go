package services

import (
	"context"

	"go.uber.org/zap"

	"folio.dev/internal/config"
	"folio.dev/internal/projects"
	"folio.dev/internal/store"
)

// NewProjectSource builds the project source described by cfg: the
// built-in list or PROJECTS_FILE, optionally refreshed from GitHub.
// The returned cleanup func releases the star cache.
func NewProjectSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (projects.Source, func(), error) {
	var src projects.Source = projects.NewStaticSource()
	if cfg.ProjectsFile != "" {
		src = projects.NewFileSource(cfg.ProjectsFile)
		logger.Info("using projects file", zap.String("path", cfg.ProjectsFile))
	}

	if !cfg.GitHubEnrich {
		return src, func() {}, nil
	}

	var (
		cache   projects.RepoCache
		cleanup = func() {}
	)
	if cfg.StarCachePath != "" {
		c, err := store.OpenRepoCache(cfg.StarCachePath, cfg.StarCacheTTL)
		if err != nil {
			return nil, nil, err
		}
		if n, err := c.Purge(ctx); err != nil {
			logger.Warn("failed to purge repo cache", zap.Error(err))
		} else if n > 0 {
			logger.Debug("purged expired repo stats", zap.Int64("rows", n))
		}
		cache = c
		cleanup = func() {
			if err := c.Close(); err != nil {
				logger.Warn("failed to close repo cache", zap.Error(err))
			}
		}
	}

	client := projects.NewGitHubClient(ctx, cfg.GitHubToken)
	if cfg.GitHubToken == "" {
		logger.Warn("GITHUB_ENRICH without GITHUB_TOKEN; unauthenticated requests are heavily rate limited")
	}
	logger.Info("github enrichment enabled", zap.Bool("cache", cache != nil))

	return projects.NewGitHubSource(src, client.Repositories, cache, logger), cleanup, nil
}
