// Package store persists GitHub repository lookups in SQLite so restarts
// and static builds do not spend API quota on data that is still fresh.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"folio.dev/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS repo_stats (
	full_name   TEXT PRIMARY KEY,
	stars       INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	language    TEXT NOT NULL DEFAULT '',
	homepage    TEXT NOT NULL DEFAULT '',
	archived    INTEGER NOT NULL DEFAULT 0,
	fetched_at  INTEGER NOT NULL
)`

// RepoCache is a SQLite-backed cache of RepoStats with a fixed TTL
type RepoCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenRepoCache opens (creating if needed) the cache database at path.
// Use ":memory:" for a throwaway cache.
func OpenRepoCache(path string, ttl time.Duration) (*RepoCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repo cache: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create repo_stats table: %w", err)
	}

	return &RepoCache{db: db, ttl: ttl, now: time.Now}, nil
}

// Lookup returns the cached stats for fullName, or nil when missing or expired
func (c *RepoCache) Lookup(ctx context.Context, fullName string) (*models.RepoStats, error) {
	var (
		stats     models.RepoStats
		archived  int
		fetchedAt int64
	)
	err := c.db.QueryRowContext(ctx, `
		SELECT full_name, stars, description, language, homepage, archived, fetched_at
		FROM repo_stats WHERE full_name = ?
	`, fullName).Scan(&stats.FullName, &stats.Stars, &stats.Description, &stats.Language,
		&stats.Homepage, &archived, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read repo %s: %w", fullName, err)
	}

	stats.Archived = archived != 0
	stats.FetchedAt = time.Unix(fetchedAt, 0)
	if c.ttl > 0 && c.now().Sub(stats.FetchedAt) > c.ttl {
		return nil, nil
	}
	return &stats, nil
}

// Store inserts or replaces stats
func (c *RepoCache) Store(ctx context.Context, stats models.RepoStats) error {
	archived := 0
	if stats.Archived {
		archived = 1
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO repo_stats (full_name, stars, description, language, homepage, archived, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(full_name) DO UPDATE SET
			stars = excluded.stars,
			description = excluded.description,
			language = excluded.language,
			homepage = excluded.homepage,
			archived = excluded.archived,
			fetched_at = excluded.fetched_at
	`, stats.FullName, stats.Stars, stats.Description, stats.Language, stats.Homepage,
		archived, stats.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to store repo %s: %w", stats.FullName, err)
	}
	return nil
}

// Purge removes expired rows and returns how many were deleted
func (c *RepoCache) Purge(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).Unix()
	result, err := c.db.ExecContext(ctx, `DELETE FROM repo_stats WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge repo cache: %w", err)
	}
	return result.RowsAffected()
}

// Close closes the database
func (c *RepoCache) Close() error {
	return c.db.Close()
}
