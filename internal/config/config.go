package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	ServerAddr    string
	DataPath      string
	ContentPath   string
	ProjectsFile  string
	GitHubToken   string
	GitHubEnrich  bool
	StarCachePath string
	StarCacheTTL  time.Duration
	ShowDrafts    bool
	WatchContent  bool
	Site          *Site
}

// Site holds the metadata shown in page headers and footers
type Site struct {
	Title       string    `yaml:"title"`
	Author      string    `yaml:"author"`
	Description string    `yaml:"description"`
	BaseURL     string    `yaml:"base_url"`
	Nav         []NavLink `yaml:"nav"`
	Social      []NavLink `yaml:"social"`
}

// NavLink is a labelled link in the header or footer
type NavLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Load reads .env (if present), the environment and site.yaml
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		DataPath:      getEnv("DATA_PATH", "data"),
		ProjectsFile:  os.Getenv("PROJECTS_FILE"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		StarCachePath: os.Getenv("STAR_CACHE_PATH"),
	}
	cfg.ContentPath = getEnv("CONTENT_PATH", filepath.Join(cfg.DataPath, "posts"))

	var err error
	if cfg.GitHubEnrich, err = getBool("GITHUB_ENRICH", false); err != nil {
		return nil, err
	}
	if cfg.ShowDrafts, err = getBool("SHOW_DRAFTS", false); err != nil {
		return nil, err
	}
	if cfg.WatchContent, err = getBool("WATCH_CONTENT", false); err != nil {
		return nil, err
	}
	if cfg.StarCacheTTL, err = getDuration("STAR_CACHE_TTL", 6*time.Hour); err != nil {
		return nil, err
	}

	if cfg.Site, err = loadSite(filepath.Join(cfg.DataPath, "site.yaml")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSite reads site.yaml, falling back to defaults when it is missing
func loadSite(path string) (*Site, error) {
	site := DefaultSite()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load site.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, site); err != nil {
		return nil, fmt.Errorf("failed to parse site.yaml: %w", err)
	}
	return site, nil
}

// DefaultSite returns the metadata used when no site.yaml exists
func DefaultSite() *Site {
	return &Site{
		Title:       "folio",
		Author:      "folio",
		Description: "Projects, talks and writing.",
		Nav: []NavLink{
			{Label: "Home", Href: "/"},
			{Label: "Projects", Href: "/projects"},
			{Label: "Blog", Href: "/blog"},
			{Label: "Speaking", Href: "/speaking"},
			{Label: "Joke", Href: "/joke"},
		},
		Social: []NavLink{
			{Label: "GitHub", Href: "https://github.com/folio-dev"},
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
