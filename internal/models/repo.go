package models

import "time"

// RepoStats is the subset of repository metadata refreshed from GitHub
type RepoStats struct {
	FullName    string    `json:"full_name"`
	Stars       int       `json:"stars"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Homepage    string    `json:"homepage"`
	Archived    bool      `json:"archived"`
	FetchedAt   time.Time `json:"fetched_at"`
}
