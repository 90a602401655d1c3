package models

import "time"

// Talk represents an entry on the speaking page
type Talk struct {
	Title    string    `json:"title"`
	Event    string    `json:"event"`
	Date     time.Time `json:"date"`
	URL      string    `json:"url"`
	VideoURL *string   `json:"videoUrl,omitempty"`
}

// Joke is a setup/punchline pair for the joke page
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}
