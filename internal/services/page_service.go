package services

import (
	"math/rand/v2"
	"slices"
	"time"

	"folio.dev/internal/models"
)

// PageService supplies the fixed content of the speaking and joke pages
type PageService struct {
	talks []models.Talk
	jokes []models.Joke
	pick  func(n int) int
}

// NewPageService creates a new PageService over the built-in content
func NewPageService() *PageService {
	return &PageService{
		talks: defaultTalks,
		jokes: defaultJokes,
		pick:  rand.IntN,
	}
}

// Talks returns every talk, most recent first
func (s *PageService) Talks() []models.Talk {
	out := slices.Clone(s.talks)
	slices.SortStableFunc(out, func(a, b models.Talk) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// Joke returns the joke at index n, wrapping around the list
func (s *PageService) Joke(n int) models.Joke {
	if n < 0 {
		n = -n
	}
	return s.jokes[n%len(s.jokes)]
}

// RandomJoke returns a joke and its index, for permalinks
func (s *PageService) RandomJoke() (models.Joke, int) {
	n := s.pick(len(s.jokes))
	return s.jokes[n], n
}

// JokeCount returns how many jokes exist
func (s *PageService) JokeCount() int {
	return len(s.jokes)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var defaultTalks = []models.Talk{
	{
		Title:    "Your Build Is a Database",
		Event:    "GopherCon EU",
		Date:     date(2025, time.June, 17),
		URL:      "https://gophercon.eu/talks/build-database",
		VideoURL: models.String("https://www.youtube.com/watch?v=build-db"),
	},
	{
		Title: "Snapshots, Not Migrations",
		Event: "PGConf NYC",
		Date:  date(2024, time.October, 2),
		URL:   "https://pgconf.nyc/talks/snapshots",
	},
	{
		Title: "Writing a Language Server in a Weekend",
		Event: "Local Meetup",
		Date:  date(2023, time.March, 9),
		URL:   "https://meetup.example.com/lsp-weekend",
	},
}

var defaultJokes = []models.Joke{
	{Setup: "Why do programmers prefer dark mode?", Punchline: "Because light attracts bugs."},
	{Setup: "How many programmers does it take to change a light bulb?", Punchline: "None, that's a hardware problem."},
	{Setup: "Why did the developer go broke?", Punchline: "Because they used up all their cache."},
	{Setup: "What's a Go programmer's favourite exercise?", Punchline: "Goroutines, they keep you busy without blocking."},
}
