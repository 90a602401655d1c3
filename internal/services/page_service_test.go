package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageService_TalksNewestFirst(t *testing.T) {
	talks := NewPageService().Talks()

	for i := 1; i < len(talks); i++ {
		assert.False(t, talks[i].Date.After(talks[i-1].Date), "talk %d out of order", i)
	}
}

func TestPageService_Jokes(t *testing.T) {
	s := NewPageService()
	s.pick = func(n int) int { return n - 1 }

	joke, n := s.RandomJoke()
	assert.Equal(t, s.JokeCount()-1, n)
	assert.Equal(t, s.Joke(n), joke)

	assert.Equal(t, s.Joke(0), s.Joke(s.JokeCount()))
	assert.Equal(t, s.Joke(1), s.Joke(-1))
}
