package textutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":             "hello-world",
		"  --Leading/Trailing--  ":  "leading-trailing",
		"Go 1.22 & Range-over-Func": "go-1-22-range-over-func",
		"already-slugged":           "already-slugged",
		"!!!":                       "",
		"Ünïcode Çharacters":        "n-code-haracters",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, IsAbsoluteURL("https://example.com"))
	assert.True(t, IsAbsoluteURL("HTTP://EXAMPLE.COM"))
	assert.True(t, IsAbsoluteURL("mailto:me@example.com"))
	assert.True(t, IsAbsoluteURL("git+ssh://host/repo"))
	assert.False(t, IsAbsoluteURL("/projects"))
	assert.False(t, IsAbsoluteURL("projects"))
	assert.False(t, IsAbsoluteURL("//cdn.example.com/x.js"))
	assert.False(t, IsAbsoluteURL("1http://bad"))
	assert.False(t, IsAbsoluteURL(""))
}

func TestFormatURLWithQuery(t *testing.T) {
	t.Run("overwrites and keeps other keys", func(t *testing.T) {
		got := FormatURLWithQuery("/search?q=a&x=1", map[string]string{"q": "b"})

		base, raw, ok := strings.Cut(got, "?")
		require.True(t, ok)
		assert.Equal(t, "/search", base)

		q, err := url.ParseQuery(raw)
		require.NoError(t, err)
		assert.Equal(t, "b", q.Get("q"))
		assert.Equal(t, "1", q.Get("x"))
		assert.Len(t, q, 2)
	})

	t.Run("adds query to bare path", func(t *testing.T) {
		assert.Equal(t, "/blog?page=2", FormatURLWithQuery("/blog", map[string]string{"page": "2"}))
	})

	t.Run("no params keeps existing query", func(t *testing.T) {
		assert.Equal(t, "/blog?page=3", FormatURLWithQuery("/blog?page=3", nil))
	})

	t.Run("splits on first question mark only", func(t *testing.T) {
		got := FormatURLWithQuery("/a?next=/b?c", map[string]string{"z": "1"})
		q, err := url.ParseQuery(strings.SplitN(got, "?", 2)[1])
		require.NoError(t, err)
		assert.Equal(t, "/b?c", q.Get("next"))
		assert.Equal(t, "1", q.Get("z"))
	})
}

func TestFormatURLWithQuery_KeepsUnparseablePairs(t *testing.T) {
	cases := map[string]string{
		"/s?a=1;b=2&x=1": "/s?a=1;b=2&x=1&q=z",
		"/s?a=%zz&x=1":   "/s?a=%zz&x=1&q=z",
		"/s?q=old&b%zz":  "/s?b%zz&q=z",
		"/s?q%3D=1&q=2":  "/s?q%3D=1&q=z",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatURLWithQuery(in, map[string]string{"q": "z"}), in)
	}

	t.Run("encoded key is replaced", func(t *testing.T) {
		assert.Equal(t, "/s?x=1&a+b=c", FormatURLWithQuery("/s?a%20b=old&x=1", map[string]string{"a b": "c"}))
	})

	t.Run("empty query collapses", func(t *testing.T) {
		assert.Equal(t, "/s", FormatURLWithQuery("/s?", nil))
	})
}

func TestHeadingIDs(t *testing.T) {
	ids := NewHeadingIDs()

	assert.Equal(t, "intro", string(ids.Generate([]byte("Intro"), 0)))
	assert.Equal(t, "intro-1", string(ids.Generate([]byte("Intro"), 0)))
	assert.Equal(t, "intro-2", string(ids.Generate([]byte("intro!"), 0)))
	assert.Equal(t, "section", string(ids.Generate([]byte("???"), 0)))

	ids.Put([]byte("setup"))
	assert.Equal(t, "setup-1", string(ids.Generate([]byte("Setup"), 0)))
}
