package models

import (
	"html/template"
	"time"
)

// PostMeta is the YAML frontmatter at the top of a blog post
type PostMeta struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Date        time.Time `json:"date" yaml:"date"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags"`
	Draft       bool      `json:"draft,omitempty" yaml:"draft"`
	Slug        string    `json:"slug" yaml:"slug"`
}

// Heading is a rendered heading with its anchor id
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Post is a fully rendered blog post
type Post struct {
	PostMeta
	Source   string        `json:"-"`
	Markdown string        `json:"markdown,omitempty"`
	HTML     template.HTML `json:"html"`
	Headings []Heading     `json:"headings,omitempty"`
}

// PostSummary is the listing form of a post
type PostSummary struct {
	PostMeta
	ReadingMinutes int `json:"readingMinutes"`
}
