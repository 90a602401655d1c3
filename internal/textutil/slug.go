// Package textutil holds the small string and URL helpers shared by the
// page templates, the blog renderer and the API.
package textutil

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text, collapses every run of characters outside
// [a-z0-9] into a single hyphen and trims hyphens from both ends
func Slugify(text string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// HeadingIDs generates heading anchors with Slugify. It satisfies
// goldmark's parser.IDs so rendered posts and the template heading
// component agree on anchor names. Not safe for concurrent use; create
// one per document.
type HeadingIDs struct {
	used map[string]bool
}

// NewHeadingIDs creates an empty HeadingIDs
func NewHeadingIDs() *HeadingIDs {
	return &HeadingIDs{used: make(map[string]bool)}
}

// Generate returns a unique anchor for value, suffixing -1, -2, ... on collision
func (h *HeadingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := Slugify(string(value))
	if base == "" {
		base = "section"
	}
	id := base
	for i := 1; h.used[id]; i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	h.used[id] = true
	return []byte(id)
}

// Put records an id that was set explicitly in the document
func (h *HeadingIDs) Put(value []byte) {
	h.used[string(value)] = true
}
