package handlers

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"folio.dev/internal/models"
	"folio.dev/internal/textutil"
)

// schemes an external link may use; anything else is neutralised
var linkSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

var hrefStrip = strings.NewReplacer("\t", "", "\r", "", "\n", "")

// componentFuncs exposes the presentational components to templates
func componentFuncs() template.FuncMap {
	return template.FuncMap{
		"link":      Link,
		"heading":   Heading,
		"alert":     Alert,
		"codeblock": CodeBlock,
		"withQuery": withQuery,
		"projectLink": func(p models.Project) string {
			return p.SourceURL()
		},
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
	}
}

// Link renders an anchor. Absolute URLs open in a new tab; router paths
// stay in the current one. An href with a scheme outside linkSchemes, or
// one that does not parse, becomes "#".
func Link(href, label string) template.HTML {
	href, external := cleanHref(href)
	attrs := ""
	if external {
		attrs = ` target="_blank" rel="noopener noreferrer"`
	}
	return template.HTML(fmt.Sprintf(`<a href="%s" class="link"%s>%s</a>`,
		template.HTMLEscapeString(href), attrs, template.HTMLEscapeString(label)))
}

// cleanHref strips what browsers ignore inside a URL (surrounding
// whitespace, tabs and newlines) and classifies the result
func cleanHref(href string) (string, bool) {
	href = strings.TrimSpace(hrefStrip.Replace(href))
	u, err := url.Parse(href)
	if err != nil {
		return "#", false
	}
	if !textutil.IsAbsoluteURL(href) {
		return href, false
	}
	if !linkSchemes[u.Scheme] {
		return "#", false
	}
	return href, true
}

// Heading renders an h1-h6 with a self-link anchor derived from text
func Heading(level int, text string) template.HTML {
	level = clamp(level, 1, 6)
	id := textutil.Slugify(text)
	return template.HTML(fmt.Sprintf(
		`<h%d id="%s" class="heading"><a href="#%s" class="heading-anchor" aria-hidden="true">#</a>%s</h%d>`,
		level, id, id, template.HTMLEscapeString(text), level))
}

// Alert renders a callout box. kind is info, success, warning or error.
func Alert(kind, message string) template.HTML {
	role := "status"
	switch kind {
	case "warning", "error":
		role = "alert"
	case "info", "success":
	default:
		kind = "info"
	}
	return template.HTML(fmt.Sprintf(`<div class="alert alert-%s" role="%s">%s</div>`,
		kind, role, template.HTMLEscapeString(message)))
}

// CodeBlock renders preformatted code tagged with its language
func CodeBlock(lang, code string) template.HTML {
	class := ""
	if l := textutil.Slugify(lang); l != "" {
		class = fmt.Sprintf(` class="language-%s"`, l)
	}
	return template.HTML(fmt.Sprintf(`<pre class="code-block"><code%s>%s</code></pre>`,
		class, template.HTMLEscapeString(code)))
}

func withQuery(u, key string, value any) string {
	return textutil.FormatURLWithQuery(u, map[string]string{key: fmt.Sprint(value)})
}
