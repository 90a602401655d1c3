package textutil

import (
	"maps"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

var schemePrefix = regexp.MustCompile(`(?i)^[a-z][a-z0-9+\-.]*:`)

// IsAbsoluteURL reports whether s starts with a URI scheme such as
// "https:" or "mailto:". Router paths like "/projects" are not absolute.
func IsAbsoluteURL(s string) bool {
	return schemePrefix.MatchString(s)
}

// FormatURLWithQuery sets each key of params in the query string of u.
// Pairs whose key params does not mention are kept verbatim, including
// ones the net/url parser would reject. New pairs are appended in key
// order.
func FormatURLWithQuery(u string, params map[string]string) string {
	base, rawQuery, _ := strings.Cut(u, "?")

	var pairs []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, _, _ := strings.Cut(pair, "=")
		if _, replaced := params[unescapeQuery(rawKey)]; replaced {
			continue
		}
		pairs = append(pairs, pair)
	}
	for _, k := range slices.Sorted(maps.Keys(params)) {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}

	if len(pairs) == 0 {
		return base
	}
	return base + "?" + strings.Join(pairs, "&")
}

// unescapeQuery decodes a query component, returning s unchanged when it
// is not valid percent-encoding
func unescapeQuery(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}
