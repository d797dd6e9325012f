package crawl

import (
	"net/url"
	"strings"
)

// Canonicalize normalizes a URL for deduplication within one job.
//
// The rule is fixed: strip the fragment, keep the query, lowercase scheme
// and host, and treat an empty path as "/". Differently-fragmented or
// root-slash variants of the same page collapse to one visited key;
// queries are preserved because they can select different content.
func Canonicalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// SameOrigin reports whether a URL shares scheme and host with the origin.
// Ports are not modeled; the host string is compared case-insensitively.
func SameOrigin(origin *url.URL, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, origin.Scheme) && strings.EqualFold(u.Host, origin.Host)
}
