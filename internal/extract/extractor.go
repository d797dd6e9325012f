package extract

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/contactscan/contactscan/internal/model"
)

// emailPattern matches email-shaped substrings. Deliberately permissive:
// false positives are cheap because every candidate passes through the
// junk classifier afterwards.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// obfuscatedPattern matches human-written obfuscated addresses such as
// "name [at] domain [dot] com" and "name(at)domain(dot)com".
var obfuscatedPattern = regexp.MustCompile(`(?i)[a-zA-Z0-9._%+\-]+\s*[\[\(]?\s*at\s*[\]\)]?\s*[a-zA-Z0-9.\-]+\s*[\[\(]?\s*dot\s*[\]\)]?\s*[a-zA-Z]{2,}`)

// De-obfuscation replacements applied to a matched obfuscated span.
var (
	obfuscatedAt  = regexp.MustCompile(`(?i)\s*[\[\(]?\s*at\s*[\]\)]?\s*`)
	obfuscatedDot = regexp.MustCompile(`(?i)\s*[\[\(]?\s*dot\s*[\]\)]?\s*`)
)

// dataAttributes are the data-* attributes scanned for email-shaped values.
var dataAttributes = []string{
	"data-email",
	"data-contact-email",
	"data-address",
	"data-e-mail",
}

// Candidates holds the raw extraction output for one page.
// Emails and SocialURLs are duplicate-free but otherwise unordered across
// sources; Links preserves discovery order.
type Candidates struct {
	// Emails contains candidate addresses as found, before classification.
	Emails []string

	// SocialURLs contains detected social-profile URLs.
	SocialURLs []string

	// Links contains absolute resolved anchor targets, in document order.
	// Same-origin filtering and canonicalization are the crawl layer's job.
	Links []string
}

// Extractor pulls contact candidates out of page snapshots.
// It is stateless and safe for concurrent use.
type Extractor struct {
	platforms []Platform
}

// NewExtractor creates an Extractor detecting the default social platforms.
func NewExtractor() *Extractor {
	return &Extractor{platforms: DefaultPlatforms()}
}

// Extract runs all six sources against one snapshot and merges their output.
func (e *Extractor) Extract(snap *model.PageSnapshot) Candidates {
	emails := newStringSet()
	socials := newStringSet()
	links := newStringSet()

	base, baseErr := url.Parse(snap.URL)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err == nil {
		e.extractMailto(doc, emails)
		e.extractStructuredData(doc, emails)
		e.extractMetaTags(doc, emails)
		e.extractDataAttributes(doc, emails)
	}

	// Free body text: email pattern, de-obfuscation, and social URLs.
	text := snap.Text
	if text == "" {
		text = VisibleText(snap.HTML)
	}
	for _, m := range emailPattern.FindAllString(text, -1) {
		emails.add(strings.TrimSpace(m))
	}
	for _, m := range obfuscatedPattern.FindAllString(text, -1) {
		if deob := Deobfuscate(m); deob != "" {
			emails.add(deob)
		}
	}
	for _, p := range e.platforms {
		for _, m := range p.FindURLs(text) {
			socials.add(strings.TrimSpace(m))
		}
	}

	// Anchor hrefs: resolve against the final page URL, collect social
	// targets, and keep the rest as crawl candidates.
	for _, href := range snap.AnchorHrefs {
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			continue
		}
		if strings.HasPrefix(href, "mailto:") {
			if email := mailtoAddress(href); email != "" {
				emails.add(email)
			}
			continue
		}
		if baseErr != nil {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref).String()
		if e.matchesPlatform(abs) {
			socials.add(abs)
			continue
		}
		links.add(abs)
	}

	return Candidates{
		Emails:     emails.values(),
		SocialURLs: socials.values(),
		Links:      links.values(),
	}
}

// extractMailto collects addresses from mailto-scheme anchors, stripping
// any query or fragment suffix.
func (e *Extractor) extractMailto(doc *goquery.Document, emails *stringSet) {
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if email := mailtoAddress(href); email != "" {
			emails.add(email)
		}
	})
}

// mailtoAddress extracts the address from a mailto href.
func mailtoAddress(href string) string {
	addr := strings.TrimPrefix(href, "mailto:")
	addr, _, _ = strings.Cut(addr, "?")
	addr, _, _ = strings.Cut(addr, "#")
	return strings.TrimSpace(addr)
}

// extractStructuredData walks JSON-LD script payloads for email values.
// Malformed payloads are skipped silently.
func (e *Extractor) extractStructuredData(doc *goquery.Document, emails *stringSet) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		walkStructuredData(data, emails)
	})
}

// walkStructuredData recursively collects email-shaped strings from a
// decoded JSON value. Any string value is matched against the email
// pattern; values under a key containing "email" (case-insensitive) are
// matched as well even when the surrounding shape is unusual.
func walkStructuredData(node any, emails *stringSet) {
	switch v := node.(type) {
	case string:
		if strings.Contains(v, "@") && strings.Contains(v, ".") {
			for _, m := range emailPattern.FindAllString(v, -1) {
				emails.add(m)
			}
		}
	case map[string]any:
		for key, value := range v {
			if strings.Contains(strings.ToLower(key), "email") {
				if s, ok := value.(string); ok {
					for _, m := range emailPattern.FindAllString(s, -1) {
						emails.add(m)
					}
				}
			}
			walkStructuredData(value, emails)
		}
	case []any:
		for _, item := range v {
			walkStructuredData(item, emails)
		}
	}
}

// extractMetaTags scans content attributes of meta tags whose name or
// property mentions "email" (og:email, twitter:email, ...).
func (e *Extractor) extractMetaTags(doc *goquery.Document, emails *stringSet) {
	doc.Find(`meta[name*="email"], meta[property*="email"]`).Each(func(_ int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		for _, m := range emailPattern.FindAllString(content, -1) {
			emails.add(m)
		}
	})
}

// extractDataAttributes scans the named data-* attribute values for
// email-shaped substrings.
func (e *Extractor) extractDataAttributes(doc *goquery.Document, emails *stringSet) {
	for _, attr := range dataAttributes {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			value, _ := s.Attr(attr)
			for _, m := range emailPattern.FindAllString(value, -1) {
				emails.add(m)
			}
		})
	}
}

// matchesPlatform reports whether a URL belongs to a known social platform.
func (e *Extractor) matchesPlatform(rawURL string) bool {
	for _, p := range e.platforms {
		if p.MatchURL(rawURL) {
			return true
		}
	}
	return false
}

// Deobfuscate converts an obfuscated span like "x [at] y [dot] com" to
// "x@y.com". Returns empty if the result is not email-shaped.
func Deobfuscate(span string) string {
	s := obfuscatedAt.ReplaceAllString(span, "@")
	s = obfuscatedDot.ReplaceAllString(s, ".")
	s = strings.TrimSpace(s)
	if !emailPattern.MatchString(s) {
		return ""
	}
	return s
}

// stringSet is an insertion-ordered string set.
// Extraction sources are merged via set union: exact duplicate strings
// collapse, near-duplicates (case variants) survive until classification.
type stringSet struct {
	seen  map[string]struct{}
	order []string
}

func newStringSet() *stringSet {
	return &stringSet{seen: make(map[string]struct{})}
}

func (s *stringSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *stringSet) values() []string {
	return s.order
}
