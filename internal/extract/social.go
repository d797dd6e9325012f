package extract

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Platform describes one social platform detected during extraction.
//
// Design decision: We model platforms as data (a pattern table) rather
// than per-platform code because detection is uniform: find URLs under a
// small set of known hostnames. Adding a platform is one table entry.
type Platform struct {
	// Key is the platform's machine name ("facebook").
	Key string

	// DisplayName is the human-readable name shown in reports.
	// If empty, Title() derives one from Key.
	DisplayName string

	// urlPattern matches full profile/page URLs in free text.
	urlPattern *regexp.Regexp

	// hostPattern matches the platform's hostnames inside resolved hrefs.
	hostPattern *regexp.Regexp
}

// DefaultPlatforms returns the built-in platform table.
// The downstream payload contract carries Facebook URLs, so Facebook and
// its short domain are the platforms detected by default.
func DefaultPlatforms() []Platform {
	return []Platform{
		{
			Key:         "facebook",
			urlPattern:  regexp.MustCompile(`(?i)https?://(?:www\.)?(?:facebook\.com|fb\.com)[^\s"'<>]+`),
			hostPattern: regexp.MustCompile(`(?i)(?:facebook\.com|fb\.com)`),
		},
	}
}

// FindURLs returns all profile URLs for this platform found in text.
func (p Platform) FindURLs(text string) []string {
	return p.urlPattern.FindAllString(text, -1)
}

// MatchURL reports whether a resolved URL points at this platform.
func (p Platform) MatchURL(rawURL string) bool {
	return p.hostPattern.MatchString(rawURL)
}

// Title returns the platform's display name.
func (p Platform) Title() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return cases.Title(language.English).String(p.Key)
}
