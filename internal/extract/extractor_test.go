package extract

import (
	"slices"
	"testing"

	"github.com/contactscan/contactscan/internal/model"
)

// snapshot builds a PageSnapshot the way the renderer would, with visible
// text derived from the HTML.
func snapshot(pageURL, rawHTML string, hrefs ...string) *model.PageSnapshot {
	return &model.PageSnapshot{
		URL:         pageURL,
		HTML:        rawHTML,
		Text:        VisibleText(rawHTML),
		AnchorHrefs: hrefs,
	}
}

// TestExtractorSources tests each extraction source independently.
func TestExtractorSources(t *testing.T) {
	t.Parallel()

	e := NewExtractor()

	t.Run("mailto anchors strip query and fragment", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="mailto:sales@openstreetcafe.org?subject=Hi">Mail us</a>
			<a href="mailto:booking@openstreetcafe.org#top">Book</a>
		</body></html>`
		got := e.Extract(snapshot("https://openstreetcafe.org/", html))

		wantEmail(t, got, "sales@openstreetcafe.org")
		wantEmail(t, got, "booking@openstreetcafe.org")
		for _, email := range got.Emails {
			if email == "sales@openstreetcafe.org?subject=Hi" {
				t.Error("query suffix must be stripped from mailto targets")
			}
		}
	})

	t.Run("json-ld structured data", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script type="application/ld+json">
		{
			"@type": "Organization",
			"contactPoint": {"@type": "ContactPoint", "email": "info@openstreetcafe.org"},
			"department": [{"Email": "kitchen@openstreetcafe.org"}],
			"description": "Write to press@openstreetcafe.org for media."
		}
		</script></head><body></body></html>`
		got := e.Extract(snapshot("https://openstreetcafe.org/", html))

		wantEmail(t, got, "info@openstreetcafe.org")
		wantEmail(t, got, "kitchen@openstreetcafe.org")
		wantEmail(t, got, "press@openstreetcafe.org")
	})

	t.Run("malformed json-ld is skipped silently", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<script type="application/ld+json">{not json at all</script>
			<script type="application/ld+json">{"email": "ok@openstreetcafe.org"}</script>
		</head><body></body></html>`
		got := e.Extract(snapshot("https://openstreetcafe.org/", html))

		wantEmail(t, got, "ok@openstreetcafe.org")
	})

	t.Run("meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="og:email" content="hello@openstreetcafe.org">
			<meta name="twitter:email" content="social@openstreetcafe.org">
			<meta name="description" content="nothing here">
		</head><body></body></html>`
		got := e.Extract(snapshot("https://openstreetcafe.org/", html))

		wantEmail(t, got, "hello@openstreetcafe.org")
		wantEmail(t, got, "social@openstreetcafe.org")
	})

	t.Run("data attributes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div data-email="owner@openstreetcafe.org"></div>
			<span data-contact-email="front@openstreetcafe.org"></span>
			<p data-address="reach us: desk@openstreetcafe.org"></p>
			<p data-e-mail="alt@openstreetcafe.org"></p>
		</body></html>`
		got := e.Extract(snapshot("https://openstreetcafe.org/", html))

		for _, want := range []string{
			"owner@openstreetcafe.org",
			"front@openstreetcafe.org",
			"desk@openstreetcafe.org",
			"alt@openstreetcafe.org",
		} {
			wantEmail(t, got, want)
		}
	})

	t.Run("free text email pattern", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Reach our team at team@openstreetcafe.org any time.</p></body></html>`
		got := e.Extract(snapshot("https://openstreetcafe.org/", html))

		wantEmail(t, got, "team@openstreetcafe.org")
	})

	t.Run("script contents are not visible text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>var x = "hidden@openstreetcafe.org";</script></body></html>`
		got := e.Extract(snapshot("https://openstreetcafe.org/", html))

		if slices.Contains(got.Emails, "hidden@openstreetcafe.org") {
			t.Error("emails inside script bodies must not come from the free-text pass")
		}
	})

	t.Run("social urls in text and hrefs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Find us on https://www.facebook.com/openstreetcafe today</p></body></html>`
		got := e.Extract(snapshot("https://openstreetcafe.org/", html,
			"https://fb.com/openstreetcafe", "/menu"))

		if len(got.SocialURLs) != 2 {
			t.Fatalf("expected 2 social URLs, got %d: %v", len(got.SocialURLs), got.SocialURLs)
		}
		if slices.Contains(got.Links, "https://fb.com/openstreetcafe") {
			t.Error("social hrefs must not leak into crawl links")
		}
		if !slices.Contains(got.Links, "https://openstreetcafe.org/menu") {
			t.Errorf("expected resolved /menu link, got %v", got.Links)
		}
	})
}

// TestDeobfuscate tests the obfuscated email round-trip.
func TestDeobfuscate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"bracket form", "jane [at] example [dot] org", "jane@example.org"},
		{"paren form", "jane(at)example(dot)org", "jane@example.org"},
		{"mixed case markers", "jane [AT] example [DOT] org", "jane@example.org"},
		{"no spacing", "jane[at]example[dot]org", "jane@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Deobfuscate(tt.text)
			if got != tt.want {
				t.Errorf("Deobfuscate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// TestExtractorObfuscatedInText verifies the free-text pass catches and
// normalizes obfuscated addresses.
func TestExtractorObfuscatedInText(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	html := `<html><body><p>Email jane [at] example [dot] org for bookings.</p></body></html>`
	got := e.Extract(snapshot("https://example.org/", html))

	wantEmail(t, got, "jane@example.org")
}

// TestExtractorLinks tests anchor href handling.
func TestExtractorLinks(t *testing.T) {
	t.Parallel()

	e := NewExtractor()

	t.Run("resolves relative hrefs", func(t *testing.T) {
		t.Parallel()

		got := e.Extract(snapshot("https://openstreetcafe.org/a/b", "<html></html>",
			"../contact", "/about", "https://other.example/x"))

		for _, want := range []string{
			"https://openstreetcafe.org/contact",
			"https://openstreetcafe.org/about",
			"https://other.example/x",
		} {
			if !slices.Contains(got.Links, want) {
				t.Errorf("missing resolved link %q in %v", want, got.Links)
			}
		}
	})

	t.Run("skips fragments and javascript", func(t *testing.T) {
		t.Parallel()

		got := e.Extract(snapshot("https://openstreetcafe.org/", "<html></html>",
			"#top", "javascript:void(0)", ""))

		if len(got.Links) != 0 {
			t.Errorf("expected no links, got %v", got.Links)
		}
	})

	t.Run("mailto hrefs become email candidates", func(t *testing.T) {
		t.Parallel()

		got := e.Extract(snapshot("https://openstreetcafe.org/", "<html></html>",
			"mailto:via-href@openstreetcafe.org?body=hello"))

		wantEmail(t, got, "via-href@openstreetcafe.org")
		if len(got.Links) != 0 {
			t.Errorf("mailto hrefs must not become crawl links, got %v", got.Links)
		}
	})
}

// TestExtractorSetUnion verifies exact duplicates collapse but case
// variants survive extraction.
func TestExtractorSetUnion(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	html := `<html><body>
		<a href="mailto:Team@openstreetcafe.org">mail</a>
		<p>team@openstreetcafe.org and team@openstreetcafe.org again</p>
	</body></html>`
	got := e.Extract(snapshot("https://openstreetcafe.org/", html))

	var lower, upper int
	for _, email := range got.Emails {
		switch email {
		case "team@openstreetcafe.org":
			lower++
		case "Team@openstreetcafe.org":
			upper++
		}
	}
	if lower != 1 {
		t.Errorf("exact duplicates must collapse: got %d copies of lowercase form", lower)
	}
	if upper != 1 {
		t.Errorf("case variants must survive extraction: got %d copies of uppercase form", upper)
	}
}

// TestPlatformTitle tests display-name derivation.
func TestPlatformTitle(t *testing.T) {
	t.Parallel()

	if got := (Platform{Key: "facebook", DisplayName: "Facebook"}).Title(); got != "Facebook" {
		t.Errorf("Title() = %q, want Facebook", got)
	}
	if got := (Platform{Key: "pinboard"}).Title(); got != "Pinboard" {
		t.Errorf("Title() = %q, want derived Pinboard", got)
	}
	for _, p := range DefaultPlatforms() {
		if got := p.Title(); got != "Facebook" {
			t.Errorf("DefaultPlatforms Title() = %q, want Facebook", got)
		}
	}
}

// wantEmail asserts the candidate set contains an email.
func wantEmail(t *testing.T, got Candidates, want string) {
	t.Helper()
	if !slices.Contains(got.Emails, want) {
		t.Errorf("missing email %q in %v", want, got.Emails)
	}
}
