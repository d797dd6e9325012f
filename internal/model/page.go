package model

// PageSnapshot is a rendered page as returned by the renderer.
// It is ephemeral: produced once per page visit, consumed by the
// extractor, then discarded.
//
// Design decision: We carry both the raw HTML and the visible text because:
//  1. HTML is needed for structural extraction (mailto, meta, data-attrs, JSON-LD)
//  2. Visible text is needed for the free-text and obfuscated email passes
//  3. Extracting text once in the renderer avoids a second DOM walk per source
type PageSnapshot struct {
	// URL is the final URL of the page after any redirects.
	URL string `json:"url"`

	// HTML is the serialized DOM after script execution.
	HTML string `json:"-"`

	// Text is the visible text content of the page body.
	Text string `json:"-"`

	// AnchorHrefs contains the raw href attribute values of all anchors,
	// unresolved and in document order.
	AnchorHrefs []string `json:"anchor_hrefs,omitempty"`
}

// MaxSnapshotHTMLSize is the maximum size of snapshot HTML in bytes.
// Larger documents are truncated to keep per-page memory bounded.
const MaxSnapshotHTMLSize = 5 * 1024 * 1024 // 5 MB

// TruncateHTML enforces MaxSnapshotHTMLSize on the snapshot HTML.
// Call this after setting HTML.
func (p *PageSnapshot) TruncateHTML() {
	if len(p.HTML) > MaxSnapshotHTMLSize {
		p.HTML = p.HTML[:MaxSnapshotHTMLSize]
	}
}
