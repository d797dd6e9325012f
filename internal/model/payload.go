package model

// Payload status values understood by the downstream pipeline.
// The exact strings matter: the next stage dispatches on them.
const (
	// PayloadStatusCompleted marks a job that yielded at least one email.
	PayloadStatusCompleted = "auto_completed"

	// PayloadStatusNeedSearch marks a job that needs the fallback
	// search-based stage, either because no emails were found or because
	// the crawl failed.
	PayloadStatusNeedSearch = "auto_need_google_search"
)

// Payload messages understood by the downstream pipeline.
const (
	// MessageCompleted is written when the job succeeded with emails.
	MessageCompleted = "new py"

	// MessageNoEmails is written on a clean run with zero emails.
	MessageNoEmails = "No emails found -py"

	// MessageScrapeFailed is the generic failure message used when a
	// failed crawl recorded no page errors.
	MessageScrapeFailed = "Scrape failed"
)

// ScrapeTypeBrowserRendering identifies this engine's stage in the payload.
const ScrapeTypeBrowserRendering = "browser_rendering"

// ResultPayload is the normalized record written back to the queue when a
// job completes. Field names and the JSON shape are fixed by the queue
// contract; do not rename.
type ResultPayload struct {
	// Status is one of PayloadStatusCompleted or PayloadStatusNeedSearch.
	Status string `json:"status"`

	// Emails contains the deduplicated accepted emails, empty on failure.
	Emails []string `json:"emails"`

	// FacebookURLs contains the deduplicated social-profile URLs.
	FacebookURLs []string `json:"facebook_urls"`

	// Message describes the outcome: MessageCompleted, MessageNoEmails,
	// or the first page error text on failure.
	Message string `json:"message"`

	// NeedsBrowserRendering is always false in payloads written by this
	// engine: the job no longer needs this stage.
	NeedsBrowserRendering bool `json:"needs_browser_rendering"`

	// ScrapeType identifies which stage produced the payload.
	ScrapeType string `json:"scrape_type"`
}
