package model

// ScrapeResult holds the contact data extracted from a single page visit.
// It is produced once per page, immutable after emission, and consumed by
// the result aggregator.
type ScrapeResult struct {
	// URL is the canonicalized URL of the visited page.
	URL string `json:"url"`

	// Emails contains the accepted (classifier-surviving) email addresses.
	Emails []string `json:"emails"`

	// SocialURLs contains detected social-profile URLs.
	SocialURLs []string `json:"social_urls"`

	// Links contains same-origin links discovered on the page, canonicalized,
	// in discovery order, capped at the configured per-page maximum.
	Links []string `json:"links"`

	// Err is the page-level error message, empty on success.
	// A failed render still yields a ScrapeResult so the aggregator can
	// record the error without aborting the job.
	Err string `json:"error,omitempty"`
}

// PageError records a page-level failure within one job.
// Errors are appended in visit order and never deduplicated.
type PageError struct {
	// URL is the page that failed.
	URL string `json:"url"`

	// Message is the error text as reported by the renderer.
	Message string `json:"error"`
}

// JobOutcome is the consolidated result of one job's crawl.
// It is returned from the crawl controller to its caller as a value,
// never held in process-wide state, so concurrent workers cannot
// contaminate each other's results.
type JobOutcome struct {
	// Success is true if no page errors occurred, or if at least one
	// email was accepted despite some pages failing.
	Success bool `json:"success"`

	// Emails contains the deduplicated accepted emails across all pages.
	Emails []string `json:"emails"`

	// SocialURLs contains the deduplicated social-profile URLs.
	SocialURLs []string `json:"social_urls"`

	// VisitedURLs lists visited pages in visit order, capped at the
	// configured maximum retained count.
	VisitedURLs []string `json:"visited_urls"`

	// Errors lists page-level failures in visit order.
	Errors []PageError `json:"errors,omitempty"`
}

// HasEmails reports whether the outcome contains at least one accepted email.
func (o *JobOutcome) HasEmails() bool {
	return len(o.Emails) > 0
}

// FirstError returns the first recorded page error message, or empty.
func (o *JobOutcome) FirstError() string {
	if len(o.Errors) == 0 {
		return ""
	}
	return o.Errors[0].Message
}
