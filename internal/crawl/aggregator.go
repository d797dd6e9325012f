package crawl

import "github.com/contactscan/contactscan/internal/model"

// Aggregator collects per-page results across one job's crawl into one
// consolidated record. Each job owns exactly one Aggregator; it is a plain
// value returned through the controller, never ambient state, so crawls
// running in parallel workers cannot contaminate each other.
type Aggregator struct {
	// maxVisited caps the retained visited-URL list.
	maxVisited int

	emails      []string
	emailSeen   map[string]bool
	socials     []string
	socialSeen  map[string]bool
	visitedURLs []string
	errors      []model.PageError
}

// NewAggregator creates an Aggregator retaining at most maxVisited URLs.
func NewAggregator(maxVisited int) *Aggregator {
	return &Aggregator{
		maxVisited: maxVisited,
		emailSeen:  make(map[string]bool),
		socialSeen: make(map[string]bool),
	}
}

// Record merges one page's result. Emails and social URLs are unioned
// under case-sensitive string identity (classifier output is already
// normalized per string); visited URLs append in visit order up to the
// cap; an error entry is appended as-is, never deduplicated.
func (a *Aggregator) Record(res model.ScrapeResult) {
	for _, email := range res.Emails {
		if !a.emailSeen[email] {
			a.emailSeen[email] = true
			a.emails = append(a.emails, email)
		}
	}
	for _, social := range res.SocialURLs {
		if !a.socialSeen[social] {
			a.socialSeen[social] = true
			a.socials = append(a.socials, social)
		}
	}
	if res.URL != "" && len(a.visitedURLs) < a.maxVisited {
		a.visitedURLs = append(a.visitedURLs, res.URL)
	}
	if res.Err != "" {
		a.errors = append(a.errors, model.PageError{URL: res.URL, Message: res.Err})
	}
}

// EmailCount returns the number of distinct accepted emails so far.
// The controller consults this for the early-exit decision.
func (a *Aggregator) EmailCount() int {
	return len(a.emails)
}

// ErrorCount returns the number of page errors recorded so far.
func (a *Aggregator) ErrorCount() int {
	return len(a.errors)
}

// Outcome finalizes the JobOutcome. Success is true when no page errors
// occurred, or when at least one email was accepted despite some pages
// failing.
func (a *Aggregator) Outcome() *model.JobOutcome {
	return &model.JobOutcome{
		Success:     len(a.errors) == 0 || len(a.emails) > 0,
		Emails:      append([]string(nil), a.emails...),
		SocialURLs:  append([]string(nil), a.socials...),
		VisitedURLs: append([]string(nil), a.visitedURLs...),
		Errors:      append([]model.PageError(nil), a.errors...),
	}
}
