package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/contactscan/contactscan/internal/extract"
	"github.com/contactscan/contactscan/internal/filter"
	"github.com/contactscan/contactscan/internal/model"
)

// Renderer is the page-rendering collaborator. It loads a URL in a
// browser context, executes scripts, and returns a DOM/text snapshot.
// Network-level retries, resource blocking, and per-request concurrency
// are the renderer's concern; the controller treats each call as a
// blocking, cancelable operation bounded by the context deadline.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (*model.PageSnapshot, error)
}

// Default crawl limits. All of them are configurable via options; these
// values match the engine's environment defaults.
const (
	// DefaultMaxDepth limits link-following from the start page.
	// 0 means only the start page, 1 one level of links, and so on.
	DefaultMaxDepth = 2

	// DefaultMaxLinksPerPage caps how many same-origin links one page
	// may contribute as crawl candidates.
	DefaultMaxLinksPerPage = 50

	// DefaultMaxSubpageCrawls caps total subpage visits per job,
	// excluding the start page.
	DefaultMaxSubpageCrawls = 20

	// DefaultEarlyExitEmailCount is the accepted-email count at which
	// the crawl stops early: enough signal has accumulated.
	DefaultEarlyExitEmailCount = 3

	// DefaultMaxStoredVisitedURLs caps the visited-URL list retained in
	// the job outcome.
	DefaultMaxStoredVisitedURLs = 200

	// DefaultPageTimeout bounds a single page navigation.
	DefaultPageTimeout = 10 * time.Second
)

// Controller is the per-job crawl state machine. It drives rendering of
// the start URL, runs extraction and classification, and decides whether
// to continue following links. One Controller is safe for concurrent use:
// all per-job state lives inside Run.
type Controller struct {
	renderer   Renderer
	extractor  *extract.Extractor
	classifier *filter.Classifier
	selector   *Selector
	logger     *slog.Logger

	maxDepth         int
	maxLinksPerPage  int
	maxSubpageCrawls int
	earlyExitEmails  int
	maxStoredVisited int
	pageTimeout      time.Duration
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMaxDepth sets the maximum crawl depth.
func WithMaxDepth(depth int) ControllerOption {
	return func(c *Controller) {
		c.maxDepth = depth
	}
}

// WithMaxLinksPerPage sets the per-page link cap.
func WithMaxLinksPerPage(n int) ControllerOption {
	return func(c *Controller) {
		c.maxLinksPerPage = n
	}
}

// WithMaxSubpageCrawls sets the per-job subpage visit budget.
func WithMaxSubpageCrawls(n int) ControllerOption {
	return func(c *Controller) {
		c.maxSubpageCrawls = n
	}
}

// WithEarlyExitEmailCount sets the accepted-email early-exit threshold.
func WithEarlyExitEmailCount(n int) ControllerOption {
	return func(c *Controller) {
		c.earlyExitEmails = n
	}
}

// WithMaxStoredVisitedURLs sets the visited-URL retention cap.
func WithMaxStoredVisitedURLs(n int) ControllerOption {
	return func(c *Controller) {
		c.maxStoredVisited = n
	}
}

// WithPageTimeout sets the per-page navigation timeout.
func WithPageTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.pageTimeout = d
	}
}

// WithControllerLogger sets a custom logger.
func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a Controller with the given collaborators.
func NewController(renderer Renderer, extractor *extract.Extractor, classifier *filter.Classifier, opts ...ControllerOption) *Controller {
	c := &Controller{
		renderer:         renderer,
		extractor:        extractor,
		classifier:       classifier,
		selector:         NewSelector(),
		maxDepth:         DefaultMaxDepth,
		maxLinksPerPage:  DefaultMaxLinksPerPage,
		maxSubpageCrawls: DefaultMaxSubpageCrawls,
		earlyExitEmails:  DefaultEarlyExitEmailCount,
		maxStoredVisited: DefaultMaxStoredVisitedURLs,
		pageTimeout:      DefaultPageTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// queueItem is one pending page visit.
type queueItem struct {
	url   string
	depth int
}

// Run crawls one job starting at startURL and returns its outcome.
//
// The crawl is strictly sequential: each page is rendered, extracted, and
// classified before the controller decides whether to follow links.
// Decision order on each page: early exit once the accepted-email count
// reaches the threshold, stop at the depth bound, stop following links
// from any page that itself yielded an accepted email, otherwise enqueue
// the selector's candidates at depth+1 within the subpage budget.
//
// A render failure on the start page fails the whole job; failures on
// later pages are recorded as page errors and the crawl continues. Run
// always returns an outcome, never panics across a job boundary.
func (c *Controller) Run(ctx context.Context, startURL string) *model.JobOutcome {
	agg := NewAggregator(c.maxStoredVisited)

	start, err := url.Parse(startURL)
	if err != nil || start.Host == "" {
		c.logger.Warn("invalid start URL", "url", startURL)
		agg.Record(model.ScrapeResult{URL: startURL, Err: "invalid start URL: " + startURL})
		return agg.Outcome()
	}
	if start.Scheme != "http" && start.Scheme != "https" {
		start.Scheme = "https"
	}

	origin := &url.URL{Scheme: start.Scheme, Host: start.Host}
	visited := make(map[string]bool)
	queue := []queueItem{{url: Canonicalize(start.String()), depth: 0}}
	subpageVisits := 0

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			c.logger.Warn("crawl cancelled", "start_url", startURL, "reason", ctx.Err())
			if len(visited) == 0 {
				agg.Record(model.ScrapeResult{URL: queue[0].url, Err: ctx.Err().Error()})
			}
			return agg.Outcome()
		default:
		}

		item := queue[0]
		queue = queue[1:]

		// Visited keys are recorded at visit time so a canonical URL is
		// rendered at most once per job even when enqueued twice.
		if visited[item.url] {
			continue
		}
		if item.depth > 0 {
			if subpageVisits >= c.maxSubpageCrawls {
				continue
			}
			subpageVisits++
		}
		visited[item.url] = true

		renderCtx, cancel := context.WithTimeout(ctx, c.pageTimeout)
		snap, err := c.renderer.Render(renderCtx, item.url)
		cancel()
		if err != nil {
			c.logger.Warn("render failed", "url", item.url, "error", err)
			agg.Record(model.ScrapeResult{URL: item.url, Err: err.Error()})
			if item.depth == 0 {
				// Nothing to extract and nothing to follow: the whole
				// job fails when the start page cannot be rendered.
				return agg.Outcome()
			}
			continue
		}

		pageURL := Canonicalize(snap.URL)
		if pageURL != item.url {
			if visited[pageURL] {
				continue
			}
			visited[pageURL] = true
		}
		if item.depth == 0 {
			// Re-anchor the origin on the post-redirect URL so scheme or
			// www upgrades don't orphan every discovered link.
			if u, err := url.Parse(snap.URL); err == nil && u.Host != "" {
				origin = &url.URL{Scheme: u.Scheme, Host: u.Host}
			}
		}

		candidates := c.extractor.Extract(snap)
		accepted := c.classifier.Filter(candidates.Emails)
		links := c.pageLinks(origin, pageURL, candidates.Links)

		c.logger.Debug("page extracted",
			"url", pageURL,
			"depth", item.depth,
			"emails", len(accepted),
			"links", len(links),
		)

		agg.Record(model.ScrapeResult{
			URL:        pageURL,
			Emails:     accepted,
			SocialURLs: candidates.SocialURLs,
			Links:      links,
		})

		if agg.EmailCount() >= c.earlyExitEmails {
			c.logger.Debug("early exit", "url", pageURL, "emails", agg.EmailCount())
			return agg.Outcome()
		}
		if item.depth >= c.maxDepth {
			continue
		}
		// A page that yielded emails is a hit; don't keep digging past it.
		if len(accepted) > 0 {
			continue
		}

		next := c.selector.SelectNext(origin, pageURL, links, visited, c.maxSubpageCrawls-subpageVisits)
		for _, link := range next {
			queue = append(queue, queueItem{url: link, depth: item.depth + 1})
		}
	}

	return agg.Outcome()
}

// pageLinks filters, canonicalizes, and caps one page's discovered links.
// Only same-origin links survive; the current page and duplicates are
// dropped; at most maxLinksPerPage are kept, in discovery order.
func (c *Controller) pageLinks(origin *url.URL, currentURL string, raw []string) []string {
	links := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, link := range raw {
		if !SameOrigin(origin, link) {
			continue
		}
		canonical := Canonicalize(link)
		if canonical == currentURL || seen[canonical] {
			continue
		}
		seen[canonical] = true
		links = append(links, canonical)
		if len(links) >= c.maxLinksPerPage {
			break
		}
	}
	return links
}
