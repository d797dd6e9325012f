package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/semaphore"

	"github.com/contactscan/contactscan/internal/model"
)

// DefaultMaxContexts bounds how many browser tabs may render concurrently.
const DefaultMaxContexts = 10

// defaultUserAgents is the rotation pool. One entry per major desktop
// platform; a new tab picks the next one round-robin.
var defaultUserAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
}

// blockedResourceTypes are failed at the fetch-interception stage.
// Documents, scripts, XHR, and websockets pass through untouched.
var blockedResourceTypes = map[network.ResourceType]bool{
	network.ResourceTypeImage:      true,
	network.ResourceTypeMedia:      true,
	network.ResourceTypeFont:       true,
	network.ResourceTypeStylesheet: true,
	network.ResourceTypeOther:      true,
}

const (
	bodyTextScript   = `document.body ? document.body.innerText : ""`
	anchorHrefScript = `Array.from(document.querySelectorAll("a[href]")).map(a => a.getAttribute("href") || "")`
)

// Renderer renders pages in a shared headless Chrome instance.
type Renderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	sem         *semaphore.Weighted
	logger      *slog.Logger
	userAgents  []string
	uaNext      atomic.Uint64
}

// Option configures a Renderer.
type Option func(*settings)

type settings struct {
	headless    bool
	maxContexts int
	userAgents  []string
	logger      *slog.Logger
}

// WithHeadless toggles headless mode. Enabled by default; disabling it is
// useful when debugging a page that renders differently under automation.
func WithHeadless(headless bool) Option {
	return func(s *settings) {
		s.headless = headless
	}
}

// WithMaxContexts sets the concurrent tab bound.
func WithMaxContexts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxContexts = n
		}
	}
}

// WithUserAgents replaces the user-agent rotation pool.
func WithUserAgents(agents []string) Option {
	return func(s *settings) {
		if len(agents) > 0 {
			s.userAgents = agents
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// NewRenderer starts the exec allocator that owns the Chrome process.
// Close must be called to shut the browser down.
func NewRenderer(opts ...Option) *Renderer {
	s := &settings{
		headless:    true,
		maxContexts: DefaultMaxContexts,
		userAgents:  defaultUserAgents,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	return &Renderer{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		sem:         semaphore.NewWeighted(int64(s.maxContexts)),
		logger:      s.logger,
		userAgents:  s.userAgents,
	}
}

// Close shuts down the browser process. In-flight renders fail.
func (r *Renderer) Close() {
	r.allocCancel()
}

// nextUserAgent returns pool entries round-robin. Safe for concurrent use.
func (r *Renderer) nextUserAgent() string {
	n := r.uaNext.Add(1) - 1
	return r.userAgents[n%uint64(len(r.userAgents))]
}

// Render opens a tab, navigates to pageURL, waits for DOMContentLoaded,
// and captures the rendered document. The caller's context bounds the
// whole operation including the wait for a free tab slot.
func (r *Renderer) Render(ctx context.Context, pageURL string) (*model.PageSnapshot, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire browser context: %w", err)
	}
	defer r.sem.Release(1)

	tabCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()

	// The tab context descends from the allocator, not from the caller;
	// propagate the caller's cancellation by hand.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	r.interceptRequests(tabCtx)

	var (
		rawHTML  string
		bodyText string
		finalURL string
		hrefs    []string
	)
	ua := r.nextUserAgent()

	err := chromedp.Run(tabCtx,
		fetch.Enable().WithPatterns([]*fetch.RequestPattern{
			{URLPattern: "*", RequestStage: fetch.RequestStageRequest},
		}),
		emulation.SetUserAgentOverride(ua),
		navigateAndWaitReady(pageURL),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &rawHTML, chromedp.ByQuery),
		chromedp.Evaluate(bodyTextScript, &bodyText),
		chromedp.Evaluate(anchorHrefScript, &hrefs),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("render %s: %w", pageURL, err)
	}

	r.logger.Debug("page rendered",
		"url", pageURL,
		"final_url", finalURL,
		"html_size", len(rawHTML),
		"anchors", len(hrefs),
	)

	snap := &model.PageSnapshot{
		URL:         finalURL,
		HTML:        rawHTML,
		Text:        bodyText,
		AnchorHrefs: hrefs,
	}
	snap.TruncateHTML()
	return snap, nil
}

// interceptRequests resolves paused fetch requests: blocked resource types
// fail with ERR_BLOCKED_BY_CLIENT, everything else continues unchanged.
// Each decision runs on its own goroutine because the CDP event loop must
// not block on the round-trip back to the browser.
func (r *Renderer) interceptRequests(tabCtx context.Context) {
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		paused, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}
		go func() {
			c := chromedp.FromContext(tabCtx)
			ectx := cdp.WithExecutor(tabCtx, c.Target)
			if blockedResourceTypes[paused.ResourceType] {
				if err := fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(ectx); err != nil {
					r.logger.Debug("failed to block request", "url", paused.Request.URL, "error", err)
				}
				return
			}
			if err := fetch.ContinueRequest(paused.RequestID).Do(ectx); err != nil {
				r.logger.Debug("failed to continue request", "url", paused.Request.URL, "error", err)
			}
		}()
	})
}

// navigateAndWaitReady navigates and returns once DOMContentLoaded fires.
// Waiting for the full load event would stall on pages with slow trackers;
// the DOM is all extraction needs.
func navigateAndWaitReady(pageURL string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		ready := make(chan struct{}, 1)
		lctx, cancel := context.WithCancel(ctx)
		defer cancel()
		chromedp.ListenTarget(lctx, func(ev interface{}) {
			if _, ok := ev.(*page.EventDomContentEventFired); ok {
				select {
				case ready <- struct{}{}:
				default:
				}
			}
		})

		_, _, errText, err := page.Navigate(pageURL).Do(ctx)
		if err != nil {
			return err
		}
		if errText != "" {
			return errors.New("navigation failed: " + errText)
		}

		select {
		case <-ready:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
