package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidDepth is returned when the crawl depth is negative.
	// Depth 0 is valid and means only the start page is visited.
	ErrInvalidDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidLinkCap is returned when the per-page link cap is not positive.
	ErrInvalidLinkCap = errors.New("invalid max links per page: must be positive")

	// ErrInvalidSubpageBudget is returned when the subpage budget is negative.
	// A budget of 0 is valid and means only start pages are ever rendered.
	ErrInvalidSubpageBudget = errors.New("invalid max subpage crawls: must be non-negative")

	// ErrInvalidEarlyExit is returned when the early-exit threshold is not
	// positive. A threshold of zero would end every crawl before it starts.
	ErrInvalidEarlyExit = errors.New("invalid early exit email count: must be positive")

	// ErrInvalidTimeout is returned when the page or job timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxContexts is returned when the browser context bound is
	// not positive. Zero contexts would deadlock every render.
	ErrInvalidMaxContexts = errors.New("invalid max contexts: must be positive")

	// ErrInvalidWorkers is returned when the worker count is outside [1, MaxWorkers].
	ErrInvalidWorkers = errors.New("invalid worker count: must be between 1 and 16")
)
