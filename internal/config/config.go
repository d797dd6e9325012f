package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Default configuration values. The crawl limits mirror what the
// downstream pipeline was tuned against; changing them changes how many
// pages a job may touch and when it gives up.
const (
	// DefaultMaxDepth limits link-following from the start page.
	// Depth 0 means only the start page. Two levels reaches the common
	// home -> about -> team shape without runaway crawling.
	DefaultMaxDepth = 2

	// DefaultMaxLinksPerPage caps how many same-origin links one page may
	// contribute as crawl candidates.
	DefaultMaxLinksPerPage = 50

	// DefaultMaxSubpageCrawls caps total subpage visits per job, excluding
	// the start page. It bounds job wall-clock time on link-heavy sites.
	DefaultMaxSubpageCrawls = 20

	// DefaultEarlyExitEmails is the accepted-email count at which a crawl
	// stops early.
	DefaultEarlyExitEmails = 3

	// DefaultMaxStoredURLs caps the visited-URL list retained per job.
	DefaultMaxStoredURLs = 200

	// DefaultPageTimeout bounds one page navigation. Pages slower than
	// this rarely hold contact data worth the wait.
	DefaultPageTimeout = 10 * time.Second

	// DefaultJobTimeout bounds one job's whole crawl.
	DefaultJobTimeout = 3 * time.Minute

	// DefaultMaxContexts bounds concurrent browser tabs across all workers.
	DefaultMaxContexts = 10

	// DefaultWorkers is the number of concurrent queue workers.
	DefaultWorkers = 4

	// MaxWorkers caps the worker count regardless of configuration.
	MaxWorkers = 16

	// DefaultStaleClaimAge is how old a claim must be before the sweep
	// returns it to pending.
	DefaultStaleClaimAge = 10 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "contactscan"

	// EnvPrefix is the prefix for all environment variables.
	EnvPrefix = "CONTACTSCAN_"
)

// Config holds all configuration options for the engine.
// It is populated from the environment and passed through the application
// via dependency injection rather than global state.
//
// Design decision: a single flat struct instead of nested sub-structs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// MaxDepth is the maximum link-following depth per job.
	MaxDepth int

	// MaxLinksPerPage caps crawl candidates contributed by one page.
	MaxLinksPerPage int

	// MaxSubpageCrawls caps subpage visits per job.
	MaxSubpageCrawls int

	// EarlyExitEmails is the accepted-email early-exit threshold.
	EarlyExitEmails int

	// MaxStoredURLs caps the visited-URL list in the result payload.
	MaxStoredURLs int

	// PageTimeout bounds a single page navigation.
	PageTimeout time.Duration

	// JobTimeout bounds one job end to end.
	JobTimeout time.Duration

	// MaxContexts bounds concurrent browser tabs.
	MaxContexts int

	// Workers is the number of queue workers, clamped to MaxWorkers.
	Workers int

	// StaleClaimAge is the age at which claimed jobs are released back
	// to pending by the periodic sweep.
	StaleClaimAge time.Duration

	// Headless controls whether the browser runs headless.
	Headless bool

	// Verbose enables debug-level log output.
	Verbose bool

	// DBDir is the directory holding the SQLite queue database.
	// Defaults to the XDG data directory.
	DBDir string

	// ConfigFilePath is the path to the optional YAML filter-extension
	// file. If empty, the tool searches for .contactscan in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Filters holds filter extensions loaded from the config file.
	Filters *File
}

// NewConfig creates a new Config with default values.
//
// Design decision: a constructor instead of relying on zero values
// because most defaults are non-zero. It also documents the defaults.
func NewConfig() *Config {
	return &Config{
		MaxDepth:         DefaultMaxDepth,
		MaxLinksPerPage:  DefaultMaxLinksPerPage,
		MaxSubpageCrawls: DefaultMaxSubpageCrawls,
		EarlyExitEmails:  DefaultEarlyExitEmails,
		MaxStoredURLs:    DefaultMaxStoredURLs,
		PageTimeout:      DefaultPageTimeout,
		JobTimeout:       DefaultJobTimeout,
		MaxContexts:      DefaultMaxContexts,
		Workers:          DefaultWorkers,
		StaleClaimAge:    DefaultStaleClaimAge,
		Headless:         true,
		DBDir:            XDGDataDir(),
	}
}

// LoadEnv populates the config from CONTACTSCAN_* environment variables,
// loading a .env file first if one exists. Unset variables keep their
// defaults; malformed values fall back to defaults rather than failing,
// matching how the worker is deployed (a bad override should not take
// the whole fleet down).
func (c *Config) LoadEnv() {
	_ = godotenv.Load()

	c.MaxDepth = intEnv("MAX_DEPTH", c.MaxDepth)
	c.MaxLinksPerPage = intEnv("MAX_LINKS_PER_PAGE", c.MaxLinksPerPage)
	c.MaxSubpageCrawls = intEnv("MAX_SUBPAGE_CRAWLS", c.MaxSubpageCrawls)
	c.EarlyExitEmails = intEnv("EARLY_EXIT_EMAILS", c.EarlyExitEmails)
	c.MaxStoredURLs = intEnv("MAX_STORED_URLS", c.MaxStoredURLs)
	c.PageTimeout = durationEnv("PAGE_TIMEOUT_MS", c.PageTimeout)
	c.JobTimeout = durationEnv("JOB_TIMEOUT_MS", c.JobTimeout)
	c.MaxContexts = intEnv("MAX_CONTEXTS", c.MaxContexts)
	c.Workers = intEnv("WORKERS", c.Workers)
	c.StaleClaimAge = durationEnv("STALE_CLAIM_AGE_MS", c.StaleClaimAge)
	c.Headless = boolEnv("HEADLESS", c.Headless)
	c.Verbose = boolEnv("VERBOSE", c.Verbose)
	c.DBDir = stringEnv("DB_DIR", c.DBDir)
	c.ConfigFilePath = stringEnv("CONFIG", c.ConfigFilePath)

	if c.Workers > MaxWorkers {
		c.Workers = MaxWorkers
	}
}

// XDGDataDir returns the XDG data directory for the engine.
// On Linux: ~/.local/share/contactscan
// On macOS: ~/Library/Application Support/contactscan
// On Windows: %LOCALAPPDATA%\contactscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the engine.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: validate once after loading rather than at each point
// of use, to fail fast with a clear message. The first error found is
// returned because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return ErrInvalidDepth
	}
	if c.MaxLinksPerPage <= 0 {
		return ErrInvalidLinkCap
	}
	if c.MaxSubpageCrawls < 0 {
		return ErrInvalidSubpageBudget
	}
	if c.EarlyExitEmails <= 0 {
		return ErrInvalidEarlyExit
	}
	if c.PageTimeout <= 0 || c.JobTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxContexts <= 0 {
		return ErrInvalidMaxContexts
	}
	if c.Workers <= 0 || c.Workers > MaxWorkers {
		return ErrInvalidWorkers
	}
	return nil
}

// stringEnv reads a prefixed environment variable, trimmed.
func stringEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if value == "" {
		return fallback
	}
	return value
}

// intEnv reads a prefixed integer environment variable.
func intEnv(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// boolEnv reads a prefixed boolean environment variable.
func boolEnv(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// durationEnv reads a prefixed millisecond environment variable.
func durationEnv(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if value == "" {
		return fallback
	}
	ms, err := strconv.Atoi(value)
	if err != nil || ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
