package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()

	if c.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", c.MaxDepth)
	}
	if c.MaxLinksPerPage != 50 {
		t.Errorf("MaxLinksPerPage = %d, want 50", c.MaxLinksPerPage)
	}
	if c.MaxSubpageCrawls != 20 {
		t.Errorf("MaxSubpageCrawls = %d, want 20", c.MaxSubpageCrawls)
	}
	if c.EarlyExitEmails != 3 {
		t.Errorf("EarlyExitEmails = %d, want 3", c.EarlyExitEmails)
	}
	if c.MaxStoredURLs != 200 {
		t.Errorf("MaxStoredURLs = %d, want 200", c.MaxStoredURLs)
	}
	if c.PageTimeout != 10*time.Second {
		t.Errorf("PageTimeout = %v, want 10s", c.PageTimeout)
	}
	if c.JobTimeout != 3*time.Minute {
		t.Errorf("JobTimeout = %v, want 3m", c.JobTimeout)
	}
	if c.MaxContexts != 10 {
		t.Errorf("MaxContexts = %d, want 10", c.MaxContexts)
	}
	if c.Workers != 4 {
		t.Errorf("Workers = %d, want 4", c.Workers)
	}
	if !c.Headless {
		t.Error("Headless = false, want true")
	}
	if c.DBDir == "" {
		t.Error("DBDir is empty, want XDG data directory")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CONTACTSCAN_MAX_DEPTH", "1")
	t.Setenv("CONTACTSCAN_PAGE_TIMEOUT_MS", "5000")
	t.Setenv("CONTACTSCAN_WORKERS", "8")
	t.Setenv("CONTACTSCAN_HEADLESS", "false")
	t.Setenv("CONTACTSCAN_DB_DIR", "/var/lib/contactscan")

	c := NewConfig()
	c.LoadEnv()

	if c.MaxDepth != 1 {
		t.Errorf("MaxDepth = %d, want 1", c.MaxDepth)
	}
	if c.PageTimeout != 5*time.Second {
		t.Errorf("PageTimeout = %v, want 5s", c.PageTimeout)
	}
	if c.Workers != 8 {
		t.Errorf("Workers = %d, want 8", c.Workers)
	}
	if c.Headless {
		t.Error("Headless = true, want false")
	}
	if c.DBDir != "/var/lib/contactscan" {
		t.Errorf("DBDir = %q, want /var/lib/contactscan", c.DBDir)
	}
}

func TestLoadEnvMalformedValuesKeepDefaults(t *testing.T) {
	t.Setenv("CONTACTSCAN_MAX_DEPTH", "not-a-number")
	t.Setenv("CONTACTSCAN_PAGE_TIMEOUT_MS", "-100")
	t.Setenv("CONTACTSCAN_HEADLESS", "maybe")

	c := NewConfig()
	c.LoadEnv()

	if c.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want default %d", c.MaxDepth, DefaultMaxDepth)
	}
	if c.PageTimeout != DefaultPageTimeout {
		t.Errorf("PageTimeout = %v, want default %v", c.PageTimeout, DefaultPageTimeout)
	}
	if !c.Headless {
		t.Error("Headless = false, want default true")
	}
}

func TestLoadEnvClampsWorkers(t *testing.T) {
	t.Setenv("CONTACTSCAN_WORKERS", "64")

	c := NewConfig()
	c.LoadEnv()

	if c.Workers != MaxWorkers {
		t.Errorf("Workers = %d, want clamp to %d", c.Workers, MaxWorkers)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, ErrInvalidDepth},
		{"zero link cap", func(c *Config) { c.MaxLinksPerPage = 0 }, ErrInvalidLinkCap},
		{"negative subpage budget", func(c *Config) { c.MaxSubpageCrawls = -1 }, ErrInvalidSubpageBudget},
		{"zero early exit", func(c *Config) { c.EarlyExitEmails = 0 }, ErrInvalidEarlyExit},
		{"zero page timeout", func(c *Config) { c.PageTimeout = 0 }, ErrInvalidTimeout},
		{"zero job timeout", func(c *Config) { c.JobTimeout = 0 }, ErrInvalidTimeout},
		{"zero contexts", func(c *Config) { c.MaxContexts = 0 }, ErrInvalidMaxContexts},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"too many workers", func(c *Config) { c.Workers = MaxWorkers + 1 }, ErrInvalidWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewConfig()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("depth zero is valid", func(t *testing.T) {
		t.Parallel()

		c := NewConfig()
		c.MaxDepth = 0
		if err := c.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads filter extensions", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `filters:
  blockedDomains:
    - spamhost.test
  blockedLocalParts:
    - webmaster
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() errored: %v", err)
		}
		if len(cf.Filters.BlockedDomains) != 1 || cf.Filters.BlockedDomains[0] != "spamhost.test" {
			t.Errorf("BlockedDomains = %v", cf.Filters.BlockedDomains)
		}
		if len(cf.Filters.BlockedLocalParts) != 1 || cf.Filters.BlockedLocalParts[0] != "webmaster" {
			t.Errorf("BlockedLocalParts = %v", cf.Filters.BlockedLocalParts)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfigFile() = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("filters: ["), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("LoadConfigFile() = nil error for malformed YAML")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("filters: {}\n"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile(%q) = %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})
}
