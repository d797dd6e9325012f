package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewScanCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	tests := []struct {
		name     string
		defValue string
	}{
		{"depth", "2"},
		{"max-links", "50"},
		{"max-subpages", "20"},
		{"early-exit", "3"},
		{"page-timeout", "10s"},
		{"headless", "true"},
		{"json", "false"},
		{"markdown", "false"},
		{"output", ""},
		{"config", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected flag %q", tt.name)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("flag %q default = %q, want %q", tt.name, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestBuildConfigFlagOverrides(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	if err := cmd.Flags().Set("depth", "1"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("page-timeout", "5s"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("early-exit", "2"); err != nil {
		t.Fatal(err)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("buildConfig() errored: %v", err)
	}

	if cfg.MaxDepth != 1 {
		t.Errorf("MaxDepth = %d, want 1", cfg.MaxDepth)
	}
	if cfg.PageTimeout != 5*time.Second {
		t.Errorf("PageTimeout = %v, want 5s", cfg.PageTimeout)
	}
	if cfg.EarlyExitEmails != 2 {
		t.Errorf("EarlyExitEmails = %d, want 2", cfg.EarlyExitEmails)
	}
	// Untouched flags keep their defaults.
	if cfg.MaxLinksPerPage != 50 {
		t.Errorf("MaxLinksPerPage = %d, want 50", cfg.MaxLinksPerPage)
	}
}

func TestBuildConfigRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	if err := cmd.Flags().Set("depth", "-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := buildConfig(cmd); err == nil {
		t.Error("buildConfig() = nil error for negative depth")
	}
}

func TestBuildConfigExplicitMissingFilterFile(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if err := cmd.Flags().Set("config", missing); err != nil {
		t.Fatal(err)
	}

	_, err := buildConfig(cmd)
	if err == nil {
		t.Fatal("buildConfig() = nil error for missing explicit filter file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want mention of missing file", err)
	}
}

func TestRunScanCmdMutuallyExclusiveFormats(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	if err := cmd.Flags().Set("json", "true"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("markdown", "true"); err != nil {
		t.Fatal(err)
	}

	err := runScanCmd(cmd, []string{"https://acme.test"})
	if err == nil {
		t.Fatal("runScanCmd() = nil error for --json with --markdown")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error = %v, want mutual exclusion message", err)
	}
}
