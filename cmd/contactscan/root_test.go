package main

import (
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "contactscan" {
			t.Errorf("expected use 'contactscan', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()

		want := map[string]bool{
			"scan <url> [url...]":    false,
			"enqueue <url> [url...]": false,
			"worker":                 false,
			"job <id>":               false,
			"init":                   false,
			"version":                false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Use]; ok {
				want[sub.Use] = true
			}
		}
		for use, found := range want {
			if !found {
				t.Errorf("expected subcommand %q", use)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}
