// Package main provides the entry point for the contactscan CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/contactscan/contactscan/internal/config"
	"github.com/contactscan/contactscan/internal/crawl"
	"github.com/contactscan/contactscan/internal/extract"
	"github.com/contactscan/contactscan/internal/filter"
	"github.com/contactscan/contactscan/internal/log"
	"github.com/contactscan/contactscan/internal/render"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for contactscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contactscan",
		Short: "Contact extraction engine for websites",
		Long: `contactscan renders websites in a headless browser and extracts contact
information: email addresses and social-profile URLs. It follows a bounded
set of same-origin links (contact and about pages first) and stops as soon
as enough contacts are found.

Run a one-shot scan with "scan", seed the shared job queue with "enqueue",
or drain the queue continuously with "worker".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewEnqueueCmd())
	cmd.AddCommand(NewWorkerCmd())
	cmd.AddCommand(NewJobCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the structured logger shared by all commands.
// Secrets that leak into page content or configuration must never reach
// the log output, so every command logs through the sanitizing handler.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// buildConfig assembles the engine configuration for a command: defaults,
// then environment overrides, then explicit flags on top.
//
// Design decision: flags win over environment variables because a flag is
// the most deliberate form of input; only flags the user actually set are
// applied, so an untouched flag never shadows an environment override.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.LoadEnv()
	cfg.Verbose = cfg.Verbose || getVerboseFlag(cmd)

	flags := cmd.Flags()
	var err error

	if flags.Changed("depth") {
		if cfg.MaxDepth, err = flags.GetInt("depth"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-links") {
		if cfg.MaxLinksPerPage, err = flags.GetInt("max-links"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-subpages") {
		if cfg.MaxSubpageCrawls, err = flags.GetInt("max-subpages"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("early-exit") {
		if cfg.EarlyExitEmails, err = flags.GetInt("early-exit"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("page-timeout") {
		if cfg.PageTimeout, err = flags.GetDuration("page-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("job-timeout") {
		if cfg.JobTimeout, err = flags.GetDuration("job-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("headless") {
		if cfg.Headless, err = flags.GetBool("headless"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("config") {
		if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
			return nil, err
		}
	}

	if err := loadFilterFile(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// loadFilterFile resolves and loads the .contactscan filter extension file.
// If the user explicitly specified a path, a missing file is an error.
// If no path was specified, a missing file means no extensions.
func loadFilterFile(cfg *config.Config) error {
	explicit := cfg.ConfigFilePath != ""
	path := config.FindConfigFile(cfg.ConfigFilePath)

	if path == "" {
		if explicit {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return nil
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.Filters = cf
	return nil
}

// newClassifier builds the junk-email classifier, extended with any
// domains and local parts from the filter file.
func newClassifier(cfg *config.Config) *filter.Classifier {
	var opts []filter.Option
	if cfg.Filters != nil {
		if len(cfg.Filters.Filters.BlockedDomains) > 0 {
			opts = append(opts, filter.WithExtraDomains(cfg.Filters.Filters.BlockedDomains))
		}
		if len(cfg.Filters.Filters.BlockedLocalParts) > 0 {
			opts = append(opts, filter.WithExtraLocalParts(cfg.Filters.Filters.BlockedLocalParts))
		}
	}
	return filter.NewClassifier(opts...)
}

// newRenderer builds the headless browser renderer from the configuration.
func newRenderer(cfg *config.Config, logger *slog.Logger) *render.Renderer {
	return render.NewRenderer(
		render.WithHeadless(cfg.Headless),
		render.WithMaxContexts(cfg.MaxContexts),
		render.WithLogger(logger),
	)
}

// newCrawlController builds the crawl controller with all tuning knobs
// from the configuration.
func newCrawlController(renderer crawl.Renderer, cfg *config.Config, logger *slog.Logger) *crawl.Controller {
	return crawl.NewController(
		renderer,
		extract.NewExtractor(),
		newClassifier(cfg),
		crawl.WithMaxDepth(cfg.MaxDepth),
		crawl.WithMaxLinksPerPage(cfg.MaxLinksPerPage),
		crawl.WithMaxSubpageCrawls(cfg.MaxSubpageCrawls),
		crawl.WithEarlyExitEmailCount(cfg.EarlyExitEmails),
		crawl.WithMaxStoredVisitedURLs(cfg.MaxStoredURLs),
		crawl.WithPageTimeout(cfg.PageTimeout),
		crawl.WithControllerLogger(logger),
	)
}
