package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/contactscan/contactscan/internal/config"
	"github.com/contactscan/contactscan/internal/report"
	"github.com/contactscan/contactscan/internal/worker"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <url> [url...]",
		Short: "Scan one or more websites for contact information",
		Long: `Scan renders each URL in a headless browser and extracts contact
information: email addresses (from visible text, mailto links, JSON-LD,
meta tags, data attributes, and obfuscated spellings) and social-profile
URLs. Contact and about pages are probed first, and the crawl stops as
soon as enough emails are found.

Examples:
  # Scan a single site
  contactscan scan https://acme.test

  # Scan several sites sequentially
  contactscan scan https://acme.test https://northwind.dev

  # Output a JSON report
  contactscan scan --json https://acme.test

  # Write a Markdown report to a file
  contactscan scan --markdown -o report.md https://acme.test

Filter file (.contactscan) example:
  filters:
    blockedDomains:
      - competitor.example
    blockedLocalParts:
      - webmaster`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScanCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link-following depth from the start page")
	cmd.Flags().Int("max-links", config.DefaultMaxLinksPerPage,
		"Maximum links collected per page")
	cmd.Flags().Int("max-subpages", config.DefaultMaxSubpageCrawls,
		"Maximum subpages visited per site")
	cmd.Flags().Int("early-exit", config.DefaultEarlyExitEmails,
		"Stop crawling once this many emails are found")
	cmd.Flags().DurationP("page-timeout", "t", config.DefaultPageTimeout,
		"Navigation timeout per page")
	cmd.Flags().Duration("job-timeout", config.DefaultJobTimeout,
		"Wall-clock timeout per site")
	cmd.Flags().Bool("headless", true,
		"Run the browser headless (disable to watch the crawl)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Filter file path (default: .contactscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	jsonReport, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownReport, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonReport && markdownReport {
		return errors.New("--json and --markdown are mutually exclusive")
	}
	reportFile, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := newRenderer(cfg, logger)
	defer renderer.Close()

	controller := newCrawlController(renderer, cfg, logger)

	for _, target := range args {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Scanning %s...\n", target)
		start := time.Now()

		jobCtx, cancel := context.WithTimeout(ctx, cfg.JobTimeout)
		outcome := controller.Run(jobCtx, target)
		cancel()

		elapsed := time.Since(start)
		fmt.Printf("Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

		scanReport := report.NewScanReport(target, outcome, worker.Normalize(outcome), elapsed)
		if err := outputReport(scanReport, jsonReport, markdownReport, reportFile); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}
	}

	return nil
}

// outputReport writes the scan report in the requested format.
func outputReport(scanReport *report.ScanReport, jsonReport, markdownReport bool, reportFile string) error {
	var output io.Writer = os.Stdout
	if reportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(reportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain harvested contact data; keep them owner-readable only.
		f, err := os.OpenFile(reportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case jsonReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case markdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(scanReport)
	return err
}
