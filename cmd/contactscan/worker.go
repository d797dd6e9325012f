package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contactscan/contactscan/internal/config"
	"github.com/contactscan/contactscan/internal/queue"
	"github.com/contactscan/contactscan/internal/worker"
	"github.com/spf13/cobra"
)

// NewWorkerCmd creates the worker command.
func NewWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a worker fleet draining the job queue",
		Long: `Worker starts a pool of long-lived workers that claim jobs from the
shared queue, crawl each site, and write the normalized result payload
back. It runs until interrupted; in-flight jobs finish or are abandoned
cleanly, and abandoned claims are re-queued by the stale-claim sweep.

Examples:
  # Run with the default worker count
  contactscan worker

  # Run 8 workers against a specific queue directory
  contactscan worker --workers 8 --db-dir /var/lib/contactscan`,
		Args: cobra.NoArgs,
		RunE: runWorkerCmd,
	}

	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		fmt.Sprintf("Number of concurrent workers (max %d)", config.MaxWorkers))
	cmd.Flags().Duration("job-timeout", config.DefaultJobTimeout,
		"Wall-clock timeout per job")
	cmd.Flags().DurationP("page-timeout", "t", config.DefaultPageTimeout,
		"Navigation timeout per page")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link-following depth from the start page")
	cmd.Flags().Int("max-links", config.DefaultMaxLinksPerPage,
		"Maximum links collected per page")
	cmd.Flags().Int("max-subpages", config.DefaultMaxSubpageCrawls,
		"Maximum subpages visited per site")
	cmd.Flags().Int("early-exit", config.DefaultEarlyExitEmails,
		"Stop crawling once this many emails are found")
	cmd.Flags().Bool("headless", true,
		"Run the browser headless")
	cmd.Flags().String("db-dir", "",
		"Queue database directory (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Filter file path (default: .contactscan in current or home directory)")

	return cmd
}

// runWorkerCmd executes the worker command.
func runWorkerCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q, err := queue.Open(cfg.DBDir, queue.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open queue: %w", err)
	}
	defer q.Close()

	// Recover claims abandoned by a previous crash before workers start.
	if released, err := q.ReleaseStale(ctx, cfg.StaleClaimAge); err != nil {
		logger.Warn("stale claim sweep failed", "error", err)
	} else if released > 0 {
		logger.Info("released stale claims", "count", released)
	}

	pending, err := q.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending jobs: %w", err)
	}
	fmt.Printf("Starting %d worker(s), %d job(s) pending (queue: %s)\n",
		cfg.Workers, pending, cfg.DBDir)

	renderer := newRenderer(cfg, logger)
	defer renderer.Close()

	controller := newCrawlController(renderer, cfg, logger)

	pool := worker.NewPool(q, controller,
		worker.WithWorkers(cfg.Workers),
		worker.WithJobTimeout(cfg.JobTimeout),
		worker.WithPoolLogger(logger),
	)

	// Periodic sweep so claims orphaned while we run are also recovered.
	go runStaleSweep(ctx, q, cfg.StaleClaimAge, logger)

	err = pool.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nShutdown complete")
		return nil
	}
	return err
}

// runStaleSweep periodically releases claims older than the configured age.
func runStaleSweep(ctx context.Context, q *queue.Queue, age time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(age)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			released, err := q.ReleaseStale(ctx, age)
			if err != nil {
				logger.Warn("stale claim sweep failed", "error", err)
				continue
			}
			if released > 0 {
				logger.Info("released stale claims", "count", released)
			}
		}
	}
}
