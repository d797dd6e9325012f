package main

import (
	"fmt"

	"github.com/contactscan/contactscan/internal/queue"
	"github.com/spf13/cobra"
)

// NewEnqueueCmd creates the enqueue command.
func NewEnqueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enqueue <url> [url...]",
		Short: "Add scrape jobs to the shared queue",
		Long: `Enqueue adds one job per URL to the shared queue. Jobs wait in pending
state until a worker claims them.

Examples:
  # Enqueue a single site
  contactscan enqueue https://acme.test

  # Enqueue several sites at once
  contactscan enqueue https://acme.test https://northwind.dev`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEnqueueCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Queue database directory (default: XDG data directory)")

	return cmd
}

// runEnqueueCmd executes the enqueue command.
func runEnqueueCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	q, err := queue.Open(cfg.DBDir, queue.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open queue: %w", err)
	}
	defer q.Close()

	ctx := cmd.Context()
	for _, target := range args {
		id, err := q.Enqueue(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to enqueue %s: %w", target, err)
		}
		fmt.Printf("Enqueued job %d: %s\n", id, target)
	}

	pending, err := q.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending jobs: %w", err)
	}
	fmt.Printf("%d job(s) pending\n", pending)

	return nil
}
