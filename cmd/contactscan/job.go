package main

import (
	"fmt"
	"strconv"

	"github.com/contactscan/contactscan/internal/queue"
	"github.com/spf13/cobra"
)

// NewJobCmd creates the job command.
func NewJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job <id>",
		Short: "Show a queued job and its stored result",
		Long: `Job looks up a single job by ID and prints its lifecycle state and,
once a worker has finished it, the stored result payload.

Examples:
  contactscan job 42`,
		Args: cobra.ExactArgs(1),
		RunE: runJobCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Queue database directory (default: XDG data directory)")

	return cmd
}

// runJobCmd executes the job command.
func runJobCmd(cmd *cobra.Command, args []string) error {
	jobID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid job ID %q: %w", args[0], err)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	q, err := queue.Open(cfg.DBDir, queue.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open queue: %w", err)
	}
	defer q.Close()

	job, payload, err := q.GetJob(cmd.Context(), jobID)
	if err != nil {
		return fmt.Errorf("failed to look up job %d: %w", jobID, err)
	}
	if job == nil {
		return fmt.Errorf("job %d not found", jobID)
	}

	fmt.Printf("Job %d\n", job.ID)
	fmt.Printf("  URL:     %s\n", job.URL)
	fmt.Printf("  Status:  %s\n", job.Status)
	fmt.Printf("  Created: %s\n", job.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if !job.ClaimedAt.IsZero() {
		fmt.Printf("  Claimed: %s\n", job.ClaimedAt.Format("2006-01-02 15:04:05 MST"))
	}

	if payload == nil {
		return nil
	}

	fmt.Printf("\nResult\n")
	fmt.Printf("  Status:  %s\n", payload.Status)
	fmt.Printf("  Message: %s\n", payload.Message)
	if len(payload.Emails) > 0 {
		fmt.Printf("  Emails:\n")
		for _, email := range payload.Emails {
			fmt.Printf("    [+] %s\n", email)
		}
	}
	if len(payload.FacebookURLs) > 0 {
		fmt.Printf("  Social Profiles:\n")
		for _, u := range payload.FacebookURLs {
			fmt.Printf("    [+] %s\n", u)
		}
	}

	return nil
}
