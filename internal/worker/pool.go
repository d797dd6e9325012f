package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/contactscan/contactscan/internal/model"
)

// Default pool parameters.
const (
	// DefaultWorkers is the number of concurrent workers.
	DefaultWorkers = 4

	// MaxWorkers caps the worker count regardless of configuration.
	MaxWorkers = 16

	// DefaultJobTimeout bounds one job's whole crawl.
	DefaultJobTimeout = 3 * time.Minute

	// idleDelay is how long a worker sleeps after finding the queue empty.
	idleDelay = 500 * time.Millisecond

	// errorDelay is how long a worker backs off after a queue error.
	errorDelay = 5 * time.Second
)

// JobQueue is the queue surface the pool needs: claim one job, then
// terminate it with a payload.
type JobQueue interface {
	ClaimNext(ctx context.Context) (*model.Job, error)
	Complete(ctx context.Context, jobID int64, payload *model.ResultPayload) error
	Fail(ctx context.Context, jobID int64, payload *model.ResultPayload) error
}

// Runner executes one crawl job. Implemented by crawl.Controller.
type Runner interface {
	Run(ctx context.Context, startURL string) *model.JobOutcome
}

// Pool drives a fixed set of workers over the job queue.
type Pool struct {
	queue      JobQueue
	runner     Runner
	logger     *slog.Logger
	workers    int
	jobTimeout time.Duration
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the worker count, clamped to [1, MaxWorkers].
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n < 1 {
			n = 1
		}
		if n > MaxWorkers {
			n = MaxWorkers
		}
		p.workers = n
	}
}

// WithJobTimeout sets the per-job wall-clock bound.
func WithJobTimeout(d time.Duration) PoolOption {
	return func(p *Pool) {
		if d > 0 {
			p.jobTimeout = d
		}
	}
}

// WithPoolLogger sets a custom logger.
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) {
		p.logger = logger
	}
}

// NewPool creates a Pool over the given queue and runner.
func NewPool(queue JobQueue, runner Runner, opts ...PoolOption) *Pool {
	p := &Pool{
		queue:      queue,
		runner:     runner,
		workers:    DefaultWorkers,
		jobTimeout: DefaultJobTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Run starts the workers and blocks until the context is cancelled.
// Always returns the context's error; individual job failures are
// recorded in their payloads, never surfaced here.
func (p *Pool) Run(ctx context.Context) error {
	p.logger.Info("worker pool starting", "workers", p.workers)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		workerID := i
		g.Go(func() error {
			p.loop(ctx, workerID)
			return nil
		})
	}
	_ = g.Wait()

	p.logger.Info("worker pool stopped")
	return ctx.Err()
}

// loop claims and processes jobs until the context is cancelled.
func (p *Pool) loop(ctx context.Context, workerID int) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := p.queue.ClaimNext(ctx)
		if err != nil {
			p.logger.Warn("claim failed",
				"worker", workerID,
				"error", err,
			)
			if !sleep(ctx, errorDelay) {
				return
			}
			continue
		}
		if job == nil {
			if !sleep(ctx, idleDelay) {
				return
			}
			continue
		}

		p.process(ctx, workerID, job)
	}
}

// process runs one claimed job end to end and writes its payload back.
func (p *Pool) process(ctx context.Context, workerID int, job *model.Job) {
	p.logger.Info("job claimed",
		"worker", workerID,
		"job_id", job.ID,
		"url", job.URL,
	)

	jobCtx, cancel := context.WithTimeout(ctx, p.jobTimeout)
	outcome := p.runJob(jobCtx, workerID, job)
	cancel()

	payload := Normalize(outcome)

	var err error
	if outcome.Success {
		err = p.queue.Complete(ctx, job.ID, payload)
	} else {
		err = p.queue.Fail(ctx, job.ID, payload)
	}
	if err != nil {
		// The claim stays in place; the stale-claim sweep will retry it.
		p.logger.Error("failed to write job result",
			"worker", workerID,
			"job_id", job.ID,
			"error", err,
		)
		return
	}

	p.logger.Info("job finished",
		"worker", workerID,
		"job_id", job.ID,
		"success", outcome.Success,
		"emails", len(outcome.Emails),
		"visited", len(outcome.VisitedURLs),
	)
}

// runJob executes one crawl. A panic anywhere in the render or extract
// path is converted into a failed outcome so the claimed job is still
// terminated with a payload instead of taking down the whole pool.
func (p *Pool) runJob(ctx context.Context, workerID int, job *model.Job) (outcome *model.JobOutcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("job panicked",
				"worker", workerID,
				"job_id", job.ID,
				"url", job.URL,
				"panic", r,
			)
			outcome = &model.JobOutcome{
				Errors: []model.PageError{
					{URL: job.URL, Message: fmt.Sprintf("%v", r)},
				},
			}
		}
	}()
	return p.runner.Run(ctx, job.URL)
}

// sleep waits for d or until the context is cancelled. Reports whether
// the full duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
