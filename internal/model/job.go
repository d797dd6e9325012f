package model

import "time"

// JobStatus represents the lifecycle state of a scrape job.
// Jobs are created externally in StatusPending, claimed by exactly one
// worker, and terminate in StatusCompleted or StatusFailed.
type JobStatus string

// Job lifecycle states as stored in the queue backend.
const (
	// StatusPending marks a job waiting to be claimed.
	StatusPending JobStatus = "pending"

	// StatusClaimed marks a job owned by one worker.
	StatusClaimed JobStatus = "claimed"

	// StatusCompleted marks a job that finished and wrote a payload.
	StatusCompleted JobStatus = "completed"

	// StatusFailed marks a job whose crawl failed outright.
	// A payload is still written; the status records the failure for operators.
	StatusFailed JobStatus = "failed"
)

// Job represents one scrape job claimed from the queue.
// The engine only reads a job and reports its outcome; ownership of the
// lifecycle belongs to the queue backend.
type Job struct {
	// ID is the job's unique identifier assigned by the queue.
	ID int64 `json:"id"`

	// URL is the target start URL to crawl.
	URL string `json:"url"`

	// Status is the current lifecycle state.
	Status JobStatus `json:"status"`

	// CreatedAt is when the job was enqueued.
	CreatedAt time.Time `json:"created_at"`

	// ClaimedAt is when a worker claimed the job.
	// Zero if the job has never been claimed.
	ClaimedAt time.Time `json:"claimed_at,omitempty"`
}
