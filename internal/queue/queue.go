package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/contactscan/contactscan/internal/model"
)

// Queue provides SQLite-based storage for scrape jobs and their results.
// It manages connection pooling and provides the claim/complete lifecycle
// operations workers depend on.
//
// Design decision: one database file per host rather than per worker.
// Workers on the same host share the queue through SQLite's single-writer
// model, which is exactly the serialization the claim operation needs.
type Queue struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Queue behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default queue options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the job queue database at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Queue, error) {
	dbPath := filepath.Join(dbDir, "contactscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("queue database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check queue database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create queue database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open queue database: %w", err)
	}

	// SQLite only supports one writer; funneling every statement through a
	// single connection also makes UPDATE..RETURNING claims serializable.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	q := &Queue{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := q.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return q, nil
}

// Close closes the database connection.
func (q *Queue) Close() error {
	return q.db.Close()
}

// createTables creates the queue schema if it doesn't exist.
func (q *Queue) createTables() error {
	schema := `
	-- Jobs hold one start URL each and move pending -> claimed -> completed/failed
	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		claimed_at DATETIME,
		completed_at DATETIME,
		payload TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
	CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at);
	`

	_, err := q.db.ExecContext(context.Background(), schema)
	return err
}

// Enqueue inserts a new pending job for the given start URL and returns
// its ID.
func (q *Queue) Enqueue(ctx context.Context, url string) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		`INSERT INTO jobs (url, status) VALUES (?, ?)`,
		url, string(model.StatusPending),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue job: %w", err)
	}
	return result.LastInsertId()
}

// ClaimNext atomically claims the oldest pending job and returns it.
// Returns (nil, nil) when no pending job exists; an empty queue is not
// an error condition, it just means the worker should idle.
func (q *Queue) ClaimNext(ctx context.Context) (*model.Job, error) {
	query := `
	UPDATE jobs
	SET status = ?, claimed_at = CURRENT_TIMESTAMP
	WHERE id = (
		SELECT id FROM jobs WHERE status = ? ORDER BY id LIMIT 1
	)
	RETURNING id, url, created_at, claimed_at
	`

	var job model.Job
	var createdAt, claimedAt string
	err := q.db.QueryRowContext(ctx, query,
		string(model.StatusClaimed), string(model.StatusPending),
	).Scan(&job.ID, &job.URL, &createdAt, &claimedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}

	job.Status = model.StatusClaimed
	job.CreatedAt = parseTimestamp(createdAt)
	job.ClaimedAt = parseTimestamp(claimedAt)
	return &job, nil
}

// Complete marks a job completed and stores its result payload as JSON.
func (q *Queue) Complete(ctx context.Context, jobID int64, payload *model.ResultPayload) error {
	return q.finish(ctx, jobID, model.StatusCompleted, payload)
}

// Fail marks a job failed. A payload is still stored so downstream
// consumers see the failure message in the same shape as a success.
func (q *Queue) Fail(ctx context.Context, jobID int64, payload *model.ResultPayload) error {
	return q.finish(ctx, jobID, model.StatusFailed, payload)
}

func (q *Queue) finish(ctx context.Context, jobID int64, status model.JobStatus, payload *model.ResultPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}

	result, err := q.db.ExecContext(ctx, `
	UPDATE jobs
	SET status = ?, completed_at = CURRENT_TIMESTAMP, payload = ?
	WHERE id = ? AND status = ?`,
		string(status), string(payloadJSON), jobID, string(model.StatusClaimed),
	)
	if err != nil {
		return fmt.Errorf("failed to finish job %d: %w", jobID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finish job %d: %w", jobID, err)
	}
	if affected == 0 {
		return fmt.Errorf("job %d is not claimed", jobID)
	}
	return nil
}

// CountPending returns the number of jobs waiting to be claimed.
func (q *Queue) CountPending(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE status = ?`,
		string(model.StatusPending),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending jobs: %w", err)
	}
	return count, nil
}

// GetJob retrieves a job by ID along with its stored payload, if any.
// Returns (nil, nil, nil) when the job does not exist.
func (q *Queue) GetJob(ctx context.Context, jobID int64) (*model.Job, *model.ResultPayload, error) {
	query := `
	SELECT id, url, status, created_at, COALESCE(claimed_at, ''), COALESCE(payload, '')
	FROM jobs
	WHERE id = ?
	`

	var job model.Job
	var status, createdAt, claimedAt, payloadJSON string
	err := q.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID, &job.URL, &status, &createdAt, &claimedAt, &payloadJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get job %d: %w", jobID, err)
	}

	job.Status = model.JobStatus(status)
	job.CreatedAt = parseTimestamp(createdAt)
	if claimedAt != "" {
		job.ClaimedAt = parseTimestamp(claimedAt)
	}

	var payload *model.ResultPayload
	if payloadJSON != "" {
		payload = &model.ResultPayload{}
		if err := json.Unmarshal([]byte(payloadJSON), payload); err != nil {
			return nil, nil, fmt.Errorf("failed to parse payload for job %d: %w", jobID, err)
		}
	}

	return &job, payload, nil
}

// ReleaseStale returns claimed jobs older than the given age back to
// pending. Run periodically so jobs orphaned by a crashed worker are
// eventually retried.
func (q *Queue) ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	// SQLite datetime modifier format
	modifier := fmt.Sprintf("-%d seconds", int(olderThan.Seconds()))

	result, err := q.db.ExecContext(ctx, `
	UPDATE jobs
	SET status = ?, claimed_at = NULL
	WHERE status = ? AND claimed_at < datetime('now', ?)`,
		string(model.StatusPending), string(model.StatusClaimed), modifier,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to release stale jobs: %w", err)
	}
	return result.RowsAffected()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
