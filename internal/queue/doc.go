// Package queue provides the SQLite-backed job queue.
//
// Jobs enter as pending, are claimed atomically by exactly one worker,
// and terminate as completed or failed with a stored result payload.
// A single database file serves all workers on a host; claims use one
// UPDATE..RETURNING statement so two workers can never own the same job.
package queue
