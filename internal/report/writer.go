package report

import (
	"io"
	"time"

	"github.com/contactscan/contactscan/internal/model"
)

// ScanReport bundles everything a one-shot scan produced: where it went,
// what it found, and the payload a queue worker would have stored.
type ScanReport struct {
	// Target is the URL the scan started from, as given by the user.
	Target string `json:"target"`

	// DateScanned is when the scan started.
	DateScanned time.Time `json:"date_scanned"`

	// ElapsedMS is the scan wall-clock duration in milliseconds.
	ElapsedMS int64 `json:"elapsed_ms"`

	// Outcome is the consolidated crawl result.
	Outcome *model.JobOutcome `json:"outcome"`

	// Payload is the normalized result exactly as a worker would persist it.
	Payload *model.ResultPayload `json:"payload"`
}

// NewScanReport creates a ScanReport for a finished scan.
func NewScanReport(target string, outcome *model.JobOutcome, payload *model.ResultPayload, elapsed time.Duration) *ScanReport {
	return &ScanReport{
		Target:      target,
		DateScanned: time.Now().Add(-elapsed),
		ElapsedMS:   elapsed.Milliseconds(),
		Outcome:     outcome,
		Payload:     payload,
	}
}

// StatusText returns a human-readable status line for the scan.
func (r *ScanReport) StatusText() string {
	switch {
	case r.Outcome == nil:
		return "Unknown"
	case r.Outcome.HasEmails():
		return "Complete - contacts found"
	case r.Outcome.Success:
		return "Complete - no contacts found"
	default:
		return "Failed - " + r.Outcome.FirstError()
	}
}

// Writer defines the interface for report output.
// Implementations write scan results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *ScanReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *ScanReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
