package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no content are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *ScanReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeContacts(&sb, report)
	w.writeErrors(&sb, report)
	if w.verbose {
		w.writeVisited(&sb, report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       CONTACT SCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:        %s\n", report.Target))
	sb.WriteString(fmt.Sprintf("Scan Date:     %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:      %s\n", time.Duration(report.ElapsedMS)*time.Millisecond))
	sb.WriteString(fmt.Sprintf("Pages Visited: %d\n", len(report.Outcome.VisitedURLs)))
	sb.WriteString(fmt.Sprintf("Status:        %s\n", report.StatusText()))
	sb.WriteString("\n")
}

// writeContacts writes the extracted contact sections.
func (w *SimpleWriter) writeContacts(sb *strings.Builder, report *ScanReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CONTACTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Outcome.Emails) == 0 && len(report.Outcome.SocialURLs) == 0 {
		sb.WriteString("  No contact information extracted\n\n")
		return
	}

	if len(report.Outcome.Emails) > 0 {
		sb.WriteString(fmt.Sprintf("  Emails (%d):\n", len(report.Outcome.Emails)))
		for _, email := range report.Outcome.Emails {
			sb.WriteString(fmt.Sprintf("    [+] %s\n", email))
		}
		sb.WriteString("\n")
	}

	if len(report.Outcome.SocialURLs) > 0 {
		sb.WriteString(fmt.Sprintf("  Social Profiles (%d):\n", len(report.Outcome.SocialURLs)))
		for _, g := range groupSocialURLs(report.Outcome.SocialURLs) {
			sb.WriteString(fmt.Sprintf("    %s:\n", g.Label))
			for _, u := range g.URLs {
				sb.WriteString(fmt.Sprintf("      [+] %s\n", u))
			}
		}
		sb.WriteString("\n")
	}
}

// writeErrors writes page-level failures.
func (w *SimpleWriter) writeErrors(sb *strings.Builder, report *ScanReport) {
	if len(report.Outcome.Errors) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PAGE ERRORS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Outcome.Errors) == 0 {
		sb.WriteString("  No page errors\n")
	} else {
		for _, e := range report.Outcome.Errors {
			sb.WriteString(fmt.Sprintf("  * %s\n", e.URL))
			sb.WriteString(fmt.Sprintf("    %s\n", e.Message))
		}
	}
	sb.WriteString("\n")
}

// writeVisited writes the visited page list.
func (w *SimpleWriter) writeVisited(sb *strings.Builder, report *ScanReport) {
	if len(report.Outcome.VisitedURLs) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("VISITED PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, u := range report.Outcome.VisitedURLs {
		sb.WriteString(fmt.Sprintf("  - %s\n", u))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by contactscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
