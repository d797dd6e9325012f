package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeContacts(md, report)
	w.writeVisited(md, report)
	w.writeErrors(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *ScanReport) {
	md.H1("Contact Scan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + report.Target + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Duration", (time.Duration(report.ElapsedMS) * time.Millisecond).String()},
			{"Pages Visited", strconv.Itoa(len(report.Outcome.VisitedURLs))},
			{"Status", report.StatusText()},
		},
	})
	md.PlainText("")
}

// writeSummary writes the result summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *ScanReport) {
	md.H2("Result Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Result", "Count"},
		Rows: [][]string{
			{"Emails", strconv.Itoa(len(report.Outcome.Emails))},
			{"Social Profiles", strconv.Itoa(len(report.Outcome.SocialURLs))},
			{"Page Errors", strconv.Itoa(len(report.Outcome.Errors))},
		},
	})
	md.PlainText("")

	if len(report.Outcome.Emails) > 0 || len(report.Outcome.SocialURLs) > 0 || len(report.Outcome.Errors) > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of the result distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *ScanReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Result Distribution"),
		piechart.WithShowData(true),
	)

	if n := len(report.Outcome.Emails); n > 0 {
		chart.LabelAndIntValue("Emails", uint64(n))
	}
	if n := len(report.Outcome.SocialURLs); n > 0 {
		chart.LabelAndIntValue("Social Profiles", uint64(n))
	}
	if n := len(report.Outcome.Errors); n > 0 {
		chart.LabelAndIntValue("Page Errors", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the scan result.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *ScanReport) {
	switch {
	case report.Outcome.HasEmails():
		md.Tipf("Found %d email address(es).", len(report.Outcome.Emails))
	case report.Outcome.Success:
		md.Note("The site rendered cleanly but exposed no contact information. " +
			"It may publish contacts behind a form or a third-party widget.")
	default:
		md.Warningf("The scan failed: %s", report.Outcome.FirstError())
	}
	md.PlainText("")
}

// writeContacts writes the extracted contact sections.
func (w *MarkdownWriter) writeContacts(md *markdown.Markdown, report *ScanReport) {
	md.H2("Contacts")
	md.PlainText("")

	if len(report.Outcome.Emails) == 0 && len(report.Outcome.SocialURLs) == 0 {
		md.PlainText("No contact information extracted.")
		md.PlainText("")
		return
	}

	if len(report.Outcome.Emails) > 0 {
		md.H3("Emails")
		md.PlainText("")
		md.BulletList(report.Outcome.Emails...)
		md.PlainText("")
	}

	if len(report.Outcome.SocialURLs) > 0 {
		md.H3("Social Profiles")
		md.PlainText("")
		for _, g := range groupSocialURLs(report.Outcome.SocialURLs) {
			md.H4(g.Label)
			md.PlainText("")
			md.BulletList(g.URLs...)
			md.PlainText("")
		}
	}
}

// writeVisited writes the visited pages as a collapsible section so long
// crawls do not dominate the document.
func (w *MarkdownWriter) writeVisited(md *markdown.Markdown, report *ScanReport) {
	if len(report.Outcome.VisitedURLs) == 0 {
		return
	}

	md.H2("Visited Pages")
	md.PlainText("")
	md.Details(
		strconv.Itoa(len(report.Outcome.VisitedURLs))+" page(s)",
		strings.Join(report.Outcome.VisitedURLs, "<br>"),
	)
	md.PlainText("")
}

// writeErrors writes page-level failures, if any.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, report *ScanReport) {
	if len(report.Outcome.Errors) == 0 {
		return
	}

	md.H2("Page Errors")
	md.PlainText("")

	rows := make([][]string, len(report.Outcome.Errors))
	for i, e := range report.Outcome.Errors {
		rows[i] = []string{
			truncateString(e.URL, 60),
			truncateString(e.Message, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by contactscan*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
