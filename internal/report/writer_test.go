package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/contactscan/contactscan/internal/model"
)

// testReport builds a representative ScanReport for writer tests.
func testReport() *ScanReport {
	outcome := &model.JobOutcome{
		Success:     true,
		Emails:      []string{"sales@northwind.dev", "press@northwind.dev"},
		SocialURLs:  []string{"https://facebook.com/northwind"},
		VisitedURLs: []string{"https://acme.test/", "https://acme.test/contact"},
	}
	return &ScanReport{
		Target:      "https://acme.test",
		DateScanned: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		ElapsedMS:   4200,
		Outcome:     outcome,
		Payload: &model.ResultPayload{
			Status:       model.PayloadStatusCompleted,
			Emails:       outcome.Emails,
			FacebookURLs: outcome.SocialURLs,
			Message:      model.MessageCompleted,
			ScrapeType:   model.ScrapeTypeBrowserRendering,
		},
	}
}

func TestStatusText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome *model.JobOutcome
		want    string
	}{
		{
			name:    "emails found",
			outcome: &model.JobOutcome{Success: true, Emails: []string{"sales@northwind.dev"}},
			want:    "Complete - contacts found",
		},
		{
			name:    "clean but empty",
			outcome: &model.JobOutcome{Success: true},
			want:    "Complete - no contacts found",
		},
		{
			name: "failed",
			outcome: &model.JobOutcome{
				Errors: []model.PageError{{URL: "https://acme.test", Message: "navigation timeout"}},
			},
			want: "Failed - navigation timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &ScanReport{Outcome: tt.outcome}
			if got := r.StatusText(); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("lists extracted contacts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(testReport())
		if err != nil {
			t.Fatalf("Write() errored: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("Write() = %d bytes, buffer has %d", n, buf.Len())
		}

		output := buf.String()
		for _, want := range []string{
			"CONTACT SCAN REPORT",
			"https://acme.test",
			"sales@northwind.dev",
			"press@northwind.dev",
			"Facebook:",
			"https://facebook.com/northwind",
			"Pages Visited: 2",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("empty scan reports no contacts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		r := testReport()
		r.Outcome = &model.JobOutcome{Success: true, VisitedURLs: []string{"https://acme.test/"}}
		if _, err := w.Write(r); err != nil {
			t.Fatalf("Write() errored: %v", err)
		}

		if !strings.Contains(buf.String(), "No contact information extracted") {
			t.Errorf("output missing empty-contacts notice:\n%s", buf.String())
		}
	})

	t.Run("errors section shows page failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		r := testReport()
		r.Outcome.Errors = []model.PageError{
			{URL: "https://acme.test/contact", Message: "navigation timeout"},
		}
		if _, err := w.Write(r); err != nil {
			t.Fatalf("Write() errored: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "PAGE ERRORS") || !strings.Contains(output, "navigation timeout") {
			t.Errorf("output missing page error section:\n%s", output)
		}
	})

	t.Run("verbose includes visited pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(testReport()); err != nil {
			t.Fatalf("Write() errored: %v", err)
		}

		if !strings.Contains(buf.String(), "VISITED PAGES") {
			t.Errorf("verbose output missing visited pages section:\n%s", buf.String())
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("round trips through json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(testReport()); err != nil {
			t.Fatalf("Write() errored: %v", err)
		}

		var decoded ScanReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Target != "https://acme.test" {
			t.Errorf("Target = %q", decoded.Target)
		}
		if decoded.Payload.Status != model.PayloadStatusCompleted {
			t.Errorf("Payload.Status = %q", decoded.Payload.Status)
		}
		if len(decoded.Outcome.Emails) != 2 {
			t.Errorf("Outcome.Emails = %v", decoded.Outcome.Emails)
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(testReport()); err != nil {
			t.Fatalf("Write() errored: %v", err)
		}

		// Compact output is a single line plus the trailing newline.
		if got := strings.Count(buf.String(), "\n"); got != 1 {
			t.Errorf("compact output has %d newlines, want 1", got)
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(testReport()); err != nil {
			t.Fatalf("Write() errored: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"target\"") {
			t.Errorf("pretty output not indented:\n%s", buf.String())
		}
	})
}

func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewFullJSONWriter(&buf, "1.2.3")

	if _, err := w.Write(testReport()); err != nil {
		t.Fatalf("Write() errored: %v", err)
	}

	var decoded JSONReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", decoded.Version)
	}
	if decoded.Report == nil || decoded.Report.Target != "https://acme.test" {
		t.Errorf("Report = %+v", decoded.Report)
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders tables and contacts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(testReport()); err != nil {
			t.Fatalf("Write() errored: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Contact Scan Report",
			"`https://acme.test`",
			"sales@northwind.dev",
			"#### Facebook",
			"```mermaid",
			"Result Distribution",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("failed scan shows page errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		r := testReport()
		r.Outcome = &model.JobOutcome{
			Errors: []model.PageError{{URL: "https://acme.test", Message: "net::ERR_NAME_NOT_RESOLVED"}},
		}
		r.Payload = &model.ResultPayload{
			Status:     model.PayloadStatusNeedSearch,
			Message:    "net::ERR_NAME_NOT_RESOLVED",
			ScrapeType: model.ScrapeTypeBrowserRendering,
		}
		if _, err := w.Write(r); err != nil {
			t.Fatalf("Write() errored: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "net::ERR_NAME_NOT_RESOLVED") {
			t.Errorf("output missing error text:\n%s", output)
		}
		if !strings.Contains(output, "Page Errors") {
			t.Errorf("output missing page errors section:\n%s", output)
		}
	})
}

// failingWriter always errors, for MultiWriter propagation tests.
type failingWriter struct{}

func (failingWriter) Write(_ *ScanReport) (int, error) {
	return 0, errors.New("write failed")
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

		n, err := mw.Write(testReport())
		if err != nil {
			t.Fatalf("Write() errored: %v", err)
		}
		if n != a.Len()+b.Len() {
			t.Errorf("Write() = %d bytes, want %d", n, a.Len()+b.Len())
		}
		if a.Len() == 0 || b.Len() == 0 {
			t.Error("one of the writers received no output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewSimpleWriter(&buf))

		if _, err := mw.Write(testReport()); err == nil {
			t.Fatal("Write() = nil error, want propagated failure")
		}
		if buf.Len() != 0 {
			t.Error("writer after the failing one still received output")
		}
	})
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"tiny max hard cut", "hello", 2, "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestGroupSocialURLs(t *testing.T) {
	t.Parallel()

	groups := groupSocialURLs([]string{
		"https://facebook.com/northwind",
		"https://fb.com/northwindpress",
		"https://social.acme.test/northwind",
	})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2: %v", len(groups), groups)
	}
	if groups[0].Label != "Facebook" || len(groups[0].URLs) != 2 {
		t.Errorf("first group = %+v, want Facebook with 2 URLs", groups[0])
	}
	if groups[1].Label != "Other" || len(groups[1].URLs) != 1 {
		t.Errorf("second group = %+v, want Other with 1 URL", groups[1])
	}

	if groups := groupSocialURLs(nil); len(groups) != 0 {
		t.Errorf("got %d groups for no URLs, want 0", len(groups))
	}
}
