package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/plalonde/sensorctl/internal/bulk"
	"github.com/plalonde/sensorctl/internal/verify"
)

const summaryRounding = time.Millisecond

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	summaryStyle = lipgloss.NewStyle().MarginTop(1)
)

// Writer renders structured results for the terminal.
type Writer struct {
	out io.Writer
}

// NewWriter creates a report writer over out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// VerifySummary renders a verification run as a verdict table with totals.
func (w *Writer) VerifySummary(s *verify.Summary) {
	title := s.Title
	if title == "" {
		title = s.Spec
	}
	fmt.Fprintf(w.out, "\n%s\n", titleStyle.Render(title))
	fmt.Fprintln(w.out, strings.Repeat("=", 64))
	fmt.Fprintf(w.out, "%s\n", headerStyle.Render(fmt.Sprintf("%-40s %-10s %s", "Key", "Required", "Observed")))
	fmt.Fprintln(w.out, strings.Repeat("-", 64))

	for _, v := range s.Verdicts {
		fmt.Fprintf(w.out, "%-40s %-10s %s\n", truncate(v.Key, 40), v.Required, verdictCell(v))
	}

	fmt.Fprintln(w.out, strings.Repeat("=", 64))
	fmt.Fprint(w.out, summaryStyle.Render(fmt.Sprintf(
		"Total: %d   Pass: %d   Fail: %d   Missing: %d   (%s)",
		len(s.Verdicts), s.Pass, s.Fail, s.Missing, s.Duration.Round(summaryRounding),
	)))
	fmt.Fprintln(w.out)

	if s.Passed() {
		fmt.Fprintln(w.out, passStyle.Render("PASS: all requirements satisfied"))
	} else {
		fmt.Fprintln(w.out, failStyle.Render(fmt.Sprintf("FAIL: %d requirement(s) not satisfied", s.Fail+s.Missing)))
	}
}

func verdictCell(v verify.Verdict) string {
	switch v.Status {
	case verify.StatusPass:
		return passStyle.Render("✔ " + v.Observed)
	case verify.StatusFail:
		return failStyle.Render("✗ " + v.Observed)
	default:
		return missingStyle.Render("✗ missing")
	}
}

// BulkResult renders a bulk operation as an outcome table with totals.
func (w *Writer) BulkResult(title string, r *bulk.Result) {
	fmt.Fprintf(w.out, "\n%s\n", titleStyle.Render(title))
	fmt.Fprintln(w.out, strings.Repeat("=", 72))
	fmt.Fprintf(w.out, "%s\n", headerStyle.Render(fmt.Sprintf("%-44s %-10s %s", "Target", "Outcome", "Detail")))
	fmt.Fprintln(w.out, strings.Repeat("-", 72))

	for _, o := range r.Outcomes {
		detail := ""
		if o.Err != nil {
			detail = o.Err.Error()
		}
		fmt.Fprintf(w.out, "%-44s %-10s %s\n", truncate(o.Ref.String(), 44), outcomeCell(o.Status), detail)
	}

	fmt.Fprintln(w.out, strings.Repeat("=", 72))
	fmt.Fprint(w.out, summaryStyle.Render(fmt.Sprintf(
		"Total: %d   Deleted: %d   Skipped: %d   Failed: %d   (%s)",
		r.Total, r.Deleted, r.Skipped, r.Failed, r.Duration.Round(summaryRounding),
	)))
	fmt.Fprintln(w.out)

	if r.Succeeded() {
		fmt.Fprintln(w.out, passStyle.Render("All targets processed"))
	} else {
		fmt.Fprintln(w.out, failStyle.Render(fmt.Sprintf("%d target(s) failed", r.Failed)))
	}
}

func outcomeCell(s bulk.Status) string {
	switch s {
	case bulk.StatusDeleted:
		return passStyle.Render("deleted")
	case bulk.StatusSkipped:
		return skippedStyle.Render("skipped")
	default:
		return failStyle.Render("failed")
	}
}

// Table renders a generic listing with a header row.
func (w *Writer) Table(title string, columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var header strings.Builder
	for i, c := range columns {
		fmt.Fprintf(&header, "%-*s  ", widths[i], c)
	}

	fmt.Fprintf(w.out, "\n%s\n", titleStyle.Render(title))
	fmt.Fprintln(w.out, headerStyle.Render(strings.TrimRight(header.String(), " ")))
	fmt.Fprintln(w.out, strings.Repeat("-", lipgloss.Width(header.String())))
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&line, "%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w.out, strings.TrimRight(line.String(), " "))
	}
	fmt.Fprintln(w.out)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
