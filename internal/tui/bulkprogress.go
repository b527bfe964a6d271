package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plalonde/sensorctl/internal/bulk"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	deletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// OutcomeMsg reports one completed deletion.
type OutcomeMsg struct {
	Outcome bulk.Outcome
}

// DoneMsg ends the progress display.
type DoneMsg struct{}

// CancelMsg is emitted when the operator interrupts the run. The caller
// cancels the work context; the display stays up until DoneMsg so in-flight
// outcomes are still counted.
type CancelMsg struct{}

// BulkModel renders live progress for a bulk deletion.
type BulkModel struct {
	title     string
	total     int
	completed int
	deleted   int
	skipped   int
	failed    int

	spin spinner.Model
	bar  progress.Model

	cancelling bool
	done       bool
	onCancel   func()
}

// NewBulkModel creates a progress model for total targets. onCancel runs
// once when the operator presses ctrl+c; nil is allowed.
func NewBulkModel(title string, total int, onCancel func()) BulkModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return BulkModel{title: title, total: total, spin: spin, bar: bar, onCancel: onCancel}
}

// Init starts the spinner.
func (m BulkModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update handles progress messages.
func (m BulkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OutcomeMsg:
		m.completed++
		switch msg.Outcome.Status {
		case bulk.StatusDeleted:
			m.deleted++
		case bulk.StatusSkipped:
			m.skipped++
		case bulk.StatusFailed:
			m.failed++
		}
		return m, nil
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case CancelMsg:
		m.cancelling = true
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && !m.cancelling {
			m.cancelling = true
			if m.onCancel != nil {
				m.onCancel()
			}
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the progress display.
func (m BulkModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	ratio := 0.0
	if m.total > 0 {
		ratio = math.Min(1.0, float64(m.completed)/float64(m.total))
	}

	head := m.spin.View()
	if m.done {
		head = " "
	}
	fmt.Fprintf(&b, "%s %s %d/%d\n", head, m.bar.ViewAs(ratio), m.completed, m.total)

	fmt.Fprintf(&b, "%s  %s  %s\n",
		deletedStyle.Render(fmt.Sprintf("deleted %d", m.deleted)),
		skippedStyle.Render(fmt.Sprintf("skipped %d", m.skipped)),
		failedStyle.Render(fmt.Sprintf("failed %d", m.failed)),
	)

	if m.cancelling && !m.done {
		b.WriteString(skippedStyle.Render("cancelling: waiting for in-flight deletions"))
		b.WriteString("\n")
	}

	return b.String()
}

// Completed returns how many outcomes the model has seen.
func (m BulkModel) Completed() int {
	return m.completed
}
