package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = 100 * time.Millisecond

// ProgressState tracks how much of a wake's timeout has elapsed.
type ProgressState struct {
	progress    progress.Model
	started     time.Time
	timeout     time.Duration
	percent     float64
	description string
	isActive    bool
}

// NewProgressState creates a new progress tracking state.
func NewProgressState() ProgressState {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)
	return ProgressState{
		progress: p,
	}
}

// Start begins tracking a new operation bounded by timeout.
func (p *ProgressState) Start(description string, now time.Time, timeout time.Duration) {
	p.isActive = true
	p.percent = 0
	p.started = now
	p.timeout = timeout
	p.description = description
}

// Tick recomputes the elapsed fraction at now, capped at 1.0.
func (p *ProgressState) Tick(now time.Time) {
	if !p.isActive || p.timeout <= 0 {
		return
	}
	p.percent = min(float64(now.Sub(p.started))/float64(p.timeout), 1.0)
}

// Complete marks the operation as complete.
func (p *ProgressState) Complete() {
	p.percent = 1.0
	p.isActive = false
}

// IsActive returns whether an operation is in progress.
func (p *ProgressState) IsActive() bool {
	return p.isActive
}

// Percent returns the elapsed fraction of the timeout.
func (p *ProgressState) Percent() float64 {
	return p.percent
}

// View renders the progress bar.
func (p ProgressState) View() string {
	if !p.isActive {
		return ""
	}
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return descStyle.Render(p.description) + "\n" + p.progress.ViewAs(p.percent)
}

// tickMsg drives the progress bar while a wake is in flight.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
