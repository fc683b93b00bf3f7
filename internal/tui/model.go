package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitaminmoo/penta-wake/internal/config"
)

// Sender performs one wake operation. *wake.Sender satisfies it.
type Sender interface {
	Send(ctx context.Context, t config.Target) error
}

// result is the outcome of the last wake of one target.
type result struct {
	err     error
	elapsed time.Duration
}

// wakeResultMsg is sent when a wake operation finishes.
type wakeResultMsg struct {
	name    string
	err     error
	elapsed time.Duration
}

// Model is the main Bubbletea model for the TUI.
type Model struct {
	ctx    context.Context
	sender Sender

	// State
	targets []config.Target
	cursor  int
	width   int
	height  int

	// Only one wake may be in flight; sending names its target.
	sending string
	results map[string]result

	// Components
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	progress ProgressState
	styles   Styles

	now func() time.Time
}

// NewModel returns a model listing cfg's targets with the default target
// preselected.
func NewModel(ctx context.Context, cfg *config.Config, sender Sender) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = DefaultStyles().Warning

	m := Model{
		ctx:      ctx,
		sender:   sender,
		targets:  cfg.Targets,
		results:  make(map[string]result),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		progress: NewProgressState(),
		styles:   DefaultStyles(),
		now:      time.Now,
	}
	for i, t := range cfg.Targets {
		if t.Name == cfg.Default {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.sending == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.sending == "" {
			return m, nil
		}
		m.progress.Tick(time.Time(msg))
		return m, tickCmd()

	case wakeResultMsg:
		m.sending = ""
		m.progress.Complete()
		m.results[msg.name] = result{err: msg.err, elapsed: msg.elapsed}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.targets) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		if m.cursor >= len(m.targets) {
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.startWake()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m Model) startWake() (tea.Model, tea.Cmd) {
	if m.sending != "" || len(m.targets) == 0 {
		return m, nil
	}
	t := m.targets[m.cursor]
	m.sending = t.Name
	delete(m.results, t.Name)
	m.progress.Start(fmt.Sprintf("Waking %s (%s)...", t.Name, t.Address), m.now(), t.Timeout)

	return m, tea.Batch(
		wakeCmd(m.ctx, m.sender, t),
		m.spinner.Tick,
		tickCmd(),
	)
}

// wakeCmd runs one wake off the UI goroutine.
func wakeCmd(ctx context.Context, sender Sender, t config.Target) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := sender.Send(ctx, t)
		return wakeResultMsg{name: t.Name, err: err, elapsed: time.Since(start)}
	}
}

// View renders the current view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Penta Wake"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d targets", len(m.targets))))
	b.WriteString("\n\n")

	if len(m.targets) == 0 {
		b.WriteString(m.styles.Muted.Render("No targets configured. Run 'penta-wake config init'."))
		b.WriteString("\n")
	}

	for i, t := range m.targets {
		line := "  " + t.Name
		if i == m.cursor {
			b.WriteString(m.styles.MenuItemSelected.Render("> " + t.Name))
		} else {
			b.WriteString(m.styles.MenuItem.Render(line))
		}
		b.WriteString("  ")
		b.WriteString(m.targetStatus(t))
		b.WriteString("\n")
		b.WriteString(m.styles.MenuItemDim.Render(describeTarget(t)))
		b.WriteString("\n\n")
	}

	if m.progress.IsActive() {
		b.WriteString(m.progress.View())
		b.WriteString("\n")
	}

	helpView := m.styles.Help.Render(m.help.View(m.keys))

	return m.styles.App.Render(
		b.String() + "\n" + helpView,
	)
}

func (m Model) targetStatus(t config.Target) string {
	if m.sending == t.Name {
		return m.spinner.View() + " " + m.styles.Warning.Render("Waking...")
	}
	r, ok := m.results[t.Name]
	if !ok {
		return ""
	}
	if r.err != nil {
		return m.styles.Error.Render("✗ " + r.err.Error())
	}
	return m.styles.Success.Render(fmt.Sprintf("✓ Wake signal sent (%s)", r.elapsed.Round(time.Millisecond)))
}

func describeTarget(t config.Target) string {
	address := t.Address
	if address == "" {
		address = "no address"
	}
	return fmt.Sprintf("%s  char %s  payload 0x%02x", address, t.Characteristic, t.Payload)
}
