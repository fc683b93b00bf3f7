package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitaminmoo/penta-wake/internal/config"
)

// Run starts the TUI application.
func Run(ctx context.Context, cfg *config.Config, sender Sender) error {
	m := NewModel(ctx, cfg, sender)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}

	return nil
}
