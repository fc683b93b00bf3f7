package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Title
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Target list
	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style
	MenuItemDim      lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style

	// Content
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Help
	Help lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special := lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	dim := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(highlight).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(dim),

		MenuItem: lipgloss.NewStyle(),

		MenuItemSelected: lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true),

		MenuItemDim: lipgloss.NewStyle().
			Foreground(dim).
			PaddingLeft(4),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#343433", Dark: "#C1C6B2"}).
			Background(subtle).
			Padding(0, 1).
			MarginTop(1),

		Muted: lipgloss.NewStyle().
			Foreground(dim),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),

		Success: lipgloss.NewStyle().
			Foreground(special),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFCC00")),

		Help: lipgloss.NewStyle().
			Foreground(dim).
			MarginTop(1),
	}
}
