package tui

import "github.com/charmbracelet/lipgloss"

// Styles of the rendered grid parts.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Sorted   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Footer   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the styles used by New.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header:   lipgloss.NewStyle().Bold(true),
		Sorted:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Help:     lipgloss.NewStyle().Faint(true),
	}
}

// PlainStyles returns styles without any formatting.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Header:   plain,
		Sorted:   plain,
		Cursor:   plain,
		Selected: plain,
		Footer:   plain,
		Status:   plain,
		Error:    plain,
		Help:     plain,
	}
}
