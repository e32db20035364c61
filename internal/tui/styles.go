package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/ccmon-tools/ccmon/internal/procscan"
)

// Styles holds the computed lipgloss styles for the monitor.
type Styles struct {
	Title     lipgloss.Style
	Panel     lipgloss.Style
	Header    lipgloss.Style
	Row       lipgloss.Style
	Muted     lipgloss.Style
	StatusBar lipgloss.Style
	Error     lipgloss.Style

	StatusRunning lipgloss.Style
	StatusIdle    lipgloss.Style
	StatusIOWait  lipgloss.Style
	StatusStopped lipgloss.Style
	StatusZombie  lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213")),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),

		Row: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		StatusRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StatusIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StatusIOWait:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		StatusStopped: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusZombie:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// statusStyle returns the style for a session status label.
func (s Styles) statusStyle(status procscan.Status) lipgloss.Style {
	switch status {
	case procscan.StatusRunning:
		return s.StatusRunning
	case procscan.StatusIOWait:
		return s.StatusIOWait
	case procscan.StatusStopped:
		return s.StatusStopped
	case procscan.StatusZombie:
		return s.StatusZombie
	default:
		return s.StatusIdle
	}
}
