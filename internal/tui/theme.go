package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette and styles for the console.
type Theme struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Muted   lipgloss.Color

	TitleStyle    lipgloss.Style
	PanelStyle    lipgloss.Style
	CursorStyle   lipgloss.Style
	MutedStyle    lipgloss.Style
	ActiveStep    lipgloss.Style
	InactiveStep  lipgloss.Style
	StatusGo      lipgloss.Style
	StatusNoGo    lipgloss.Style
	StatusOther   lipgloss.Style
	PassStyle     lipgloss.Style
	FailStyle     lipgloss.Style
	ReadyStyle    lipgloss.Style
	LockedStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	TimestampText lipgloss.Style
}

// DefaultTheme returns the console theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Primary: lipgloss.Color("#7DD3FC"),
		Success: lipgloss.Color("#4ADE80"),
		Warning: lipgloss.Color("#FACC15"),
		Danger:  lipgloss.Color("#F87171"),
		Muted:   lipgloss.Color("#64748B"),
	}

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)

	t.CursorStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	t.MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	t.ActiveStep = lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Underline(true)
	t.InactiveStep = lipgloss.NewStyle().Foreground(t.Muted)

	t.StatusGo = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	t.StatusNoGo = lipgloss.NewStyle().Foreground(t.Danger).Bold(true)
	t.StatusOther = lipgloss.NewStyle().Foreground(t.Warning)
	t.PassStyle = lipgloss.NewStyle().Foreground(t.Success)
	t.FailStyle = lipgloss.NewStyle().Foreground(t.Danger)

	t.ReadyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(t.Success).
		Bold(true).
		Padding(0, 1)
	t.LockedStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)

	t.ErrorStyle = lipgloss.NewStyle().Foreground(t.Danger)
	t.TimestampText = lipgloss.NewStyle().Foreground(t.Muted)
	return t
}

// Status styles an operational status badge.
func (t *Theme) Status(status string) string {
	switch status {
	case "GO":
		return t.StatusGo.Render(status)
	case "NO-GO", "NO GO":
		return t.StatusNoGo.Render(status)
	default:
		return t.StatusOther.Render(status)
	}
}
