package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles groups the console styles shared by the report and the prompts.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Box     lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Link    lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles creates styles with the given palette
func NewStyles(palette Palette) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),

		Section: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			MarginTop(1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 2),

		Label: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Width(22),

		Value: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		Muted:   lipgloss.NewStyle().Foreground(palette.TextMuted),
		Success: lipgloss.NewStyle().Foreground(palette.Success).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(palette.Error).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(palette.Warning),
		Link:    lipgloss.NewStyle().Foreground(palette.Info).Underline(true),
		Prompt:  lipgloss.NewStyle().Foreground(palette.Primary).Bold(true),
	}
}

// Plain returns unstyled styles, for non-terminal output and tests.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Title:   s,
		Section: s.MarginTop(1),
		Box:     s,
		Label:   s.Width(22),
		Value:   s,
		Muted:   s,
		Success: s,
		Error:   s,
		Warning: s,
		Link:    s,
		Prompt:  s,
	}
}
