package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	varStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// paint applies a style only when color output is on.
func (s *session) paint(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}
