package cmd

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10)
	styleValue = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// field renders a single "key value" line.
func field(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styleKey.Render(key), styleValue.Render(value))
}
