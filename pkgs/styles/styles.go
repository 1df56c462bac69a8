// Package styles contains the shared styles for the terminal output of wrangler-manager.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	Check = "✔"
	Cross = "✘"
	Warn  = "⚠"
	Arrow = "→"
	Dot   = "•"
)

const (
	ColorSuccess = "#22c55e"
	ColorError   = "#d75f6b"
	ColorWarning = "#e0af68"
	ColorSubtle  = "#a3a3a3"
	ColorAccent  = "#bb9af7"
)

var (
	Bold = lipgloss.NewStyle().Bold(true).Render

	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render
	Subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle)).Render
	Accent  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)).Render
)

// ErrorBox creates a bordered error box with title and message
func ErrorBox(title, message string) string {
	redStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle))

	lines := []string{
		redStyle.Render("╭ " + title),
		redStyle.Render("│") + " " + subtleStyle.Render(message),
		redStyle.Render("╵"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
