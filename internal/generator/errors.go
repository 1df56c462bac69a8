package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrTemplateNotFound is returned, wrapped with the path, when the template
// file does not exist. Nothing has been written at that point.
var ErrTemplateNotFound = errors.New("not found")

// MissingVariablesError lists every placeholder without a value. Nothing has
// been written when it is returned.
type MissingVariablesError struct {
	File    string
	Missing []Placeholder

	lines []string
}

func NewMissingVariablesError(file, template string, missing []Placeholder) *MissingVariablesError {
	return &MissingVariablesError{
		File:    file,
		Missing: missing,
		lines:   strings.Split(template, "\n"),
	}
}

// Names returns the missing variable names in order of first appearance.
func (e *MissingVariablesError) Names() []string {
	names := make([]string, len(e.Missing))
	for i, p := range e.Missing {
		names[i] = p.Name
	}
	return names
}

func (e *MissingVariablesError) Error() string {
	return "missing environment variables: " + strings.Join(e.Names(), ", ")
}

// Detail renders each missing variable with the template lines around its
// first use.
func (e *MissingVariablesError) Detail() string {
	var (
		errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		fileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true)
		lineNumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		errorLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		contextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		pointerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	)

	var sb strings.Builder

	sb.WriteString(errorStyle.Render("Missing Variables") + "\n\n")

	for _, p := range e.Missing {
		location := fmt.Sprintf("%s:%d:%d", e.File, p.Line, p.Column)
		sb.WriteString(fileStyle.Render(location) + "\n")

		start := max(p.Line-2, 1)
		end := min(p.Line+2, len(e.lines))

		for n := start; n <= end; n++ {
			line := e.lines[n-1]
			lineNum := fmt.Sprintf("%4d │ ", n)

			if n != p.Line {
				sb.WriteString(lineNumStyle.Render(lineNum) + contextStyle.Render(line) + "\n")
				continue
			}

			sb.WriteString(errorLineStyle.Render(lineNum) + errorLineStyle.Render(line) + "\n")
			sb.WriteString(strings.Repeat(" ", 6+p.Column) + pointerStyle.Render(strings.Repeat("^", len(p.Token))) + "\n")
		}

		sb.WriteString("\n")
	}

	sb.WriteString(errorStyle.Render("Error: ") + e.Error() + "\n")

	return sb.String()
}
