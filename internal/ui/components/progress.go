package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycore/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar toward a count goal.
type ProgressBar struct {
	Label string
	Done  int
	Goal  int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, done, goal, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Done:  done,
		Goal:  goal,
		Width: width,
	}
}

// Percent is Done/Goal clamped to [0, 1]. A zero goal counts as complete.
func (p ProgressBar) Percent() float64 {
	if p.Goal <= 0 {
		return 1
	}
	return min(max(float64(p.Done)/float64(p.Goal), 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	count := fmt.Sprintf("  %d/%d", p.Done, p.Goal)
	barWidth := p.Width - lipgloss.Width(result) - len(count)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	fill := theme.Secondary
	if p.Percent() >= 1 {
		fill = theme.Success
	}
	filledStr := lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr
	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(count)

	return result
}
