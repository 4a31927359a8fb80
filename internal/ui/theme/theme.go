package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/weakness"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

var urgencyStyles = map[weakness.Urgency]lipgloss.Style{
	weakness.UrgencyHigh:   lipgloss.NewStyle().Foreground(Error).Bold(true),
	weakness.UrgencyMedium: lipgloss.NewStyle().Foreground(Warning),
	weakness.UrgencyLow:    lipgloss.NewStyle().Foreground(Success),
}

// Urgency renders an urgency label in its color.
func Urgency(u weakness.Urgency) string {
	style, ok := urgencyStyles[u]
	if !ok {
		return Body.Render(u.String())
	}
	return style.Render(u.String())
}

func tierColor(t proficiency.Tier) color.Color {
	switch t {
	case proficiency.TierElementary:
		return Secondary
	case proficiency.TierIntermediate:
		return Success
	case proficiency.TierAdvanced:
		return Accent
	case proficiency.TierProfessional:
		return Primary
	default:
		return TextDim
	}
}

// Tier renders a tier name in its color.
func Tier(t proficiency.Tier) string {
	return lipgloss.NewStyle().Foreground(tierColor(t)).Bold(true).Render(t.String())
}
