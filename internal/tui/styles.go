package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/JPM1118/imgbind/internal/resolver"
)

var (
	// Colors
	colorReplacement = lipgloss.Color("5")  // magenta
	colorSource      = lipgloss.Color("2")  // green
	colorMiss        = lipgloss.Color("1")  // red
	colorUndeclared  = lipgloss.Color("8")  // dim gray
	colorHeader      = lipgloss.Color("12") // bright blue
	colorMuted       = lipgloss.Color("8")  // dim
	colorCursor      = lipgloss.Color("6")  // cyan

	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader)

	subheaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Underline(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	notificationBarStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)
)

// OutcomeStyle returns the style for a resolution outcome.
func OutcomeStyle(o resolver.Outcome) lipgloss.Style {
	switch o {
	case resolver.OutcomeReplacement:
		return lipgloss.NewStyle().Foreground(colorReplacement).Bold(true)
	case resolver.OutcomeSource:
		return lipgloss.NewStyle().Foreground(colorSource)
	case resolver.OutcomeMiss:
		return lipgloss.NewStyle().Foreground(colorMiss).Bold(true)
	case resolver.OutcomeUndeclared:
		return lipgloss.NewStyle().Foreground(colorUndeclared)
	default:
		return lipgloss.NewStyle().Foreground(colorMuted)
	}
}

// OutcomeLabel returns the display text for an outcome, including indicators.
func OutcomeLabel(r resolver.Resolution) string {
	switch {
	case r.Outcome == resolver.OutcomeMiss:
		return "MISS !"
	case r.Outcome == resolver.OutcomeSource && r.ReplacementFailed:
		return "SOURCE ?"
	case r.Outcome == resolver.OutcomeReplacement:
		return "REPLACED"
	case r.Outcome == resolver.OutcomeSource:
		return "SOURCE"
	default:
		return "UNDECLARED"
	}
}
