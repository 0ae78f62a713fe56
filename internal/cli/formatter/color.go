package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tracklab/pmt/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor strips every style down to plain text, for piped output.
func DisableColor() {
	plain := lipgloss.NewStyle()
	StyleGreen = plain
	StyleYellow = plain
	StyleRed = plain
	StyleBlue = plain
	StylePurple = plain
	StyleDim = plain
	StyleFg = plain
	StyleHeader = plain
	StyleBold = plain
}

// StatusStyle returns the style for an item workflow status.
func StatusStyle(status domain.ItemStatus) lipgloss.Style {
	switch status {
	case domain.StatusOpen, domain.StatusReopened:
		return StyleRed
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusResolved:
		return StyleBlue
	case domain.StatusVerified:
		return StyleGreen
	default:
		return StyleDim
	}
}

// TargetStyle returns the style for a target-date classification.
func TargetStyle(status domain.TargetDateStatus) lipgloss.Style {
	switch status {
	case domain.TargetOK:
		return StyleGreen
	case domain.TargetUpcoming:
		return StyleYellow
	case domain.TargetDue:
		return StylePurple
	case domain.TargetOverdue, domain.TargetLate:
		return StyleRed
	default:
		return StyleDim
	}
}
