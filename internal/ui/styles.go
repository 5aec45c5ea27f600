package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple

	// Status colors
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Outcome colors
	ColorPicked   = lipgloss.Color("#10B981") // Green
	ColorSquashed = lipgloss.Color("#8B5CF6") // Purple
	ColorSkipped  = lipgloss.Color("#6B7280") // Gray
	ColorAbandon  = lipgloss.Color("#F59E0B") // Amber

	// Text colors
	ColorTextMuted  = lipgloss.Color("#9CA3AF") // Gray
	ColorTextBright = lipgloss.Color("#FFFFFF") // White

	ColorBgMuted = lipgloss.Color("#111827") // Darker gray
	ColorBorder  = lipgloss.Color("#374151") // Medium gray
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

var DimStyle = lipgloss.NewStyle().
	Foreground(ColorTextMuted)

// Message styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextBright)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableRowAltStyle = lipgloss.NewStyle().
				Background(ColorBgMuted).
				Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)

// GetOutcomeColor returns the color used for a replay outcome name
func GetOutcomeColor(outcome string) lipgloss.Color {
	switch outcome {
	case "cherry-picked", "recovered":
		return ColorPicked
	case "squashed":
		return ColorSquashed
	case "abandoned":
		return ColorAbandon
	default:
		return ColorSkipped
	}
}

// GetOutcomeStyle returns the style used for a replay outcome name
func GetOutcomeStyle(outcome string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(GetOutcomeColor(outcome)).Bold(outcome != "skipped" && outcome != "unchanged")
}
