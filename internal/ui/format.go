package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Truncate truncates text to maxLen with an ellipsis if needed.
// Uses lipgloss for ANSI-aware width handling.
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	width := lipgloss.Width(text)
	if width <= maxLen {
		return text
	}

	if maxLen <= 3 {
		return lipgloss.NewStyle().MaxWidth(maxLen).Render(text)
	}
	return lipgloss.NewStyle().MaxWidth(maxLen-3).Render(text) + "..."
}

func Pad(text string, width int, align lipgloss.Position) string {
	return lipgloss.PlaceHorizontal(width, align, text)
}

// RenderKeyValueList renders pairs in the order of keys with the keys aligned
func RenderKeyValueList(pairs map[string]string, keys []string) string {
	maxKeyLen := 0
	for _, key := range keys {
		maxKeyLen = max(maxKeyLen, lipgloss.Width(key))
	}

	var lines []string
	for _, key := range keys {
		keyStyled := DimStyle.Render(Pad(key, maxKeyLen, lipgloss.Left) + ":")
		lines = append(lines, fmt.Sprintf("%s %s", keyStyled, pairs[key]))
	}
	return strings.Join(lines, "\n")
}
