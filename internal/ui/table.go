package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// maxTableWidth keeps report tables readable on very wide terminals
const maxTableWidth = 140

// NewTable returns a bordered, width-limited table on a terminal and a plain
// borderless one otherwise, so CI logs stay greppable.
func NewTable(headers ...string) *table.Table {
	if !IsTerminal() {
		return table.New().
			Border(lipgloss.Border{}).
			StyleFunc(plainCellStyle).
			Headers(headers...)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		BorderColumn(true).
		StyleFunc(stripedCellStyle).
		Width(min(GetTerminalWidth(), maxTableWidth)).
		Headers(headers...)
}

func stripedCellStyle(row, col int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return TableHeaderStyle
	case row%2 == 0:
		return TableCellStyle
	default:
		return TableRowAltStyle
	}
}

func plainCellStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return TableHeaderStyle
	}
	return TableCellStyle
}
