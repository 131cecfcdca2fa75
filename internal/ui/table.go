package ui

import (
	"strings"
)

// tableColumn describes one column of a rendered table.
type tableColumn struct {
	title string
	width int
}

// renderTable renders a fixed-width table with a header row. The row at
// selected is highlighted; pass -1 for no selection. When rows is empty
// the empty placeholder is rendered instead.
func renderTable(styles Styles, cols []tableColumn, rows [][]string, selected int, empty string) string {
	var b strings.Builder

	var header strings.Builder
	for i, col := range cols {
		if i > 0 {
			header.WriteString("  ")
		}
		header.WriteString(padRight(col.title, col.width))
	}
	b.WriteString(styles.MutedText.Bold(true).Render(header.String()))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(styles.FaintText.Render(empty))
		b.WriteString("\n")
		return b.String()
	}

	for rowIdx, row := range rows {
		var line strings.Builder
		for i, col := range cols {
			if i > 0 {
				line.WriteString("  ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			line.WriteString(padRight(truncate(cell, col.width), col.width))
		}
		if rowIdx == selected {
			b.WriteString(styles.Selected.Render(line.String()))
		} else {
			b.WriteString(styles.Text.Render(line.String()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// clampSelection keeps a selection index inside [0, count).
func clampSelection(selected, count int) int {
	if count <= 0 {
		return 0
	}
	if selected < 0 {
		return 0
	}
	if selected >= count {
		return count - 1
	}
	return selected
}

// moveSelection applies a j/k/g/G navigation key to a selection index.
func moveSelection(selected, count int, keyName string) int {
	if count <= 0 {
		return 0
	}
	switch keyName {
	case "j", "down":
		selected++
	case "k", "up":
		selected--
	case "g", "home":
		selected = 0
	case "G", "end":
		selected = count - 1
	}
	return clampSelection(selected, count)
}
