package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/litebase/memvfs/pkg/cli/styles"
)

// MaxCellWidth bounds how many characters of a value are rendered.
const MaxCellWidth = 48

// Table renders a static result table.
func Table(columns []string, rows [][]string) string {
	cells := make([][]string, len(rows))

	for i, row := range rows {
		cells[i] = make([]string, len(row))

		for j, value := range row {
			cells[i][j] = truncateString(value, MaxCellWidth)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.TableBorderColor)).
		Headers(columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeaderStyle
			}

			return styles.TableCellStyle
		})

	return t.Render()
}

// TabularList renders key/value pairs as aligned lines.
func TabularList(items [][2]string) string {
	width := 0

	for _, item := range items {
		width = max(width, lipgloss.Width(item[0]))
	}

	lines := make([]string, len(items))

	for i, item := range items {
		lines[i] = fmt.Sprintf(
			"%s  %s",
			styles.KeyStyle.Width(width).Render(item[0]),
			styles.ValueStyle.Render(item[1]),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
