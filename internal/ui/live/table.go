package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the dashboard column layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "Row", Width: 5},
		{Title: "Phone", Width: 16},
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 28},
		{Title: "Room", Width: 22},
		{Title: "Elapsed", Width: 9},
	}
}

// columnsForWidth shrinks the name and status columns on narrow terminals.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	if width <= 0 {
		return columns
	}
	total := 0
	for _, column := range columns {
		total += column.Width
	}
	if width >= total {
		return columns
	}
	deficit := total - width
	for _, index := range []int{4, 3, 2} {
		take := min(deficit, columns[index].Width-8)
		if take > 0 {
			columns[index].Width -= take
			deficit -= take
		}
		if deficit <= 0 {
			break
		}
	}
	return columns
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatRowIndex(row.RowIndex),
			row.Phone,
			formatContactName(row.Name),
			formatStatus(row, noColor),
			formatRoom(row),
			formatRowDuration(row, now),
		})
	}
	return rows
}
