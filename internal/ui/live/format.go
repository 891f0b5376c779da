package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"canvass/internal/runner"
)

// formatRowIndex formats a sheet row index for display.
func formatRowIndex(index int) string {
	if index < 10 {
		return "R0" + strconv.Itoa(index)
	}
	return "R" + strconv.Itoa(index)
}

// formatContactName truncates a contact name for display.
func formatContactName(name string) string {
	normalized := strings.Join(strings.Fields(name), " ")
	const limit = 24
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status cell for a row.
func formatStatus(row CallRow, noColor bool) string {
	label := statusLabel(row.Status)
	if row.Status == runner.CallFailed && row.Error != "" {
		label = label + " (" + truncateError(row.Error) + ")"
	}
	if noColor {
		return label
	}
	return statusStyle(row.Status).Render(label)
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.CallEventType) string {
	switch status {
	case runner.CallQueued:
		return "queued"
	case runner.CallDialing:
		return "dialing"
	case runner.CallPlanned:
		return "planned"
	case runner.CallDispatched:
		return "dispatched"
	case runner.CallFailed:
		return "failed"
	case runner.CallSkipped:
		return "skipped"
	default:
		return string(status)
	}
}

// truncateError shortens error text for the status cell.
func truncateError(text string) string {
	const limit = 40
	if len(text) <= limit {
		return text
	}
	return text[:limit-3] + "..."
}

// formatRowDuration returns elapsed or total dial time for a row.
func formatRowDuration(row CallRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatRoom returns the room cell, blank until a room is assigned.
func formatRoom(row CallRow) string {
	return row.Room
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.CallEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.CallDispatched:
		color = lipgloss.Color("42")
	case runner.CallFailed:
		color = lipgloss.Color("196")
	case runner.CallDialing:
		color = lipgloss.Color("33")
	case runner.CallPlanned:
		color = lipgloss.Color("220")
	case runner.CallQueued, runner.CallSkipped:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}
