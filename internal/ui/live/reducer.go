package live

import (
	"fmt"

	"canvass/internal/runner"
)

// Reduce applies one call event to the UI state.
func Reduce(state State, event runner.CallEvent) State {
	state = applyCallEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// applyCallEvent updates the row for the event's contact, appending it on
// first sight. Rows keep their arrival order.
func applyCallEvent(state State, event runner.CallEvent) State {
	position := -1
	for i := range state.Rows {
		if state.Rows[i].RowIndex == event.RowIndex {
			position = i
			break
		}
	}
	if position == -1 {
		state.Rows = append(state.Rows, CallRow{RowIndex: event.RowIndex})
		position = len(state.Rows) - 1
	}

	row := state.Rows[position]
	if row.Phone == "" {
		row.Phone = event.Phone
	}
	if row.Name == "" {
		row.Name = event.Name
	}
	row.Status = event.Type
	if event.Room != "" {
		row.Room = event.Room
	}
	if event.DispatchID != "" {
		row.DispatchID = event.DispatchID
	}
	if event.Error != "" {
		row.Error = event.Error
	}
	if event.Type == runner.CallDialing && row.StartedAt.IsZero() {
		row.StartedAt = event.EmittedAt
	}
	if isTerminalStatus(event.Type) && !event.EmittedAt.IsZero() {
		row.FinishedAt = event.EmittedAt
	}
	state.Rows[position] = row
	return state
}

// isTerminalStatus reports whether a status is final for a contact.
func isTerminalStatus(status runner.CallEventType) bool {
	switch status {
	case runner.CallDispatched, runner.CallFailed, runner.CallSkipped, runner.CallPlanned:
		return true
	default:
		return false
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []CallRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.CallQueued:
			counts.Queued++
		case runner.CallDialing:
			counts.Dialing++
		case runner.CallPlanned:
			counts.Planned++
		case runner.CallDispatched:
			counts.Dispatched++
		case runner.CallFailed:
			counts.Failed++
		case runner.CallSkipped:
			counts.Skipped++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.CallEvent) string {
	switch event.Type {
	case runner.CallDialing:
		return fmt.Sprintf("row %d dialing %s", event.RowIndex, event.Phone)
	case runner.CallDispatched:
		return fmt.Sprintf("row %d dispatched to %s", event.RowIndex, event.Room)
	case runner.CallFailed:
		return fmt.Sprintf("row %d failed: %s", event.RowIndex, event.Error)
	case runner.CallSkipped:
		return fmt.Sprintf("row %d already complete", event.RowIndex)
	case runner.CallPlanned:
		return fmt.Sprintf("row %d would dial %s", event.RowIndex, event.Phone)
	}
	return ""
}
