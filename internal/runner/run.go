package runner

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"canvass/internal/dialer"
	"canvass/internal/sheet"
)

// DialerFactory builds the dialer used to dispatch calls. Dry runs never
// invoke it.
type DialerFactory func() (dialer.Dialer, error)

// RunDependencies carries the injectable collaborators of a campaign run.
type RunDependencies struct {
	DialerFactory DialerFactory
	RunID         func() (string, error)
	Now           func() time.Time
	Observer      RunObserver
}

// RunParams configures one campaign run over a contact sheet.
type RunParams struct {
	Sheet      string
	AgentName  string
	RoomPrefix string
	TrunkID    string
	DryRun     bool
	Deps       RunDependencies
}

// Run walks the contact sheet and dispatches a call for every pending row.
// Rows that already carry an answer or status are left alone. A dry run
// reports the plan without touching the telephony API.
func Run(ctx context.Context, params RunParams) (Results, error) {
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}

	rows, err := sheet.NewStore(params.Sheet).Load()
	if err != nil {
		return Results{}, err
	}

	observer := params.Deps.Observer
	if observer != nil {
		observer.OnRunStart(runID, params.Sheet, len(rows))
	}
	emit := func(event CallEvent) {
		if observer == nil {
			return
		}
		event.EmittedAt = now()
		observer.OnCallEvent(event)
	}

	for _, row := range rows {
		if row.Complete() {
			continue
		}
		emit(CallEvent{RowIndex: row.Index, Phone: row.Phone, Name: row.Name, Type: CallQueued})
	}

	var dial dialer.Dialer
	if !params.DryRun {
		if params.Deps.DialerFactory == nil {
			return Results{}, fmt.Errorf("dialer factory is required")
		}
		dial, err = params.Deps.DialerFactory()
		if err != nil {
			return Results{}, err
		}
	}

	startedAt := now()
	calls := make([]CallResult, 0, len(rows))
	for _, row := range rows {
		result := CallResult{RowIndex: row.Index, Phone: row.Phone, Name: row.Name}
		switch {
		case row.Complete():
			result.Status = CallSkipped
		case params.DryRun:
			result.Status = CallPlanned
			result.Room = roomName(params.RoomPrefix, row.Index)
		default:
			result = dispatchCall(ctx, dial, params, row, emit)
		}
		emit(CallEvent{
			RowIndex:   result.RowIndex,
			Phone:      result.Phone,
			Name:       result.Name,
			Type:       result.Status,
			Room:       result.Room,
			DispatchID: result.DispatchID,
			Error:      result.Error,
		})
		calls = append(calls, result)
	}

	results := Results{
		RunID:      runID,
		Sheet:      params.Sheet,
		DryRun:     params.DryRun,
		StartedAt:  startedAt,
		FinishedAt: now(),
		Calls:      calls,
		Summary:    summarize(calls),
	}
	if observer != nil {
		observer.OnRunEnd(results)
	}
	return results, nil
}

// dispatchCall places one outbound call and reports its outcome.
func dispatchCall(ctx context.Context, dial dialer.Dialer, params RunParams, row sheet.Row, emit func(CallEvent)) CallResult {
	result := CallResult{RowIndex: row.Index, Phone: row.Phone, Name: row.Name}
	room := roomName(params.RoomPrefix, row.Index)
	emit(CallEvent{RowIndex: row.Index, Phone: row.Phone, Name: row.Name, Type: CallDialing, Room: room})

	call, err := dial.StartCall(ctx, dialer.CallRequest{
		Room:        room,
		AgentName:   params.AgentName,
		PhoneNumber: row.Phone,
		RowIndex:    row.Index,
		TrunkID:     params.TrunkID,
	})
	if err != nil {
		result.Status = CallFailed
		result.Room = room
		result.Error = err.Error()
		return result
	}
	result.Status = CallDispatched
	result.Room = call.Room
	result.DispatchID = call.DispatchID
	return result
}

// roomName derives the per-row room name for a call.
func roomName(prefix string, rowIndex int) string {
	return prefix + strconv.Itoa(rowIndex)
}

// ensureRunID resolves the run id generator, defaulting to NewRunID.
func ensureRunID(generate func() (string, error)) (string, error) {
	if generate == nil {
		generate = NewRunID
	}
	runID, err := generate()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return runID, nil
}
