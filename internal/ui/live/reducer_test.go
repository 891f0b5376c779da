package live

import (
	"testing"
	"time"

	"canvass/internal/runner"
)

func callEvent(rowIndex int, kind runner.CallEventType, when time.Time) runner.CallEvent {
	return runner.CallEvent{
		RowIndex:  rowIndex,
		Phone:     "+15550001",
		Name:      "Ada",
		Type:      kind,
		EmittedAt: when,
	}
}

// TestReduceCallLifecycle verifies the dial status transitions are recorded.
func TestReduceCallLifecycle(t *testing.T) {
	start := time.Now()
	state := State{}
	state = Reduce(state, callEvent(1, runner.CallQueued, start))
	state = Reduce(state, callEvent(1, runner.CallDialing, start))
	done := callEvent(1, runner.CallDispatched, start.Add(300*time.Millisecond))
	done.Room = "survey-call-1"
	done.DispatchID = "dispatch-1"
	state = Reduce(state, done)

	row := state.Rows[0]
	if row.Status != runner.CallDispatched {
		t.Fatalf("expected dispatched status, got %s", row.Status)
	}
	if row.Room != "survey-call-1" || row.DispatchID != "dispatch-1" {
		t.Fatalf("expected room and dispatch id, got %+v", row)
	}
	if row.StartedAt != start || row.FinishedAt != start.Add(300*time.Millisecond) {
		t.Fatalf("expected dial timestamps, got %+v", row)
	}
	if state.Counts.Dispatched != 1 {
		t.Fatalf("expected dispatched count, got %+v", state.Counts)
	}
}

// TestReduceKeepsArrivalOrder verifies rows appear in event order, not
// sheet order.
func TestReduceKeepsArrivalOrder(t *testing.T) {
	now := time.Now()
	state := State{}
	state = Reduce(state, callEvent(3, runner.CallQueued, now))
	state = Reduce(state, callEvent(1, runner.CallQueued, now))
	state = Reduce(state, callEvent(3, runner.CallDialing, now))

	if len(state.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(state.Rows))
	}
	if state.Rows[0].RowIndex != 3 || state.Rows[1].RowIndex != 1 {
		t.Fatalf("unexpected row order: %+v", state.Rows)
	}
	if state.Counts.Dialing != 1 || state.Counts.Queued != 1 {
		t.Fatalf("unexpected counts: %+v", state.Counts)
	}
}

// TestReduceFailureCarriesError verifies dial failures keep their error text.
func TestReduceFailureCarriesError(t *testing.T) {
	state := State{}
	failed := callEvent(1, runner.CallFailed, time.Now())
	failed.Error = "trunk unavailable"
	state = Reduce(state, failed)

	if state.Rows[0].Error != "trunk unavailable" {
		t.Fatalf("expected error on row, got %+v", state.Rows[0])
	}
	if state.Counts.Failed != 1 {
		t.Fatalf("expected failed count, got %+v", state.Counts)
	}
	if state.LastEvent == "" {
		t.Fatalf("expected last event message")
	}
}

// TestReduceSkippedRowIsTerminal verifies already complete rows land in the
// skipped bucket.
func TestReduceSkippedRowIsTerminal(t *testing.T) {
	state := State{}
	state = Reduce(state, callEvent(2, runner.CallSkipped, time.Now()))
	if state.Counts.Skipped != 1 {
		t.Fatalf("expected skipped count, got %+v", state.Counts)
	}
	if !isTerminalStatus(state.Rows[0].Status) {
		t.Fatalf("expected terminal status")
	}
}
