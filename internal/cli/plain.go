package cli

import (
	"fmt"
	"io"

	"canvass/internal/runner"
)

// plainObserver writes campaign progress as plain lines.
type plainObserver struct {
	out io.Writer
}

func (o *plainObserver) OnRunStart(runID, sheetPath string, contacts int) {
	fmt.Fprintf(o.out, "Run %s: %s (%d contacts)\n", runID, sheetPath, contacts)
}

func (o *plainObserver) OnCallEvent(event runner.CallEvent) {
	switch event.Type {
	case runner.CallDialing:
		fmt.Fprintf(o.out, "row %d: dialing %s\n", event.RowIndex, event.Phone)
	case runner.CallDispatched:
		fmt.Fprintf(o.out, "row %d: dispatched to %s (dispatch %s)\n", event.RowIndex, event.Room, event.DispatchID)
	case runner.CallFailed:
		fmt.Fprintf(o.out, "row %d: failed: %s\n", event.RowIndex, event.Error)
	case runner.CallSkipped:
		fmt.Fprintf(o.out, "row %d: already complete\n", event.RowIndex)
	case runner.CallPlanned:
		fmt.Fprintf(o.out, "row %d: would dial %s\n", event.RowIndex, event.Phone)
	}
}

func (o *plainObserver) OnRunEnd(results runner.Results) {
	summary := results.Summary
	if results.DryRun {
		fmt.Fprintf(o.out, "Planned %d calls (%d already complete)\n", summary.Planned, summary.Complete)
		return
	}
	fmt.Fprintf(o.out, "Dispatched %d, failed %d, already complete %d\n",
		summary.Dispatched, summary.Failed, summary.Complete)
}
