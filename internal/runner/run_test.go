package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"canvass/internal/dialer"
)

func writeSheetFixture(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey_data.csv")
	content := "PhoneNumber,Name,Answer,Status\n" + rows
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return path
}

// fakeDialer records call requests and fails selected phone numbers.
type fakeDialer struct {
	requests []dialer.CallRequest
	failFor  string
}

func (d *fakeDialer) StartCall(_ context.Context, request dialer.CallRequest) (dialer.Call, error) {
	d.requests = append(d.requests, request)
	if d.failFor != "" && request.PhoneNumber == d.failFor {
		return dialer.Call{}, errors.New("trunk unavailable")
	}
	return dialer.Call{DispatchID: "dispatch-" + request.PhoneNumber, Room: request.Room}, nil
}

// recordingObserver captures the observer callback sequence.
type recordingObserver struct {
	runID    string
	contacts int
	events   []CallEvent
	results  *Results
}

func (o *recordingObserver) OnRunStart(runID, _ string, contacts int) {
	o.runID = runID
	o.contacts = contacts
}

func (o *recordingObserver) OnCallEvent(event CallEvent) {
	o.events = append(o.events, event)
}

func (o *recordingObserver) OnRunEnd(results Results) {
	o.results = &results
}

func fixedRunID(id string) func() (string, error) {
	return func() (string, error) { return id, nil }
}

// TestRunDispatchesPendingRows verifies pending rows are dialed and
// completed rows are left alone.
func TestRunDispatchesPendingRows(t *testing.T) {
	path := writeSheetFixture(t,
		"+15550001,Ada,,\n"+
			"+15550002,Bob,\"{\"\"q1\"\":\"\"30\"\"}\",Completed\n"+
			"+15550003,Cam,,\n")
	dial := &fakeDialer{}
	results, err := Run(context.Background(), RunParams{
		Sheet:      path,
		AgentName:  "survey-agent",
		RoomPrefix: "survey-call-",
		TrunkID:    "trunk-1",
		Deps: RunDependencies{
			DialerFactory: func() (dialer.Dialer, error) { return dial, nil },
			RunID:         fixedRunID("run-1"),
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(dial.requests) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(dial.requests))
	}
	if dial.requests[0].Room != "survey-call-1" || dial.requests[1].Room != "survey-call-3" {
		t.Fatalf("unexpected rooms: %+v", dial.requests)
	}
	if dial.requests[0].TrunkID != "trunk-1" {
		t.Fatalf("expected trunk id on request, got %q", dial.requests[0].TrunkID)
	}

	if results.Summary.Dispatched != 2 || results.Summary.Complete != 1 || results.Summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", results.Summary)
	}
	if results.Calls[1].Status != CallSkipped {
		t.Fatalf("expected completed row to be skipped, got %s", results.Calls[1].Status)
	}
	if results.Calls[0].DispatchID != "dispatch-+15550001" {
		t.Fatalf("unexpected dispatch id: %q", results.Calls[0].DispatchID)
	}
}

// TestRunDryRunNeverDials verifies dry runs plan without a dialer.
func TestRunDryRunNeverDials(t *testing.T) {
	path := writeSheetFixture(t, "+15550001,Ada,,\n")
	results, err := Run(context.Background(), RunParams{
		Sheet:      path,
		RoomPrefix: "survey-call-",
		DryRun:     true,
		Deps:       RunDependencies{RunID: fixedRunID("run-1")},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results.Summary.Planned != 1 || results.Summary.Dispatched != 0 {
		t.Fatalf("unexpected summary: %+v", results.Summary)
	}
	if results.Calls[0].Room != "survey-call-1" {
		t.Fatalf("expected planned room, got %q", results.Calls[0].Room)
	}
}

// TestRunRecordsDialFailures verifies a failed dispatch does not stop the run.
func TestRunRecordsDialFailures(t *testing.T) {
	path := writeSheetFixture(t, "+15550001,Ada,,\n+15550002,Bob,,\n")
	dial := &fakeDialer{failFor: "+15550001"}
	results, err := Run(context.Background(), RunParams{
		Sheet:      path,
		RoomPrefix: "survey-call-",
		Deps: RunDependencies{
			DialerFactory: func() (dialer.Dialer, error) { return dial, nil },
			RunID:         fixedRunID("run-1"),
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results.Summary.Failed != 1 || results.Summary.Dispatched != 1 {
		t.Fatalf("unexpected summary: %+v", results.Summary)
	}
	if !strings.Contains(results.Calls[0].Error, "trunk unavailable") {
		t.Fatalf("expected dial error on result, got %q", results.Calls[0].Error)
	}
}

// TestRunEmitsObserverSequence verifies queued events precede dial events
// and the run ends with results.
func TestRunEmitsObserverSequence(t *testing.T) {
	path := writeSheetFixture(t, "+15550001,Ada,,\n")
	dial := &fakeDialer{}
	observer := &recordingObserver{}
	_, err := Run(context.Background(), RunParams{
		Sheet:      path,
		RoomPrefix: "survey-call-",
		Deps: RunDependencies{
			DialerFactory: func() (dialer.Dialer, error) { return dial, nil },
			RunID:         fixedRunID("run-7"),
			Observer:      observer,
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if observer.runID != "run-7" || observer.contacts != 1 {
		t.Fatalf("unexpected run start: %q %d", observer.runID, observer.contacts)
	}
	var kinds []CallEventType
	for _, event := range observer.events {
		kinds = append(kinds, event.Type)
	}
	want := []CallEventType{CallQueued, CallDialing, CallDispatched}
	if len(kinds) != len(want) {
		t.Fatalf("unexpected event sequence: %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected %s at position %d, got %v", want[i], i, kinds)
		}
	}
	if observer.results == nil || observer.results.Summary.Dispatched != 1 {
		t.Fatalf("expected run end results")
	}
}

// TestNewRunIDWithRandIsDeterministic verifies the id format for a fixed
// clock and random source.
func TestNewRunIDWithRandIsDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 30, 45, 0, time.UTC)
	id, err := NewRunIDWithRand(now, bytes.NewReader([]byte{1, 2, 3, 4, 5, 6}))
	if err != nil {
		t.Fatalf("new run id: %v", err)
	}
	if id != "20260801T123045Z-010203040506" {
		t.Fatalf("unexpected run id: %q", id)
	}
}
