package runner

import "time"

// CallEventType identifies a call status update for observers.
type CallEventType string

const (
	// CallQueued marks a pending contact known but not yet dialed.
	CallQueued CallEventType = "queued"
	// CallSkipped marks a contact whose sheet row is already complete.
	CallSkipped CallEventType = "skipped"
	// CallPlanned marks a contact that would be dialed in a dry run.
	CallPlanned CallEventType = "planned"
	// CallDialing marks a dispatch request in flight.
	CallDialing CallEventType = "dialing"
	// CallDispatched marks a call accepted by the telephony API.
	CallDispatched CallEventType = "dispatched"
	// CallFailed marks a dispatch failure.
	CallFailed CallEventType = "failed"
)

// CallEvent carries a single status update for a contact.
type CallEvent struct {
	RowIndex   int
	Phone      string
	Name       string
	Type       CallEventType
	Room       string
	DispatchID string
	Error      string
	EmittedAt  time.Time
}

// RunObserver receives campaign run events for UI or plain output.
type RunObserver interface {
	// OnRunStart signals the start of a campaign run.
	OnRunStart(runID string, sheetPath string, contacts int)
	// OnCallEvent delivers a contact status update.
	OnCallEvent(event CallEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}
