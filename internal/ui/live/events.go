package live

import "canvass/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a campaign run.
	EventRunStart EventKind = iota
	// EventCall delivers a contact status update.
	EventCall
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind     EventKind
	RunID    string
	Sheet    string
	Contacts int
	Call     runner.CallEvent
}
