package live

import (
	"time"

	"canvass/internal/runner"
)

// CallRow holds UI state for a single contact.
type CallRow struct {
	RowIndex   int
	Phone      string
	Name       string
	Status     runner.CallEventType
	Room       string
	DispatchID string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// StatusCounts aggregates contact counts by status bucket.
type StatusCounts struct {
	Queued     int
	Dialing    int
	Planned    int
	Dispatched int
	Failed     int
	Skipped    int
}

// State captures the live UI state for a campaign run.
type State struct {
	RunID     string
	Sheet     string
	Contacts  int
	StartedAt time.Time
	LastEvent string
	Rows      []CallRow
	Counts    StatusCounts
}
