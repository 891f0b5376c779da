package runner

import "time"

// CallResult records the final status of one contact in a run.
type CallResult struct {
	RowIndex   int
	Phone      string
	Name       string
	Status     CallEventType
	Room       string
	DispatchID string
	Error      string
}

// Summary aggregates call outcomes for a run.
type Summary struct {
	Contacts   int
	Complete   int
	Planned    int
	Dispatched int
	Failed     int
}

// Results is the outcome of a campaign run.
type Results struct {
	RunID      string
	Sheet      string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Calls      []CallResult
	Summary    Summary
}

// summarize counts call outcomes.
func summarize(calls []CallResult) Summary {
	summary := Summary{Contacts: len(calls)}
	for _, call := range calls {
		switch call.Status {
		case CallSkipped:
			summary.Complete++
		case CallPlanned:
			summary.Planned++
		case CallDispatched:
			summary.Dispatched++
		case CallFailed:
			summary.Failed++
		}
	}
	return summary
}
