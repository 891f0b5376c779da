package survey

import (
	"fmt"
	"strings"

	"canvass/internal/question"
)

// Status is the lifecycle state of a question record. A record starts
// unasked and moves to exactly one of answered or skipped; it never reverts.
type Status string

const (
	StatusUnasked  Status = "unasked"
	StatusAnswered Status = "answered"
	StatusSkipped  Status = "skipped"
)

// Condition gates a record on another record's answer.
type Condition struct {
	TargetID      string
	ExpectedValue string
}

// Record is the mutable per-session instance of a catalog question.
type Record struct {
	ID        string
	Prompt    string
	Kind      string
	Options   []string
	Condition *Condition
	Answer    string
	Status    Status
}

// IntegrityError reports a structurally invalid catalog at engine
// construction: duplicate ids or records missing an id or prompt.
type IntegrityError struct {
	Issues []string
}

// Error formats integrity issues for display.
func (err *IntegrityError) Error() string {
	return "survey catalog integrity check failed: " + strings.Join(err.Issues, "; ")
}

// Engine owns one session's question records and the progression cursor.
// Records before the cursor are terminal; the cursor never moves backwards.
// An Engine is not safe for concurrent use; each call session owns its own.
type Engine struct {
	records []Record
	current int
}

// New builds an engine holding a private copy of the catalog's questions.
func New(catalog question.Catalog) (*Engine, error) {
	var issues []string
	seenIDs := map[string]struct{}{}
	for i, definition := range catalog.Questions {
		if strings.TrimSpace(definition.ID) == "" {
			issues = append(issues, fmt.Sprintf("questions[%d]: missing id", i))
		} else if _, exists := seenIDs[definition.ID]; exists {
			issues = append(issues, fmt.Sprintf("questions[%d]: duplicate id %q", i, definition.ID))
		} else {
			seenIDs[definition.ID] = struct{}{}
		}
		if strings.TrimSpace(definition.Prompt) == "" {
			issues = append(issues, fmt.Sprintf("questions[%d]: missing prompt", i))
		}
	}
	if len(issues) > 0 {
		return nil, &IntegrityError{Issues: issues}
	}

	records := make([]Record, 0, len(catalog.Questions))
	for _, definition := range catalog.Questions {
		record := Record{
			ID:      definition.ID,
			Prompt:  definition.Prompt,
			Kind:    definition.Kind,
			Options: append([]string(nil), definition.Options...),
			Status:  StatusUnasked,
		}
		if definition.Condition != nil {
			record.Condition = &Condition{
				TargetID:      definition.Condition.TargetID,
				ExpectedValue: definition.Condition.ExpectedValue,
			}
		}
		records = append(records, record)
	}
	return &Engine{records: records}, nil
}

// CurrentQuestion returns the first applicable unterminated record, skipping
// past records whose condition is not met. Skipped records stay skipped, so
// consecutive calls with no intervening mutation return the same record.
func (e *Engine) CurrentQuestion() (Record, bool) {
	record := e.advance()
	if record == nil {
		return Record{}, false
	}
	return copyRecord(record), true
}

// RecordAnswer commits text as the current record's answer and advances the
// cursor. Calling after the survey is complete is a benign no-op: the voice
// layer can deliver a trailing utterance after the last answer lands.
func (e *Engine) RecordAnswer(text string) {
	record := e.advance()
	if record == nil {
		return
	}
	record.Answer = text
	record.Status = StatusAnswered
	e.current++
}

// SkipQuestion marks the current record skipped without an answer and
// advances the cursor. No-op once the survey is complete.
func (e *Engine) SkipQuestion() {
	record := e.advance()
	if record == nil {
		return
	}
	record.Status = StatusSkipped
	e.current++
}

// IsComplete reports whether no applicable record remains.
func (e *Engine) IsComplete() bool {
	return e.advance() == nil
}

// Records returns a snapshot copy of all records in catalog order.
func (e *Engine) Records() []Record {
	records := make([]Record, 0, len(e.records))
	for i := range e.records {
		records = append(records, copyRecord(&e.records[i]))
	}
	return records
}

// advance moves the cursor past inapplicable records, marking each one
// skipped, and returns the record under the cursor or nil at the end.
func (e *Engine) advance() *Record {
	for e.current < len(e.records) {
		record := &e.records[e.current]
		if e.applicable(record) {
			return record
		}
		record.Status = StatusSkipped
		e.current++
	}
	return nil
}

// applicable evaluates a record's condition against the full record list.
// A malformed condition (empty target, unknown target, or empty expected
// value) falls back to asking: hiding a question on bad branch data would
// silently lose survey coverage.
func (e *Engine) applicable(record *Record) bool {
	if record.Condition == nil {
		return true
	}
	targetID := record.Condition.TargetID
	expected := record.Condition.ExpectedValue
	if targetID == "" || expected == "" {
		return true
	}
	for i := range e.records {
		target := &e.records[i]
		if target.ID == targetID {
			return target.Status == StatusAnswered && target.Answer == expected
		}
	}
	return true
}

func copyRecord(record *Record) Record {
	copied := *record
	copied.Options = append([]string(nil), record.Options...)
	if record.Condition != nil {
		condition := *record.Condition
		copied.Condition = &condition
	}
	return copied
}
