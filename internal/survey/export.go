package survey

import (
	"encoding/json"
	"fmt"
)

// Export is the final answer set handed to persistence.
type Export struct {
	Answers  map[string]string
	Complete bool
}

// Export collects answers from answered records only, keyed by question id.
func (e *Engine) Export() Export {
	answers := map[string]string{}
	for i := range e.records {
		record := &e.records[i]
		if record.Status == StatusAnswered {
			answers[record.ID] = record.Answer
		}
	}
	return Export{Answers: answers, Complete: e.IsComplete()}
}

// MarshalAnswers serializes an export's answers as a flat JSON object.
func MarshalAnswers(export Export) (string, error) {
	data, err := json.Marshal(export.Answers)
	if err != nil {
		return "", fmt.Errorf("marshal answers: %w", err)
	}
	return string(data), nil
}
