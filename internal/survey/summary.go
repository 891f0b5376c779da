package survey

import "strings"

// Summarize renders a deterministic progress report: answered records,
// skipped records, and the question to ask next. The text is rebuilt from
// record state alone so it can be re-injected as conversational context
// after every state change.
func (e *Engine) Summarize() string {
	var answered []string
	var skipped []string

	for i := range e.records {
		record := &e.records[i]
		line := "- " + record.ID + " (" + record.Prompt + ")"
		if len(record.Options) > 0 {
			line += "\n  Options: " + strings.Join(record.Options, ", ")
		}
		switch record.Status {
		case StatusAnswered:
			answered = append(answered, line+"\n  Answer: "+record.Answer)
		case StatusSkipped:
			skipped = append(skipped, line)
		}
	}

	summary := []string{"Survey Progress Summary:"}
	if len(answered) > 0 {
		summary = append(summary, "\nAnswered:")
		summary = append(summary, answered...)
	}
	if len(skipped) > 0 {
		summary = append(summary, "\nSkipped:")
		summary = append(summary, skipped...)
	}

	if current := e.advance(); current != nil {
		summary = append(summary, "\nAsk the following question:\n- "+current.ID+" ("+current.Prompt+")")
		if len(current.Options) > 0 {
			summary = append(summary, "  Options: "+strings.Join(current.Options, ", "))
		}
	}

	if len(answered) == 0 && len(skipped) == 0 {
		summary = append(summary, "\nNo responses yet.")
	}

	return strings.Join(summary, "\n")
}
