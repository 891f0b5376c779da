package agent

import (
	"context"
	"fmt"
)

// ResultSaver persists a finished session's answers.
type ResultSaver interface {
	Save(ctx context.Context, export SessionExport) error
}

// SessionExport carries the final answer set to persistence.
type SessionExport struct {
	Answers  map[string]string
	Complete bool
}

// ToolResult is the outcome of one tool invocation, fed back to the model.
type ToolResult struct {
	Content string
	Saved   bool
	Err     error
}

// SurveyExecutor maps tool calls onto the session's engine and, for
// save_survey, onto the result saver.
type SurveyExecutor struct {
	Session *Session
	Saver   ResultSaver
}

// Execute dispatches one tool call. Unknown tools report an error result
// rather than failing the session; the model can recover on the next turn.
func (e SurveyExecutor) Execute(ctx context.Context, call ToolCall) ToolResult {
	switch call.Name {
	case ToolRecordAnswer:
		answer, err := call.Args.RequiredString("answer")
		if err != nil {
			return ToolResult{Content: "error: " + err.Error()}
		}
		e.Session.Engine.RecordAnswer(answer)
		e.Session.SyncPhase()
		return ToolResult{Content: "answer recorded"}
	case ToolSkipQuestion:
		e.Session.Engine.SkipQuestion()
		e.Session.SyncPhase()
		return ToolResult{Content: "question skipped"}
	case ToolSaveSurvey:
		export := e.Session.Engine.Export()
		err := e.Saver.Save(ctx, SessionExport{Answers: export.Answers, Complete: export.Complete})
		if err != nil {
			return ToolResult{Content: "error: " + err.Error(), Err: fmt.Errorf("save survey: %w", err)}
		}
		return ToolResult{Content: "survey saved", Saved: true}
	default:
		return ToolResult{Content: fmt.Sprintf("error: unknown tool %q", call.Name)}
	}
}
