package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Listener yields transcribed respondent utterances from the call. It
// returns io.EOF when the call ends.
type Listener interface {
	NextUtterance(ctx context.Context) (string, error)
}

// Speaker delivers the agent's replies into the call.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// ErrTurnBudgetExceeded reports a conversation that ran past its turn limit
// without the survey being saved.
var ErrTurnBudgetExceeded = errors.New("conversation turn budget exceeded")

// RunLoop drives the conversation: speak the opening turn, then alternate
// respondent utterances with model turns, executing tool calls between
// rounds, until save_survey lands, the call ends, or the budget runs out.
func RunLoop(ctx context.Context, session *Session, provider Provider, executor SurveyExecutor, listener Listener, speaker Speaker, maxTurns int) error {
	if maxTurns <= 0 {
		maxTurns = 1
	}
	completions := 0

	saved, err := runModelRound(ctx, session, provider, executor, speaker, &completions, maxTurns)
	if err != nil || saved {
		return err
	}

	for {
		utterance, err := listener.NextUtterance(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		session.AppendUser(utterance)

		saved, err := runModelRound(ctx, session, provider, executor, speaker, &completions, maxTurns)
		if err != nil || saved {
			return err
		}
	}
}

// runModelRound asks the model for its next turn and executes tool calls
// until the model responds without one. Returns true once the survey has
// been saved.
func runModelRound(ctx context.Context, session *Session, provider Provider, executor SurveyExecutor, speaker Speaker, completions *int, maxTurns int) (bool, error) {
	for {
		if *completions >= maxTurns {
			return false, ErrTurnBudgetExceeded
		}
		*completions++

		turn, err := provider.Complete(ctx, session.SystemContext(), session.History, toolsForPhase(session))
		if err != nil {
			return false, fmt.Errorf("model turn: %w", err)
		}
		session.AppendAssistant(turn.Message, turn.ToolCalls)
		if turn.Message != "" {
			if err := speaker.Say(ctx, turn.Message); err != nil {
				return false, fmt.Errorf("speak: %w", err)
			}
		}
		if len(turn.ToolCalls) == 0 {
			return false, nil
		}

		saved := false
		for _, call := range turn.ToolCalls {
			result := executor.Execute(ctx, call)
			session.AppendToolResult(call.ID, result.Content)
			if result.Err != nil {
				return false, result.Err
			}
			if result.Saved {
				saved = true
			}
		}
		if saved {
			return true, nil
		}
	}
}

func toolsForPhase(session *Session) []ToolDefinition {
	if session.Phase() == PhaseClosing {
		return ClosingToolDefinitions()
	}
	return SurveyToolDefinitions()
}
