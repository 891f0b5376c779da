package runner

import (
	"context"
	"fmt"
	"time"

	"canvass/internal/agent"
	"canvass/internal/archive"
	"canvass/internal/question"
	"canvass/internal/sheet"
	"canvass/internal/survey"
)

// SessionParams configures one survey session for a connected call.
type SessionParams struct {
	Catalog             question.Catalog
	RowIndex            int
	Phone               string
	Instructions        string
	ClosingInstructions string
	MaxTurns            int
}

// SessionDependencies carries the collaborators of a survey session.
type SessionDependencies struct {
	Provider   agent.Provider
	Listener   agent.Listener
	Speaker    agent.Speaker
	Sheet      *sheet.Store
	Archive    *archive.Store
	CampaignID string
	Now        func() time.Time
}

// SessionResult reports how a survey session ended.
type SessionResult struct {
	Saved    bool
	Complete bool
	Answers  map[string]string
	Status   string
}

// RunSession drives one survey conversation to completion and persists the
// outcome. The model saves via its save tool; if the call ends first, the
// answers collected so far are written back with a failed status.
func RunSession(ctx context.Context, params SessionParams, deps SessionDependencies) (SessionResult, error) {
	engine, err := survey.New(params.Catalog)
	if err != nil {
		return SessionResult{}, fmt.Errorf("build engine: %w", err)
	}
	session := agent.NewSession(engine, params.Instructions, params.ClosingInstructions)

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	writer := &resultWriter{
		sheet:      deps.Sheet,
		archive:    deps.Archive,
		campaignID: deps.CampaignID,
		rowIndex:   params.RowIndex,
		phone:      params.Phone,
		now:        now,
		startedAt:  now(),
	}
	executor := agent.SurveyExecutor{Session: session, Saver: writer}

	if err := agent.RunLoop(ctx, session, deps.Provider, executor, deps.Listener, deps.Speaker, params.MaxTurns); err != nil {
		return SessionResult{}, err
	}

	if !writer.saved {
		export := engine.Export()
		if err := writer.persist(ctx, agent.SessionExport{Answers: export.Answers, Complete: export.Complete}, sheet.StatusFailed); err != nil {
			return SessionResult{}, err
		}
		return SessionResult{
			Complete: export.Complete,
			Answers:  export.Answers,
			Status:   sheet.StatusFailed,
		}, nil
	}

	export := engine.Export()
	return SessionResult{
		Saved:    true,
		Complete: export.Complete,
		Answers:  export.Answers,
		Status:   sheet.StatusCompleted,
	}, nil
}

// resultWriter persists a session's answers to the sheet and the archive.
type resultWriter struct {
	sheet      *sheet.Store
	archive    *archive.Store
	campaignID string
	rowIndex   int
	phone      string
	now        func() time.Time
	startedAt  time.Time
	saved      bool
}

// Save implements agent.ResultSaver for the save_survey tool.
func (w *resultWriter) Save(ctx context.Context, export agent.SessionExport) error {
	if err := w.persist(ctx, export, sheet.StatusCompleted); err != nil {
		return err
	}
	w.saved = true
	return nil
}

func (w *resultWriter) persist(ctx context.Context, export agent.SessionExport, status string) error {
	answersJSON, err := survey.MarshalAnswers(survey.Export{Answers: export.Answers, Complete: export.Complete})
	if err != nil {
		return err
	}
	if err := w.sheet.SaveResult(w.rowIndex, answersJSON, status); err != nil {
		return err
	}
	if w.archive == nil {
		return nil
	}
	_, err = w.archive.InsertSession(ctx, archive.SessionRecord{
		CampaignID: w.campaignID,
		RowIndex:   w.rowIndex,
		Phone:      w.phone,
		Status:     status,
		Complete:   export.Complete,
		StartedAt:  w.startedAt,
		FinishedAt: w.now(),
		Answers:    export.Answers,
	})
	if err != nil {
		return err
	}
	return nil
}
