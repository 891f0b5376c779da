package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
)

// Store is a session archive backed by one DuckDB database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive at path and applies the
// schema. An empty path opens an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Campaign identifies one survey campaign by its inputs.
type Campaign struct {
	Sheet         string
	QuestionsFile string
}

// SessionRecord is one finished call session ready for archiving.
type SessionRecord struct {
	CampaignID string
	RowIndex   int
	Phone      string
	Status     string
	Complete   bool
	StartedAt  time.Time
	FinishedAt time.Time
	Answers    map[string]string
}

// UpsertCampaign inserts a campaign keyed by the fingerprint of its inputs
// and returns its id. Re-running the same campaign reuses the existing row.
func (s *Store) UpsertCampaign(ctx context.Context, campaign Campaign, now time.Time) (string, error) {
	fingerprint, err := FingerprintJSON(map[string]string{
		"sheet":          campaign.Sheet,
		"questions_file": campaign.QuestionsFile,
	})
	if err != nil {
		return "", err
	}

	var existing string
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM campaigns WHERE fingerprint = ?`, fingerprint,
	).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("query campaign: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, fingerprint, sheet, questions_file, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, fingerprint, campaign.Sheet, campaign.QuestionsFile, now.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert campaign: %w", err)
	}
	return id, nil
}

// InsertSession archives one session and its answers, returning the
// session id. Answers are stored in question-id order for determinism.
func (s *Store) InsertSession(ctx context.Context, record SessionRecord) (string, error) {
	if record.CampaignID == "" {
		return "", errors.New("archive: campaign id is required")
	}
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, campaign_id, row_index, phone, status, complete, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, record.CampaignID, record.RowIndex, record.Phone, record.Status,
		record.Complete, record.StartedAt.UTC(), record.FinishedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	questionIDs := make([]string, 0, len(record.Answers))
	for questionID := range record.Answers {
		questionIDs = append(questionIDs, questionID)
	}
	sort.Strings(questionIDs)
	for position, questionID := range questionIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO answers (session_id, question_id, answer, position) VALUES (?, ?, ?, ?)`,
			id, questionID, record.Answers[questionID], position,
		)
		if err != nil {
			return "", fmt.Errorf("insert answer %s: %w", questionID, err)
		}
	}
	return id, nil
}

// Summary aggregates archive contents for reporting.
type Summary struct {
	Campaigns         int `json:"campaigns"`
	Sessions          int `json:"sessions"`
	CompletedSessions int `json:"completed_sessions"`
	Answers           int `json:"answers"`
}

// Summarize counts campaigns, sessions, and answers.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	var summary Summary
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM campaigns),
			(SELECT count(*) FROM sessions),
			(SELECT count(*) FROM sessions WHERE complete),
			(SELECT count(*) FROM answers)`)
	if err := row.Scan(&summary.Campaigns, &summary.Sessions, &summary.CompletedSessions, &summary.Answers); err != nil {
		return Summary{}, fmt.Errorf("summarize archive: %w", err)
	}
	return summary, nil
}
