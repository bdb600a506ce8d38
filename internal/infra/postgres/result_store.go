package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"testgenz-result-service/internal/domain"
)

type resultRow struct {
	bun.BaseModel `bun:"table:test_results"`

	ID        string          `bun:"id,pk,default:gen_random_uuid()"`
	UserID    string          `bun:"user_id"`
	QuizID    string          `bun:"quiz_id"`
	Scores    json.RawMessage `bun:"scores,type:jsonb"`
	Primary   sql.NullString  `bun:"primary_persona"`
	Secondary sql.NullString  `bun:"secondary_persona"`
	HybridID  sql.NullString  `bun:"hybrid_persona_id"`
	CreatedAt time.Time       `bun:"created_at,nullzero,default:now()"`
}

type answerRow struct {
	bun.BaseModel `bun:"table:test_answers"`

	ResultID     string `bun:"result_id"`
	QuestionID   string `bun:"question_id"`
	OptionLetter string `bun:"option_letter"`
}

// ResultStore writes results and answer trails to Postgres. The two inserts
// are intentionally separate statements, not one transaction: the caller
// treats the trail insert as best-effort.
type ResultStore struct {
	db *bun.DB
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) InsertResult(ctx context.Context, result domain.TestResult) (string, error) {
	var scores any = result.Tally
	if result.Pillars != nil {
		scores = result.Pillars
	}
	raw, err := json.Marshal(scores)
	if err != nil {
		return "", fmt.Errorf("marshal scores: %w", err)
	}

	row := &resultRow{
		UserID:    result.UserID,
		QuizID:    result.QuizID,
		Scores:    raw,
		Primary:   nullable(result.Primary),
		Secondary: nullable(result.Secondary),
		HybridID:  nullable(result.HybridID),
	}
	if _, err := s.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		return "", fmt.Errorf("insert result: %w", err)
	}
	return row.ID, nil
}

func (s *ResultStore) InsertAnswerTrail(ctx context.Context, records []domain.AnswerRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]answerRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, answerRow{
			ResultID:     record.ResultID,
			QuestionID:   record.QuestionID,
			OptionLetter: record.OptionLetter,
		})
	}
	if _, err := s.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("insert answer trail: %w", err)
	}
	return nil
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
