package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"testgenz-result-service/internal/domain"
)

// CatalogLoader resolves quiz slugs against the quizzes table.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadQuiz(ctx context.Context, slug string) (domain.Quiz, error) {
	var (
		id          string
		scoringType string
		count       int
	)
	err := l.pool.QueryRow(ctx,
		`SELECT id, scoring_type, question_count FROM quizzes WHERE slug=$1`, slug,
	).Scan(&id, &scoringType, &count)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz %q: %w", slug, err)
	}
	return domain.Quiz{
		ID:            id,
		Slug:          slug,
		ScoringType:   domain.ScoringType(scoringType),
		QuestionCount: count,
	}, nil
}
