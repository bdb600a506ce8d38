package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"testgenz-result-service/internal/domain"
	"testgenz-result-service/internal/scoring"
)

// AttemptRepository abstracts how in-progress attempts are stored (in-memory, Redis, etc).
type AttemptRepository interface {
	Put(attempt *Attempt)
	Get(attemptID string) (*Attempt, bool)
	Delete(attemptID string)
}

// QuizCatalog resolves quiz slugs to catalog entries (from cache/backing store).
type QuizCatalog interface {
	ResolveQuiz(ctx context.Context, slug string) (domain.Quiz, error)
}

// ResultStore persists the aggregate result and the per-answer trail.
type ResultStore interface {
	InsertResult(ctx context.Context, result domain.TestResult) (string, error)
	InsertAnswerTrail(ctx context.Context, records []domain.AnswerRecord) error
}

// ResultService contains the core quiz-attempt use cases: collecting answers
// and turning a completed sequence into a persisted result.
type ResultService struct {
	attempts AttemptRepository
	catalog  QuizCatalog
	results  ResultStore
	pillars  *scoring.PillarTable
}

func NewResultService(attempts AttemptRepository, catalog QuizCatalog, results ResultStore, pillars *scoring.PillarTable) *ResultService {
	return &ResultService{attempts: attempts, catalog: catalog, results: results, pillars: pillars}
}

// StartAttempt opens a fresh attempt for a user on a quiz. The slug is
// resolved immediately so unknown quizzes fail before any answer is taken.
// Concurrent attempts by the same user are permitted and independent.
func (s *ResultService) StartAttempt(ctx context.Context, userID, quizSlug string) (*Attempt, error) {
	quiz, err := s.catalog.ResolveQuiz(ctx, quizSlug)
	if err != nil {
		return nil, err
	}
	attempt := NewAttempt(uuid.NewString(), userID, quizSlug, quiz.QuestionCount)
	s.attempts.Put(attempt)
	return attempt, nil
}

// SubmitAnswer records one answer into an attempt. When the final answer
// lands, the sequence is scored and persisted and the new result identifier
// is returned; the attempt is dropped either way once it completes.
func (s *ResultService) SubmitAnswer(ctx context.Context, attemptID string, answer domain.Answer) (Progress, string, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return Progress{}, "", domain.ErrAttemptNotFound
	}

	progress, complete, err := attempt.Record(answer)
	if err != nil {
		return progress, "", err
	}
	if !complete {
		return progress, "", nil
	}

	// A failure past this point is not resumable: the attempt is discarded
	// and the caller restarts the quiz-taking flow from the top.
	defer s.attempts.Delete(attemptID)

	resultID, err := s.ComputeAndPersistResult(ctx, attempt.Answers(), attempt.UserID(), attempt.QuizSlug())
	if err != nil {
		return progress, "", err
	}
	return progress, resultID, nil
}

// Back pops the last recorded answer so the previous question can be re-asked.
func (s *ResultService) Back(attemptID string) (Progress, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return Progress{}, domain.ErrAttemptNotFound
	}
	return attempt.Back()
}

// Abandon discards an attempt without scoring it.
func (s *ResultService) Abandon(attemptID string) {
	s.attempts.Delete(attemptID)
}

// ComputeAndPersistResult scores a completed answer sequence and persists it
// in two phases: the aggregate result first (fatal on failure), then the
// per-answer trail (best-effort; a failure is logged and swallowed because
// the trail is auxiliary analytics data, not required for the user to see
// their result). The returned identifier is the one generated by the result
// insert, unconditionally once that insert succeeds.
func (s *ResultService) ComputeAndPersistResult(ctx context.Context, answers []domain.Answer, userID, quizSlug string) (string, error) {
	quiz, err := s.catalog.ResolveQuiz(ctx, quizSlug)
	if err != nil {
		return "", err
	}
	if quiz.QuestionCount > 0 && len(answers) != quiz.QuestionCount {
		return "", fmt.Errorf("%w: got %d answers, quiz %q has %d questions",
			domain.ErrAttemptIncomplete, len(answers), quizSlug, quiz.QuestionCount)
	}

	result := domain.TestResult{UserID: userID, QuizID: quiz.ID}
	switch quiz.ScoringType {
	case domain.ScoringCategorical:
		tally, class := scoring.ScoreCategorical(answers)
		result.Tally = tally
		result.Primary = class.Primary
		result.Secondary = class.Secondary
		result.HybridID = class.HybridID
	case domain.ScoringWeightedPillar:
		result.Pillars = s.pillars.Score(answers)
	default:
		return "", fmt.Errorf("quiz %q has unknown scoring type %q", quizSlug, quiz.ScoringType)
	}

	resultID, err := s.results.InsertResult(ctx, result)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrResultPersistence, err)
	}

	records := make([]domain.AnswerRecord, 0, len(answers))
	for _, answer := range answers {
		records = append(records, domain.AnswerRecord{
			ResultID:     resultID,
			QuestionID:   answer.QuestionID,
			OptionLetter: answer.OptionLetter,
		})
	}
	if err := s.results.InsertAnswerTrail(ctx, records); err != nil {
		log.Printf("%v (result %s): %v", domain.ErrAnswerTrailPersistence, resultID, err)
	}

	return resultID, nil
}
