package memory

import (
	"context"
	"testing"

	"testgenz-result-service/internal/domain"
)

func TestResultStoreRoundTrip(t *testing.T) {
	store := NewResultStore()

	id, err := store.InsertResult(context.Background(), domain.TestResult{
		UserID:  "u1",
		QuizID:  "quiz-starter",
		Tally:   domain.ScoreTally{"A": 2, "B": 1, "C": 1, "D": 0},
		Primary: "A",
	})
	if err != nil {
		t.Fatalf("insert result: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	if err := store.InsertAnswerTrail(context.Background(), []domain.AnswerRecord{
		{ResultID: id, QuestionID: "q1", OptionLetter: "A"},
		{ResultID: id, QuestionID: "q2", OptionLetter: "B"},
	}); err != nil {
		t.Fatalf("insert trail: %v", err)
	}

	result, ok := store.GetResult(id)
	if !ok || result.Primary != "A" || result.CreatedAt.IsZero() {
		t.Fatalf("unexpected stored result %+v ok=%v", result, ok)
	}
	if len(store.Trail(id)) != 2 {
		t.Fatalf("expected 2 trail records, got %d", len(store.Trail(id)))
	}
}
