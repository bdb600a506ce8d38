package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"testgenz-result-service/internal/domain"
	"testgenz-result-service/internal/infra/memory"
)

func TestCatalogCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		CatalogLoader: memory.NewStaticCatalogLoader(map[string]domain.Quiz{
			"data-sorcerer-test": sampleQuiz(),
		}),
	}
	catalog := NewCatalog(client, loader, time.Minute)

	quiz, err := catalog.ResolveQuiz(context.Background(), "data-sorcerer-test")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if quiz.ScoringType != domain.ScoringWeightedPillar || quiz.QuestionCount != 15 {
		t.Fatalf("unexpected quiz %+v", quiz)
	}

	// Second call should hit the redis hash, loader not incremented, and the
	// entry must survive the round trip intact.
	cached, err := catalog.ResolveQuiz(context.Background(), "data-sorcerer-test")
	if err != nil {
		t.Fatalf("resolve cached: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.ID != quiz.ID || cached.ScoringType != quiz.ScoringType || cached.QuestionCount != quiz.QuestionCount {
		t.Fatalf("cache round trip lost data: %+v vs %+v", cached, quiz)
	}
}

type countingLoader struct {
	memory.CatalogLoader
	calls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, slug string) (domain.Quiz, error) {
	l.calls++
	return l.CatalogLoader.LoadQuiz(ctx, slug)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:            "quiz-sorcerer",
		Slug:          "data-sorcerer-test",
		ScoringType:   domain.ScoringWeightedPillar,
		QuestionCount: 15,
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
