package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"testgenz-result-service/internal/domain"
)

// ResultStore keeps results and answer trails in memory (demo mode and tests).
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.TestResult
	trails  map[string][]domain.AnswerRecord
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]domain.TestResult),
		trails:  make(map[string][]domain.AnswerRecord),
	}
}

func (s *ResultStore) InsertResult(_ context.Context, result domain.TestResult) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result.ID = uuid.NewString()
	result.CreatedAt = time.Now()
	s.results[result.ID] = result
	return result.ID, nil
}

func (s *ResultStore) InsertAnswerTrail(_ context.Context, records []domain.AnswerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		s.trails[record.ResultID] = append(s.trails[record.ResultID], record)
	}
	return nil
}

// GetResult returns a stored result, for tests and the demo read path.
func (s *ResultStore) GetResult(resultID string) (domain.TestResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[resultID]
	return result, ok
}

// Trail returns the answer records stored for a result.
func (s *ResultStore) Trail(resultID string) []domain.AnswerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trails[resultID]
}
