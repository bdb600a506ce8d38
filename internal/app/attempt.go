package app

import (
	"sync"
	"time"

	"testgenz-result-service/internal/domain"
)

// Attempt collects the answers of one quiz attempt in question order. The
// quiz-taking session is the single writer: answers are appended one at a
// time, and only the most recent answer can be revised (the "go back"
// interaction pops it). Once the final answer lands the sequence is sealed
// and handed to scoring; a sealed attempt rejects further mutation.
type Attempt struct {
	id            string
	userID        string
	quizSlug      string
	questionCount int
	createdAt     time.Time
	now           func() time.Time

	mu      sync.Mutex
	answers []domain.Answer
	sealed  bool
}

// Progress reports how far an attempt has advanced.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// NewAttempt is exported for infrastructure layers that need to seed attempts.
func NewAttempt(id, userID, quizSlug string, questionCount int) *Attempt {
	return newAttemptWithClock(id, userID, quizSlug, questionCount, time.Now)
}

// NewAttemptWithClock is test-only for deterministic timestamps.
func NewAttemptWithClock(id, userID, quizSlug string, questionCount int, now func() time.Time) *Attempt {
	return newAttemptWithClock(id, userID, quizSlug, questionCount, now)
}

func newAttemptWithClock(id, userID, quizSlug string, questionCount int, now func() time.Time) *Attempt {
	return &Attempt{
		id:            id,
		userID:        userID,
		quizSlug:      quizSlug,
		questionCount: questionCount,
		createdAt:     now(),
		now:           now,
		answers:       make([]domain.Answer, 0, questionCount),
	}
}

func (a *Attempt) ID() string       { return a.id }
func (a *Attempt) UserID() string   { return a.userID }
func (a *Attempt) QuizSlug() string { return a.quizSlug }

// Record appends the next answer. It rejects letters outside the answer
// alphabet and questions already answered, and reports whether this was the
// final answer. Recording the final answer seals the attempt.
func (a *Attempt) Record(answer domain.Answer) (Progress, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sealed {
		return a.progressLocked(), false, domain.ErrAttemptComplete
	}
	if !domain.ValidOptionLetter(answer.OptionLetter) {
		return a.progressLocked(), false, domain.ErrInvalidOption
	}
	for _, existing := range a.answers {
		if existing.QuestionID == answer.QuestionID {
			return a.progressLocked(), false, domain.ErrDuplicateQuestion
		}
	}

	a.answers = append(a.answers, answer)
	if len(a.answers) == a.questionCount {
		a.sealed = true
	}
	return a.progressLocked(), a.sealed, nil
}

// Back pops the most recent answer so the question can be re-asked. Sealed
// attempts cannot go back.
func (a *Attempt) Back() (Progress, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sealed {
		return a.progressLocked(), domain.ErrAttemptComplete
	}
	if len(a.answers) > 0 {
		a.answers = a.answers[:len(a.answers)-1]
	}
	return a.progressLocked(), nil
}

// Progress reports the current answered/total counts.
func (a *Attempt) Progress() Progress {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progressLocked()
}

// Answers returns a copy of the recorded sequence.
func (a *Attempt) Answers() []domain.Answer {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Answer, len(a.answers))
	copy(out, a.answers)
	return out
}

// Sealed reports whether the final answer has been recorded.
func (a *Attempt) Sealed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sealed
}

func (a *Attempt) progressLocked() Progress {
	return Progress{Answered: len(a.answers), Total: a.questionCount}
}
