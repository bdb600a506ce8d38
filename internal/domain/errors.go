package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz slug has no catalog entry.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound is returned when acting on an attempt that was never started.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrAttemptComplete is returned when recording into a finished attempt.
	ErrAttemptComplete = errors.New("attempt already complete")
	// ErrAttemptIncomplete is returned when scoring is requested before the last answer.
	ErrAttemptIncomplete = errors.New("attempt is missing answers")
	// ErrDuplicateQuestion is returned when an attempt already holds an answer for a question.
	ErrDuplicateQuestion = errors.New("question already answered")
	// ErrInvalidOption is returned when an option letter is outside the answer alphabet.
	ErrInvalidOption = errors.New("invalid option letter")
	// ErrResultPersistence wraps a rejected result write. Fatal to the attempt.
	ErrResultPersistence = errors.New("result write failed")
	// ErrAnswerTrailPersistence wraps a rejected answer-trail write. Best-effort only.
	ErrAnswerTrailPersistence = errors.New("answer trail write failed")
)
