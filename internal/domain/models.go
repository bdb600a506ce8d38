package domain

import "time"

// ScoringType selects which scorer a quiz uses. The set is closed: adding a
// quiz type means adding a new variant, not changing the existing ones.
type ScoringType string

const (
	ScoringCategorical    ScoringType = "categorical"
	ScoringWeightedPillar ScoringType = "weighted_pillar"
)

// OptionLetters is the declared total order over the answer-option alphabet.
// Tie-breaking in the categorical classifier follows this order, never map
// iteration order.
var OptionLetters = []string{"A", "B", "C", "D"}

// PillarCodes lists the six RIASEC pillar codes in canonical order.
var PillarCodes = []string{"R", "I", "A", "S", "E", "C"}

// Quiz is a catalog entry: the stable slug users address a quiz by, the
// internal storage identifier, and the data needed to score an attempt.
type Quiz struct {
	ID            string      `json:"id"`
	Slug          string      `json:"slug"`
	ScoringType   ScoringType `json:"scoringType"`
	QuestionCount int         `json:"questionCount"`
}

// Answer is one recorded answer within an attempt. QuestionIndex is the
// zero-based position of the question in the presented sequence; the weighted
// scorer keys its mapping table by ordinal (index+1), not by QuestionID, so
// quiz content can be re-seeded without re-authoring the table.
type Answer struct {
	QuestionID    string `json:"questionId"`
	OptionLetter  string `json:"optionLetter"`
	QuestionIndex int    `json:"questionIndex"`
}

// ScoreTally counts how often each option letter was chosen across an attempt.
type ScoreTally map[string]int

// PillarScores accumulates weighted points per pillar code. All six codes are
// always present, defaulting to zero.
type PillarScores map[string]int

// Classification is the persona outcome derived from a categorical tally.
// HybridID is empty unless the top two counts are within the hybrid threshold.
type Classification struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	HybridID  string `json:"hybridId,omitempty"`
}

// TestResult is the aggregate persisted once per completed attempt. Exactly
// one of Tally/Pillars is set, matching the quiz's scoring type; the persona
// fields are only populated for categorical results.
type TestResult struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	QuizID    string       `json:"quizId"`
	Tally     ScoreTally   `json:"tally,omitempty"`
	Pillars   PillarScores `json:"pillars,omitempty"`
	Primary   string       `json:"primaryPersona,omitempty"`
	Secondary string       `json:"secondaryPersona,omitempty"`
	HybridID  string       `json:"hybridPersonaId,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// AnswerRecord is the persisted per-answer trail row, linked to its result.
type AnswerRecord struct {
	ResultID     string `json:"resultId"`
	QuestionID   string `json:"questionId"`
	OptionLetter string `json:"optionLetter"`
}

// ValidOptionLetter reports whether letter is part of the answer alphabet.
func ValidOptionLetter(letter string) bool {
	for _, l := range OptionLetters {
		if l == letter {
			return true
		}
	}
	return false
}
