package scoring

import (
	"sort"
	"strings"

	"testgenz-result-service/internal/domain"
)

// hybridThreshold is the maximum primary/secondary gap that still yields a
// hybrid persona.
const hybridThreshold = 2

// TallyAnswers counts option letters across the answer sequence. Every letter
// of the alphabet gets a bucket, so the tally always has four entries. A
// letter outside the alphabet matches no bucket and is not counted; the
// collector rejects such answers up front, so this path only fires for
// sequences handed in directly.
func TallyAnswers(answers []domain.Answer) domain.ScoreTally {
	tally := make(domain.ScoreTally, len(domain.OptionLetters))
	for _, letter := range domain.OptionLetters {
		tally[letter] = 0
	}
	for _, answer := range answers {
		if _, ok := tally[answer.OptionLetter]; ok {
			tally[answer.OptionLetter]++
		}
	}
	return tally
}

// Classify derives the persona outcome from a tally. Letters are ranked by
// descending count; ties keep the declared A,B,C,D order, so the result is
// deterministic even when every count is zero. The hybrid identifier is the
// top two letters sorted alphabetically and concatenated, which makes
// "B then A" and "A then B" produce the same identifier.
func Classify(tally domain.ScoreTally) domain.Classification {
	letters := make([]string, len(domain.OptionLetters))
	copy(letters, domain.OptionLetters)
	sort.SliceStable(letters, func(i, j int) bool {
		return tally[letters[i]] > tally[letters[j]]
	})

	c := domain.Classification{Primary: letters[0], Secondary: letters[1]}
	if tally[c.Primary]-tally[c.Secondary] <= hybridThreshold {
		pair := []string{c.Primary, c.Secondary}
		sort.Strings(pair)
		c.HybridID = strings.Join(pair, "")
	}
	return c
}

// ScoreCategorical runs the full categorical pipeline: tally, then classify.
// Pure function of its input.
func ScoreCategorical(answers []domain.Answer) (domain.ScoreTally, domain.Classification) {
	tally := TallyAnswers(answers)
	return tally, Classify(tally)
}
