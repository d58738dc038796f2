package question

import "math/rand"

// FastestFingerQuestion is an ordering puzzle: contestants submit the four
// shuffled indexes in the order they believe matches Ordered.
type FastestFingerQuestion struct {
	Question
}

func NewFastestFinger(text string, ordered []string, rng *rand.Rand) *FastestFingerQuestion {
	return &FastestFingerQuestion{Question: newQuestion(text, ordered, rng)}
}

// Score counts exact positional matches: position i scores when the choice
// the contestant put in slot i is the i-th item of the true ordering.
// Correct-set membership alone earns nothing.
func (q *FastestFingerQuestion) Score(answer []int) int {
	score := 0
	for i, choice := range answer {
		if i >= len(q.Ordered) || !q.ValidChoice(choice) {
			break
		}
		if q.Shuffled[choice] == q.Ordered[i] {
			score++
		}
	}
	return score
}
