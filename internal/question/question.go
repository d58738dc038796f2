package question

import (
	"math/rand"
)

// Question is a single trivia prompt with an authoritative answer ordering
// and a per-instance shuffled presentation order. The shuffled order defines
// the stable A..D indexes clients see; Ordered keeps the truth.
type Question struct {
	Text     string
	Ordered  []string
	Shuffled []string

	// Revealed grows as a prefix of Shuffled and never shrinks. Fifty-fifty
	// masking nils entries in place without reducing the count.
	Revealed []*string
}

// NumChoices is fixed for every question in the bank.
const NumChoices = 4

func newQuestion(text string, ordered []string, rng *rand.Rand) Question {
	shuffled := make([]string, len(ordered))
	copy(shuffled, ordered)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return Question{
		Text:     text,
		Ordered:  ordered,
		Shuffled: shuffled,
		Revealed: make([]*string, 0, len(shuffled)),
	}
}

// RevealChoice exposes the next not-yet-revealed shuffled choice.
// Past exhaustion it is a no-op.
func (q *Question) RevealChoice() {
	if len(q.Revealed) >= len(q.Shuffled) {
		return
	}
	v := q.Shuffled[len(q.Revealed)]
	q.Revealed = append(q.Revealed, &v)
}

// RevealAllChoices exposes the full shuffled list in one step.
func (q *Question) RevealAllChoices() {
	for len(q.Revealed) < len(q.Shuffled) {
		q.RevealChoice()
	}
}

func (q *Question) AllRevealed() bool {
	return len(q.Revealed) == len(q.Shuffled)
}

// ValidChoice reports whether i is a legal choice index for this question.
func (q *Question) ValidChoice(i int) bool {
	return i >= 0 && i < len(q.Shuffled)
}

// ChoiceVisible reports whether choice i has been revealed and not masked.
func (q *Question) ChoiceVisible(i int) bool {
	return i >= 0 && i < len(q.Revealed) && q.Revealed[i] != nil
}

// MaskChoice nulls a revealed entry in place. The revealed count is preserved.
func (q *Question) MaskChoice(i int) {
	if i >= 0 && i < len(q.Revealed) {
		q.Revealed[i] = nil
	}
}

// RemainingChoiceIndexes returns the shuffled indexes still visible after
// any masking.
func (q *Question) RemainingChoiceIndexes() []int {
	remaining := make([]int, 0, len(q.Revealed))
	for i, c := range q.Revealed {
		if c != nil {
			remaining = append(remaining, i)
		}
	}
	return remaining
}
