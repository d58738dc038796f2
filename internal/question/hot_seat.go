package question

import "math/rand"

// HotSeatQuestion is one rung of the money ladder. Ordered[0] is the
// canonically correct answer.
type HotSeatQuestion struct {
	Question

	// Index is the money-ladder position, 0..14.
	Index int
}

func NewHotSeat(text string, ordered []string, index int, rng *rand.Rand) *HotSeatQuestion {
	return &HotSeatQuestion{Question: newQuestion(text, ordered, rng), Index: index}
}

func (q *HotSeatQuestion) AnswerIsCorrect(choice int) bool {
	return q.ValidChoice(choice) && q.Shuffled[choice] == q.Ordered[0]
}

// CorrectChoiceIndex returns the shuffled index holding the correct answer.
func (q *HotSeatQuestion) CorrectChoiceIndex() int {
	for i, c := range q.Shuffled {
		if c == q.Ordered[0] {
			return i
		}
	}
	return -1
}
