package lifeline

import (
	"math/rand"

	"github.com/partyquiz/hotseat-backend/internal/question"
)

// FiftyFifty masks two of the three incorrect revealed choices, leaving the
// correct answer and one randomly surviving wrong answer visible.
type FiftyFifty struct {
	base

	// RemovedChoices holds the shuffled indexes masked by Execute.
	RemovedChoices []int

	rng *rand.Rand
}

func NewFiftyFifty(rng *rand.Rand) *FiftyFifty {
	return &FiftyFifty{rng: rng}
}

// Execute masks every visible wrong choice except one uniformly random
// survivor. The correct choice always stays. Masked entries are nulled in
// place; the revealed count never shrinks.
func (l *FiftyFifty) Execute(q *question.HotSeatQuestion) bool {
	if !l.use(q) {
		return false
	}

	correct := q.CorrectChoiceIndex()
	wrong := make([]int, 0, question.NumChoices-1)
	for _, i := range q.RemainingChoiceIndexes() {
		if i != correct {
			wrong = append(wrong, i)
		}
	}
	if len(wrong) < 2 {
		return true
	}

	survivor := wrong[l.rng.Intn(len(wrong))]
	for _, i := range wrong {
		if i == survivor {
			continue
		}
		q.MaskChoice(i)
		l.RemovedChoices = append(l.RemovedChoices, i)
	}
	return true
}

// Removed reports whether choice was masked by this lifeline.
func (l *FiftyFifty) Removed(choice int) bool {
	for _, i := range l.RemovedChoices {
		if i == choice {
			return true
		}
	}
	return false
}

func (l *FiftyFifty) HasResultsForQuestionIndex(i int) bool {
	return l.boundTo(i) && len(l.RemovedChoices) == 2
}
