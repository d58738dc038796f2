package question

// NumHotSeatQuestions is the length of the money ladder.
const NumHotSeatQuestions = 15

// Payouts holds the dollar value of each ladder rung.
var Payouts = [NumHotSeatQuestions]int{
	100,
	200,
	300,
	500,
	1000,
	2000,
	4000,
	8000,
	16000,
	32000,
	64000,
	125000,
	250000,
	500000,
	1000000,
}

// SafeHavens are ladder indexes that act as floors: a wrong answer can never
// drop winnings below the highest completed haven.
var SafeHavens = [...]int{4, 9, 14}

// SafeHavenIndex returns the highest safe-haven index at or below the last
// completed question index, or -1 when none has been reached.
func SafeHavenIndex(lastCompleted int) int {
	haven := -1
	for _, h := range SafeHavens {
		if h <= lastCompleted {
			haven = h
		}
	}
	return haven
}

// PayoutFor returns the dollar amount for a ladder index, 0 for -1.
func PayoutFor(index int) int {
	if index < 0 || index >= NumHotSeatQuestions {
		return 0
	}
	return Payouts[index]
}

// Difficulty buckets the bank draws hot-seat questions from.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func DifficultyForIndex(index int) Difficulty {
	switch {
	case index <= 4:
		return Easy
	case index <= 9:
		return Medium
	default:
		return Hard
	}
}
