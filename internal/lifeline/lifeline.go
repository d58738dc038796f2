// Package lifeline implements the three one-shot assist mechanics a hot-seat
// player can invoke: ask the audience, phone a friend, and fifty-fifty.
package lifeline

import (
	"github.com/partyquiz/hotseat-backend/internal/question"
)

type Kind string

const (
	KindAskTheAudience Kind = "askTheAudience"
	KindPhoneAFriend   Kind = "phoneAFriend"
	KindFiftyFifty     Kind = "fiftyFifty"
)

// Kinds lists every lifeline in presentation order.
var Kinds = []Kind{KindAskTheAudience, KindPhoneAFriend, KindFiftyFifty}

func ValidKind(k Kind) bool {
	switch k {
	case KindAskTheAudience, KindPhoneAFriend, KindFiftyFifty:
		return true
	}
	return false
}

// base carries the one-shot flag and the question the lifeline was invoked
// against. Used never resets within a round.
type base struct {
	Used     bool
	Question *question.HotSeatQuestion
}

func (b *base) use(q *question.HotSeatQuestion) bool {
	if b.Used {
		return false
	}
	b.Used = true
	b.Question = q
	return true
}

func (b *base) boundTo(questionIndex int) bool {
	return b.Used && b.Question != nil && b.Question.Index == questionIndex
}
