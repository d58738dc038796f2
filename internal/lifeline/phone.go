package lifeline

import (
	"math/rand"

	"github.com/partyquiz/hotseat-backend/internal/player"
	"github.com/partyquiz/hotseat-backend/internal/question"
)

// phoneEliminationChance is indexed by ladder position (plus one spare slot
// past the top): the chance the simulated friend mentally rules out any
// given choice. Easy questions are ruled out with certainty, the hardest
// barely better than a coin flip.
var phoneEliminationChance = [16]float64{
	1.0, 0.96, 0.93, 0.89,
	0.85, 0.82, 0.78, 0.75,
	0.71, 0.67, 0.64, 0.60,
	0.57, 0.53, 0.49, 0.46,
}

// PhoneAFriend lets the hot-seat player consult either a real contestant or
// a simulated friend for a suggested answer plus a confidence score.
type PhoneAFriend struct {
	base

	// FriendUsername is set only on the human path; the friend is always
	// resolved through the registry by this key.
	FriendUsername   string
	FriendChoice     *int
	FriendConfidence *float64

	rng *rand.Rand
}

func NewPhoneAFriend(rng *rand.Rand) *PhoneAFriend {
	return &PhoneAFriend{rng: rng}
}

// Execute marks the lifeline used against q. The friend is picked afterwards
// via PickFriend or PickAIFriend.
func (l *PhoneAFriend) Execute(q *question.HotSeatQuestion) bool {
	return l.use(q)
}

// PickFriend selects a real contestant as the friend. Their live choice, if
// any, becomes the suggestion, and they are flagged for display.
func (l *PhoneAFriend) PickFriend(friend *player.Player) {
	if friend == nil || l.Question == nil {
		return
	}
	l.FriendUsername = friend.Username
	friend.SelectedForPhoneAFriend = true
	if friend.HotSeatChoice != nil {
		c := *friend.HotSeatChoice
		l.FriendChoice = &c
	}
}

// PickAIFriend synthesizes a choice and a confidence score. The friend
// mentally rules out each visible choice with a per-difficulty chance; the
// ones left standing stay "uncertain" and drag confidence down. The spoken
// suggestion is a uniform draw over the choices fifty-fifty has not masked.
func (l *PhoneAFriend) PickAIFriend() {
	if l.Question == nil {
		return
	}
	remaining := l.Question.RemainingChoiceIndexes()
	if len(remaining) == 0 {
		return
	}

	uncertain := 0
	for range remaining {
		if l.rng.Float64() >= phoneEliminationChance[l.Question.Index] {
			uncertain++
		}
	}

	choice := remaining[l.rng.Intn(len(remaining))]
	confidence := 1 - float64(uncertain)/float64(len(remaining))

	l.FriendChoice = &choice
	l.FriendConfidence = &confidence
}

// MaybeSetFriendConfidence applies a confidence exactly once. When it lands,
// the suggestion is refreshed from a still-assigned human friend's live
// choice and the friend's display flag is cleared; rejected values leave the
// friend flagged and the call unresolved.
func (l *PhoneAFriend) MaybeSetFriendConfidence(confidence float64, friend *player.Player) {
	if l.FriendConfidence != nil {
		return
	}
	if confidence < 0 || confidence > 1 {
		return
	}
	if friend != nil && friend.Username == l.FriendUsername {
		if friend.HotSeatChoice != nil {
			c := *friend.HotSeatChoice
			l.FriendChoice = &c
		}
		friend.SelectedForPhoneAFriend = false
	}
	c := confidence
	l.FriendConfidence = &c
}

func (l *PhoneAFriend) HasResultsForQuestionIndex(i int) bool {
	return l.boundTo(i) && l.FriendChoice != nil && l.FriendConfidence != nil
}
