package player

import (
	"slices"
	"time"

	"github.com/partyquiz/hotseat-backend/internal/question"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

// Player is one connected participant. The connection itself lives in the
// transport layer; the registry only knows the username key.
type Player struct {
	Username string
	Money    int

	// Active flips false on disconnect. Answer state survives so the player
	// can rejoin under the same username mid-round.
	Active bool

	IsShowHost              bool
	IsHotSeatPlayer         bool
	SelectedForPhoneAFriend bool

	FastestFingerChoices []int
	FastestFingerTime    time.Time

	HotSeatChoice *int
	HotSeatTime   time.Time

	// AnswerLocked is set by a contestant's final-answer event; further
	// hot-seat choices are ignored until answers are cleared.
	AnswerLocked bool
}

// IsContestant reports whether the player holds no special role.
func (p *Player) IsContestant() bool {
	return !p.IsShowHost && !p.IsHotSeatPlayer
}

// ChooseFastestFinger appends a ranked choice. Invalid indexes, duplicates,
// and anything past the fourth accepted choice are rejected. The submission
// timestamp is recorded exactly once, when the fourth choice lands.
func (p *Player) ChooseFastestFinger(choice int) bool {
	if choice < 0 || choice >= question.NumChoices {
		return false
	}
	if len(p.FastestFingerChoices) >= question.NumChoices {
		return false
	}
	if slices.Contains(p.FastestFingerChoices, choice) {
		return false
	}
	p.FastestFingerChoices = append(p.FastestFingerChoices, choice)
	if len(p.FastestFingerChoices) == question.NumChoices {
		p.FastestFingerTime = timeNow()
	}
	return true
}

// HasAllFastestFingerChoices reports whether the full ranking was submitted.
func (p *Player) HasAllFastestFingerChoices() bool {
	return len(p.FastestFingerChoices) == question.NumChoices
}

// ChooseHotSeat records a hot-seat answer. The first call sets both choice
// and timestamp; a different later choice updates both, while repeating the
// same choice leaves the timestamp alone so re-clicks never cost time.
func (p *Player) ChooseHotSeat(choice int) bool {
	if choice < 0 || choice >= question.NumChoices {
		return false
	}
	if p.AnswerLocked {
		return false
	}
	if p.HotSeatChoice != nil && *p.HotSeatChoice == choice {
		return false
	}
	c := choice
	p.HotSeatChoice = &c
	p.HotSeatTime = timeNow()
	return true
}

// ClearAllAnswers resets every per-question answer field. Called between
// questions and between rounds.
func (p *Player) ClearAllAnswers() {
	p.FastestFingerChoices = nil
	p.FastestFingerTime = time.Time{}
	p.HotSeatChoice = nil
	p.HotSeatTime = time.Time{}
	p.AnswerLocked = false
}
