package game

import (
	"github.com/partyquiz/hotseat-backend/internal/lifeline"
	"github.com/partyquiz/hotseat-backend/internal/player"
)

// EventType names every inbound event the machine understands. The strings
// are the wire contract with the transport layer.
type EventType string

const (
	EvtHostAttemptStartGame EventType = "hostAttemptStartGame"

	// Show-host step family. With no human host seated these are synthesized
	// on a timer instead of waiting for a click.
	EvtShowHostCueFastestFingerQuestion    EventType = "showHostCueFastestFingerQuestion"
	EvtShowHostRevealFastestFingerChoice   EventType = "showHostRevealFastestFingerChoice"
	EvtShowHostRevealFastestFingerResults  EventType = "showHostRevealFastestFingerResults"
	EvtShowHostCueHotSeatRules             EventType = "showHostCueHotSeatRules"
	EvtShowHostCueHotSeatQuestion          EventType = "showHostCueHotSeatQuestion"
	EvtShowHostRevealHotSeatChoice         EventType = "showHostRevealHotSeatChoice"
	EvtShowHostRevealHotSeatAnswer         EventType = "showHostRevealHotSeatAnswer"
	EvtShowHostStartNewRound               EventType = "showHostStartNewRound"

	EvtHotSeatChoose            EventType = "hotSeatChoose"
	EvtHotSeatFinalAnswer       EventType = "hotSeatFinalAnswer"
	EvtHotSeatUseLifeline       EventType = "hotSeatUseLifeline"
	EvtHotSeatConfirmLifeline   EventType = "hotSeatConfirmLifeline"
	EvtHotSeatPickPhoneAFriend  EventType = "hotSeatPickPhoneAFriend"
	EvtHotSeatWalkAway          EventType = "hotSeatWalkAway"

	EvtContestantFastestFingerChoose EventType = "contestantFastestFingerChoose"
	EvtContestantChoose              EventType = "contestantChoose"
	EvtContestantFinalAnswer         EventType = "contestantFinalAnswer"
	EvtContestantSetConfidence       EventType = "contestantSetConfidence"
)

// Event is the flat inbound payload. Username is stamped by the transport
// from the sender's session, never trusted from the body.
type Event struct {
	Type     EventType `json:"type"`
	Username string    `json:"username,omitempty"`

	Choice         *int          `json:"choice,omitempty"`
	Confidence     *float64      `json:"confidence,omitempty"`
	Lifeline       lifeline.Kind `json:"lifeline,omitempty"`
	FriendUsername string        `json:"friendUsername,omitempty"`
	UseAI          bool          `json:"useAI,omitempty"`
	GameOptions    *Options      `json:"gameOptions,omitempty"`
}

// Role gates who may send an event.
type Role int

const (
	RoleAny Role = iota
	RoleShowHost
	RoleHotSeat
	RoleContestant
)

type handlerSpec struct {
	role Role
	fn   func(*Game, Event) bool
}

// handlers is the dispatch table: one entry per event, carrying its role
// allow-list. Unknown events fall through as no-ops.
var handlers = map[EventType]handlerSpec{
	EvtHostAttemptStartGame: {RoleAny, (*Game).handleStartGame},

	EvtShowHostCueFastestFingerQuestion:   {RoleShowHost, (*Game).handleCueFastestFingerQuestion},
	EvtShowHostRevealFastestFingerChoice:  {RoleShowHost, (*Game).handleRevealFastestFingerChoice},
	EvtShowHostRevealFastestFingerResults: {RoleShowHost, (*Game).handleRevealFastestFingerResults},
	EvtShowHostCueHotSeatRules:            {RoleShowHost, (*Game).handleCueHotSeatRules},
	EvtShowHostCueHotSeatQuestion:         {RoleShowHost, (*Game).handleCueHotSeatQuestion},
	EvtShowHostRevealHotSeatChoice:        {RoleShowHost, (*Game).handleRevealHotSeatChoice},
	EvtShowHostRevealHotSeatAnswer:        {RoleShowHost, (*Game).handleRevealHotSeatAnswer},
	EvtShowHostStartNewRound:              {RoleShowHost, (*Game).handleStartNewRound},

	EvtHotSeatChoose:           {RoleHotSeat, (*Game).handleHotSeatChoose},
	EvtHotSeatFinalAnswer:      {RoleHotSeat, (*Game).handleHotSeatFinalAnswer},
	EvtHotSeatUseLifeline:      {RoleHotSeat, (*Game).handleUseLifeline},
	EvtHotSeatConfirmLifeline:  {RoleHotSeat, (*Game).handleConfirmLifeline},
	EvtHotSeatPickPhoneAFriend: {RoleHotSeat, (*Game).handlePickPhoneAFriend},
	EvtHotSeatWalkAway:         {RoleHotSeat, (*Game).handleWalkAway},

	EvtContestantFastestFingerChoose: {RoleContestant, (*Game).handleContestantFastestFingerChoose},
	EvtContestantChoose:              {RoleContestant, (*Game).handleContestantChoose},
	EvtContestantFinalAnswer:         {RoleContestant, (*Game).handleContestantFinalAnswer},
	EvtContestantSetConfidence:       {RoleContestant, (*Game).handleContestantSetConfidence},
}

// allowed checks the sender against an event's role gate. Synthetic
// auto-steps arrive with an empty username and stand in for the host only
// while no human occupies the role.
func (g *Game) allowed(role Role, ev Event) bool {
	switch role {
	case RoleAny:
		return true
	case RoleShowHost:
		if g.showHostUsername == "" {
			return ev.Username == ""
		}
		return ev.Username == g.showHostUsername
	case RoleHotSeat:
		return g.hotSeatUsername != "" && ev.Username == g.hotSeatUsername
	case RoleContestant:
		p := g.players.Get(ev.Username)
		return p != nil && p.Active && p.IsContestant()
	}
	return false
}

func (g *Game) playerFor(ev Event) *player.Player {
	return g.players.Get(ev.Username)
}
