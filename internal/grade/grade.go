// Package grade computes the money awarded or deducted to contestants after
// each hot-seat question resolves. Grading is a pure function of the round
// configuration plus the players' recorded answers.
package grade

import (
	"math"
	"time"

	"github.com/partyquiz/hotseat-backend/internal/player"
	"github.com/partyquiz/hotseat-backend/internal/question"
)

const (
	// CeilingPercent is earned by the fastest correct contestants.
	CeilingPercent = 0.5
	// FloorPercent is earned by the slowest correct contestants.
	FloorPercent = 0.2
	// AudiencePersuasionPercent is the minimum stake for a contestant whose
	// vote followed the audience to the featured player's choice.
	AudiencePersuasionPercent = 0.75

	fastestAnswer = 1 * time.Second
	slowestAnswer = 10 * time.Second
)

// Config captures everything about the just-resolved question that grading
// depends on.
type Config struct {
	QuestionIndex int
	CorrectChoice int

	// HotSeatChoice is the featured player's final answer; nil on walk away.
	HotSeatChoice *int

	// StartTime is when answering opened; contestant speed is measured
	// against it.
	StartTime time.Time

	WalkedAway bool

	// LifelineUsed is true when any lifeline was engaged this question.
	LifelineUsed bool
	AudienceUsed bool

	PhoneChoice     *int
	PhoneConfidence *float64
}

// Grade mutates each contestant's money in place. The show host and the
// featured player are never graded.
func Grade(cfg Config, players []*player.Player) {
	payout := question.PayoutFor(cfg.QuestionIndex)
	featuredCorrect := cfg.HotSeatChoice != nil && *cfg.HotSeatChoice == cfg.CorrectChoice

	for _, p := range players {
		if !p.IsContestant() || p.HotSeatChoice == nil {
			continue
		}
		choice := *p.HotSeatChoice

		switch {
		case featuredCorrect || cfg.WalkedAway:
			if choice != cfg.CorrectChoice {
				continue
			}
			percent := timeScaledPercent(p.HotSeatTime.Sub(cfg.StartTime))
			if cfg.LifelineUsed {
				percent = CeilingPercent
			} else if cfg.WalkedAway {
				percent = FloorPercent
			}
			if persuadedByPhone(cfg, choice) {
				percent += *cfg.PhoneConfidence / 2
			}
			if persuadedByAudience(cfg, choice) && percent < AudiencePersuasionPercent {
				percent = AudiencePersuasionPercent
			}
			p.Money += roundDollars(percent, payout)

		default:
			// The featured player answered wrong. Contestants who merely
			// guessed wrong on their own lose nothing; trusting a lifeline
			// suggestion is what costs money, scaled by how confidently the
			// suggestion was given.
			phone := persuadedByPhone(cfg, choice)
			audience := persuadedByAudience(cfg, choice)
			if !phone && !audience {
				continue
			}
			penalty := 0.0
			if phone {
				penalty = *cfg.PhoneConfidence
			}
			if audience && penalty < AudiencePersuasionPercent {
				penalty = AudiencePersuasionPercent
			}
			p.Money -= roundDollars(penalty, payout)
		}
	}
}

// timeScaledPercent maps elapsed answer time onto [FloorPercent,
// CeilingPercent]: the first second earns the ceiling, ten seconds or more
// the floor, linear in between.
func timeScaledPercent(elapsed time.Duration) float64 {
	if elapsed <= fastestAnswer {
		return CeilingPercent
	}
	if elapsed >= slowestAnswer {
		return FloorPercent
	}
	window := float64(slowestAnswer - fastestAnswer)
	progress := float64(elapsed-fastestAnswer) / window
	return CeilingPercent - progress*(CeilingPercent-FloorPercent)
}

// persuadedByPhone: the friend suggested the featured player's final choice
// and this contestant voted along.
func persuadedByPhone(cfg Config, contestantChoice int) bool {
	if cfg.PhoneChoice == nil || cfg.PhoneConfidence == nil || cfg.HotSeatChoice == nil {
		return false
	}
	return *cfg.PhoneChoice == *cfg.HotSeatChoice && contestantChoice == *cfg.HotSeatChoice
}

// persuadedByAudience: the audience was polled and this contestant matched
// the featured player's final choice.
func persuadedByAudience(cfg Config, contestantChoice int) bool {
	if !cfg.AudienceUsed || cfg.HotSeatChoice == nil {
		return false
	}
	return contestantChoice == *cfg.HotSeatChoice
}

func roundDollars(percent float64, payout int) int {
	return int(math.Round(percent * float64(payout)))
}
