package grade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/partyquiz/hotseat-backend/internal/player"
)

var gradeEpoch = time.Unix(5000, 0)

func contestant(name string, choice int, elapsed time.Duration) *player.Player {
	c := choice
	return &player.Player{
		Username:      name,
		Active:        true,
		HotSeatChoice: &c,
		HotSeatTime:   gradeEpoch.Add(elapsed),
	}
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func baseConfig(correct int) Config {
	return Config{
		QuestionIndex: 0,
		CorrectChoice: correct,
		HotSeatChoice: intp(correct),
		StartTime:     gradeEpoch,
	}
}

func TestGrade_TimeScaledPercent(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{name: "fastest tier earns ceiling", elapsed: 800 * time.Millisecond, want: 50},
		{name: "exactly one second earns ceiling", elapsed: time.Second, want: 50},
		{name: "midpoint interpolates", elapsed: 5500 * time.Millisecond, want: 35},
		{name: "ten seconds earns floor", elapsed: 10 * time.Second, want: 20},
		{name: "slower than window clamps to floor", elapsed: time.Minute, want: 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := contestant("ann", 2, tc.elapsed)
			Grade(baseConfig(2), []*player.Player{p})
			assert.Equal(t, tc.want, p.Money)
		})
	}
}

func TestGrade_WrongContestantEarnsNothing(t *testing.T) {
	p := contestant("ann", 1, time.Second)
	Grade(baseConfig(2), []*player.Player{p})
	assert.Zero(t, p.Money)
}

func TestGrade_HostAndHotSeatPlayerAreExcluded(t *testing.T) {
	host := contestant("host", 2, time.Second)
	host.IsShowHost = true
	featured := contestant("hot", 2, time.Second)
	featured.IsHotSeatPlayer = true

	Grade(baseConfig(2), []*player.Player{host, featured})

	assert.Zero(t, host.Money)
	assert.Zero(t, featured.Money)
}

func TestGrade_LifelineForcesCeilingRegardlessOfTiming(t *testing.T) {
	cfg := baseConfig(2)
	cfg.LifelineUsed = true

	p := contestant("ann", 2, 30*time.Second)
	Grade(cfg, []*player.Player{p})
	assert.Equal(t, 50, p.Money)
}

func TestGrade_WalkAwayForcesFloor(t *testing.T) {
	cfg := baseConfig(2)
	cfg.WalkedAway = true
	cfg.HotSeatChoice = nil

	p := contestant("ann", 2, time.Second)
	Grade(cfg, []*player.Player{p})
	assert.Equal(t, 20, p.Money)
}

func TestGrade_LifelinePrecedesWalkAway(t *testing.T) {
	cfg := baseConfig(2)
	cfg.WalkedAway = true
	cfg.HotSeatChoice = nil
	cfg.LifelineUsed = true

	p := contestant("ann", 2, 30*time.Second)
	Grade(cfg, []*player.Player{p})
	assert.Equal(t, 50, p.Money)
}

func TestGrade_PhonePersuasionAddsHalfConfidence(t *testing.T) {
	cfg := baseConfig(2)
	cfg.QuestionIndex = 1 // $200
	cfg.LifelineUsed = true
	cfg.PhoneChoice = intp(2)
	cfg.PhoneConfidence = floatp(0.8)

	p := contestant("ann", 2, time.Second)
	Grade(cfg, []*player.Player{p})

	// ceiling 0.5 + 0.8/2 = 0.9 of $200
	assert.Equal(t, 180, p.Money)
}

func TestGrade_AudiencePersuasionRaisesToAtLeast75Percent(t *testing.T) {
	cfg := baseConfig(2)
	cfg.LifelineUsed = true
	cfg.AudienceUsed = true

	p := contestant("ann", 2, 8*time.Second)
	Grade(cfg, []*player.Player{p})
	assert.Equal(t, 75, p.Money)
}

func TestGrade_WrongFinalAnswer_UnpersuadedContestantKeepsMoney(t *testing.T) {
	cfg := baseConfig(2)
	cfg.HotSeatChoice = intp(0) // featured player answered wrong

	matchedOnTheirOwn := contestant("ann", 0, time.Second)
	independent := contestant("bob", 2, time.Second)
	Grade(cfg, []*player.Player{matchedOnTheirOwn, independent})

	assert.Zero(t, matchedOnTheirOwn.Money, "no lifeline engaged, so no penalty")
	assert.Zero(t, independent.Money)
}

func TestGrade_WrongFinalAnswer_PhonePersuasionCostsConfidenceFraction(t *testing.T) {
	cfg := baseConfig(2)
	cfg.QuestionIndex = 4 // $1000
	cfg.HotSeatChoice = intp(0)
	cfg.LifelineUsed = true
	cfg.PhoneChoice = intp(0)
	cfg.PhoneConfidence = floatp(0.6)

	p := contestant("ann", 0, time.Second)
	Grade(cfg, []*player.Player{p})
	assert.Equal(t, -600, p.Money)
}

func TestGrade_WrongFinalAnswer_AudiencePersuasionCostsAtLeast75Percent(t *testing.T) {
	cfg := baseConfig(2)
	cfg.HotSeatChoice = intp(0)
	cfg.LifelineUsed = true
	cfg.AudienceUsed = true

	p := contestant("ann", 0, time.Second)
	p.Money = 500
	Grade(cfg, []*player.Player{p})
	assert.Equal(t, 500-75, p.Money)
}

func TestGrade_WrongFinalAnswer_AudienceFloorsPhonePenalty(t *testing.T) {
	cfg := baseConfig(2)
	cfg.HotSeatChoice = intp(0)
	cfg.LifelineUsed = true
	cfg.AudienceUsed = true
	cfg.PhoneChoice = intp(0)
	cfg.PhoneConfidence = floatp(0.3)

	p := contestant("ann", 0, time.Second)
	Grade(cfg, []*player.Player{p})

	// Phone confidence 0.3 is floored to 0.75 before negation.
	assert.Equal(t, -75, p.Money)
}

func TestGrade_NoChoiceMeansUngraded(t *testing.T) {
	p := &player.Player{Username: "idle", Active: true}
	Grade(baseConfig(2), []*player.Player{p})
	assert.Zero(t, p.Money)
}
