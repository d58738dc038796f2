package lifeline

import (
	"math"
	"math/rand"

	"github.com/partyquiz/hotseat-backend/internal/player"
	"github.com/partyquiz/hotseat-backend/internal/question"
)

// AudienceCount is the size of the simulated studio audience.
const AudienceCount = 100

// audienceSkew biases the simulated correct-vote fraction per ladder index:
// near-zero exponents push easy questions toward certainty, large ones push
// the hardest questions toward noise.
var audienceSkew = [question.NumHotSeatQuestions]float64{
	0.05, 0.1, 0.15, 0.2, 0.25,
	0.3, 0.4, 0.5, 0.6, 0.7,
	0.8, 0.9, 1.0, 1.2, 1.5,
}

// AskTheAudience simulates a 100-member audience vote and tallies real
// contestant votes alongside it.
type AskTheAudience struct {
	base

	AIBuckets         [question.NumChoices]int
	ContestantBuckets [question.NumChoices]int

	rng *rand.Rand
}

func NewAskTheAudience(rng *rand.Rand) *AskTheAudience {
	return &AskTheAudience{rng: rng}
}

// Execute runs the simulated vote against q. One-shot; a second call is a
// no-op returning false.
func (l *AskTheAudience) Execute(q *question.HotSeatQuestion) bool {
	if !l.use(q) {
		return false
	}
	l.simulate(q)
	return true
}

func (l *AskTheAudience) simulate(q *question.HotSeatQuestion) {
	correct := q.CorrectChoiceIndex()

	fraction := math.Pow(l.normalSample(), audienceSkew[q.Index])
	correctVotes := int(math.Round(fraction * AudienceCount))
	if correctVotes > AudienceCount {
		correctVotes = AudienceCount
	}

	wrongSlots := make([]int, 0, question.NumChoices-1)
	for _, i := range q.RemainingChoiceIndexes() {
		if i != correct {
			wrongSlots = append(wrongSlots, i)
		}
	}

	remainder := AudienceCount - correctVotes

	// With a single surviving wrong slot, half of its would-be votes migrate
	// to the correct answer so the lone wrong choice is not inflated.
	if len(wrongSlots) == 1 {
		half := remainder / 2
		l.AIBuckets[wrongSlots[0]] = half
		l.AIBuckets[correct] = correctVotes + (remainder - half)
		return
	}

	l.AIBuckets[correct] = correctVotes
	pool := remainder
	for i, slot := range wrongSlots {
		if i == len(wrongSlots)-1 {
			l.AIBuckets[slot] = pool
			break
		}
		votes := l.rng.Intn(pool + 1)
		l.AIBuckets[slot] = votes
		pool -= votes
	}
}

// normalSample draws a Box-Muller normal variate rescaled into [0,1],
// resampling the rare out-of-range tails.
func (l *AskTheAudience) normalSample() float64 {
	for {
		u1 := l.rng.Float64()
		u2 := l.rng.Float64()
		if u1 == 0 {
			continue
		}
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
		v := z/6 + 0.5
		if v >= 0 && v <= 1 {
			return v
		}
	}
}

// TallyContestantVotes rebuilds the contestant buckets from the current
// answers: one vote per contestant holding a valid choice, keyed by their
// final submitted choice so re-tallying stays idempotent.
func (l *AskTheAudience) TallyContestantVotes(contestants []*player.Player) {
	l.ContestantBuckets = [question.NumChoices]int{}
	for _, p := range contestants {
		if p.HotSeatChoice == nil {
			continue
		}
		if c := *p.HotSeatChoice; c >= 0 && c < question.NumChoices {
			l.ContestantBuckets[c]++
		}
	}
}

// WaitingOnContestants reports whether the poll should keep waiting. The
// threshold tolerates exactly one straggler: the poll closes once all but
// one eligible contestant have voted.
func (l *AskTheAudience) WaitingOnContestants(contestants []*player.Player) bool {
	voted := 0
	for _, p := range contestants {
		if p.HotSeatChoice != nil {
			voted++
		}
	}
	return voted < len(contestants)-1
}

func (l *AskTheAudience) HasResultsForQuestionIndex(i int) bool {
	return l.boundTo(i)
}
