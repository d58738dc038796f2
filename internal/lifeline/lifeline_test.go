package lifeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partyquiz/hotseat-backend/internal/player"
	"github.com/partyquiz/hotseat-backend/internal/question"
)

func hotSeatQuestion(index int) *question.HotSeatQuestion {
	q := &question.HotSeatQuestion{
		Question: question.Question{
			Text:     "q",
			Ordered:  []string{"right", "w1", "w2", "w3"},
			Shuffled: []string{"w1", "right", "w3", "w2"},
		},
		Index: index,
	}
	q.RevealAllChoices()
	return q
}

func choice(c int) *int { return &c }

func TestAskTheAudience_BucketsAlwaysSumToAudienceCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for index := 0; index < question.NumHotSeatQuestions; index++ {
		for run := 0; run < 200; run++ {
			l := NewAskTheAudience(rng)
			q := hotSeatQuestion(index)
			require.True(t, l.Execute(q))

			sum := 0
			for _, v := range l.AIBuckets {
				sum += v
			}
			require.Equal(t, AudienceCount, sum, "index %d run %d: %v", index, run, l.AIBuckets)
		}
	}
}

func TestAskTheAudience_SingleWrongSlotMigratesHalfToCorrect(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for run := 0; run < 200; run++ {
		q := hotSeatQuestion(14)
		// Fifty-fifty already ran: only the correct choice (1) and one wrong
		// choice (3) are still visible.
		q.MaskChoice(0)
		q.MaskChoice(2)

		l := NewAskTheAudience(rng)
		require.True(t, l.Execute(q))

		sum := 0
		for _, v := range l.AIBuckets {
			sum += v
		}
		require.Equal(t, AudienceCount, sum)
		assert.Zero(t, l.AIBuckets[0])
		assert.Zero(t, l.AIBuckets[2])
		// Half the lone wrong slot's votes moved over, so it can never beat
		// the correct bucket.
		assert.GreaterOrEqual(t, l.AIBuckets[1], l.AIBuckets[3])
	}
}

func TestAskTheAudience_IsOneShot(t *testing.T) {
	l := NewAskTheAudience(rand.New(rand.NewSource(1)))
	q := hotSeatQuestion(0)
	require.True(t, l.Execute(q))
	assert.False(t, l.Execute(q))
	assert.True(t, l.HasResultsForQuestionIndex(0))
	assert.False(t, l.HasResultsForQuestionIndex(1))
}

func TestAskTheAudience_ContestantTallyIsIdempotent(t *testing.T) {
	l := NewAskTheAudience(rand.New(rand.NewSource(3)))
	contestants := []*player.Player{
		{Username: "a", HotSeatChoice: choice(1)},
		{Username: "b", HotSeatChoice: choice(1)},
		{Username: "c", HotSeatChoice: choice(3)},
		{Username: "d"}, // no vote yet
	}

	l.TallyContestantVotes(contestants)
	l.TallyContestantVotes(contestants)

	assert.Equal(t, [question.NumChoices]int{0, 2, 0, 1}, l.ContestantBuckets)
}

func TestAskTheAudience_WaitingToleratesOneStraggler(t *testing.T) {
	l := NewAskTheAudience(rand.New(rand.NewSource(3)))
	contestants := []*player.Player{
		{Username: "a", HotSeatChoice: choice(0)},
		{Username: "b"},
		{Username: "c"},
	}

	// 1 of 3 voted: still waiting.
	assert.True(t, l.WaitingOnContestants(contestants))

	// 2 of 3 voted: the poll proceeds with one straggler outstanding.
	contestants[1].HotSeatChoice = choice(2)
	assert.False(t, l.WaitingOnContestants(contestants))
}

func TestPhoneAFriend_AIPathOnEasiestQuestionIsFullyConfident(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	l := NewPhoneAFriend(rng)
	q := hotSeatQuestion(0)
	require.True(t, l.Execute(q))

	l.PickAIFriend()

	require.NotNil(t, l.FriendChoice)
	require.NotNil(t, l.FriendConfidence)
	// Elimination chance at index 0 is 1.0: nothing stays uncertain.
	assert.Equal(t, 1.0, *l.FriendConfidence)
	assert.True(t, q.ValidChoice(*l.FriendChoice))
	assert.True(t, l.HasResultsForQuestionIndex(0))
}

func TestPhoneAFriend_AIPathConfidenceInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for run := 0; run < 200; run++ {
		l := NewPhoneAFriend(rng)
		q := hotSeatQuestion(14)
		require.True(t, l.Execute(q))
		l.PickAIFriend()

		require.NotNil(t, l.FriendConfidence)
		assert.GreaterOrEqual(t, *l.FriendConfidence, 0.0)
		assert.LessOrEqual(t, *l.FriendConfidence, 1.0)
	}
}

func TestPhoneAFriend_HumanFriendFlow(t *testing.T) {
	l := NewPhoneAFriend(rand.New(rand.NewSource(2)))
	q := hotSeatQuestion(4)
	require.True(t, l.Execute(q))

	friend := &player.Player{Username: "pat", Active: true, HotSeatChoice: choice(2)}
	l.PickFriend(friend)

	assert.Equal(t, "pat", l.FriendUsername)
	assert.True(t, friend.SelectedForPhoneAFriend)
	require.NotNil(t, l.FriendChoice)
	assert.Equal(t, 2, *l.FriendChoice)
	assert.False(t, l.HasResultsForQuestionIndex(4), "no confidence yet")

	// Friend changes their mind before committing confidence.
	friend.HotSeatChoice = choice(1)
	l.MaybeSetFriendConfidence(0.8, friend)

	assert.Equal(t, 1, *l.FriendChoice, "choice refreshed from live answer")
	assert.Equal(t, 0.8, *l.FriendConfidence)
	assert.False(t, friend.SelectedForPhoneAFriend, "display flag cleared")
	assert.True(t, l.HasResultsForQuestionIndex(4))

	// Confidence applies once only.
	l.MaybeSetFriendConfidence(0.1, friend)
	assert.Equal(t, 0.8, *l.FriendConfidence)
}

func TestPhoneAFriend_RejectedConfidenceKeepsFriendFlagged(t *testing.T) {
	l := NewPhoneAFriend(rand.New(rand.NewSource(6)))
	q := hotSeatQuestion(2)
	require.True(t, l.Execute(q))

	friend := &player.Player{Username: "pat", Active: true, HotSeatChoice: choice(0)}
	l.PickFriend(friend)

	l.MaybeSetFriendConfidence(1.5, friend)
	assert.Nil(t, l.FriendConfidence)
	assert.True(t, friend.SelectedForPhoneAFriend, "flag stays until a confidence lands")

	l.MaybeSetFriendConfidence(-0.1, friend)
	assert.True(t, friend.SelectedForPhoneAFriend)

	l.MaybeSetFriendConfidence(0.4, friend)
	assert.Equal(t, 0.4, *l.FriendConfidence)
	assert.False(t, friend.SelectedForPhoneAFriend)
}

func TestFiftyFifty_MasksTwoDistinctWrongChoices(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	survivors := map[int]bool{}
	for run := 0; run < 200; run++ {
		l := NewFiftyFifty(rng)
		q := hotSeatQuestion(6)
		require.True(t, l.Execute(q))

		require.Len(t, l.RemovedChoices, 2)
		assert.NotEqual(t, l.RemovedChoices[0], l.RemovedChoices[1])
		assert.NotContains(t, l.RemovedChoices, 1, "correct choice must survive")

		remaining := q.RemainingChoiceIndexes()
		require.Len(t, remaining, 2)
		assert.Contains(t, remaining, 1)
		for _, i := range remaining {
			if i != 1 {
				survivors[i] = true
			}
		}
		assert.True(t, l.HasResultsForQuestionIndex(6))
	}

	// Every wrong choice survives sometimes; the pick is random.
	assert.Len(t, survivors, 3)
}

func TestFiftyFifty_IsOneShot(t *testing.T) {
	l := NewFiftyFifty(rand.New(rand.NewSource(8)))
	q := hotSeatQuestion(1)
	require.True(t, l.Execute(q))
	assert.False(t, l.Execute(q))
	assert.Len(t, q.RemainingChoiceIndexes(), 2)
}
