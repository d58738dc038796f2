package question

import (
	"math/rand"
	"testing"
)

func fixed(ordered, shuffled []string) Question {
	return Question{
		Text:     "q",
		Ordered:  ordered,
		Shuffled: shuffled,
		Revealed: make([]*string, 0, len(shuffled)),
	}
}

func TestRevealChoice_GrowsPrefixAndStopsAtExhaustion(t *testing.T) {
	q := fixed([]string{"a", "b", "c", "d"}, []string{"b", "d", "a", "c"})

	for want := 1; want <= 4; want++ {
		q.RevealChoice()
		if len(q.Revealed) != want {
			t.Fatalf("after reveal %d: len=%d", want, len(q.Revealed))
		}
		if *q.Revealed[want-1] != q.Shuffled[want-1] {
			t.Fatalf("revealed %q, want %q", *q.Revealed[want-1], q.Shuffled[want-1])
		}
	}

	q.RevealChoice() // past exhaustion: no-op
	if len(q.Revealed) != 4 {
		t.Fatalf("reveal past exhaustion grew list to %d", len(q.Revealed))
	}
}

func TestRevealAllChoices(t *testing.T) {
	q := fixed([]string{"a", "b", "c", "d"}, []string{"b", "d", "a", "c"})
	q.RevealAllChoices()
	if !q.AllRevealed() {
		t.Fatalf("expected all revealed")
	}
}

func TestMaskChoice_PreservesCountAndRemainingIndexes(t *testing.T) {
	q := fixed([]string{"a", "b", "c", "d"}, []string{"b", "d", "a", "c"})
	q.RevealAllChoices()

	q.MaskChoice(0)
	q.MaskChoice(3)

	if len(q.Revealed) != 4 {
		t.Fatalf("masking changed revealed count: %d", len(q.Revealed))
	}
	remaining := q.RemainingChoiceIndexes()
	if len(remaining) != 2 || remaining[0] != 1 || remaining[1] != 2 {
		t.Fatalf("remaining = %v, want [1 2]", remaining)
	}
	if q.ChoiceVisible(0) || !q.ChoiceVisible(1) {
		t.Fatalf("visibility wrong after masking")
	}
}

func TestFastestFingerScore(t *testing.T) {
	q := &FastestFingerQuestion{
		Question: fixed(
			[]string{"W", "J", "A", "L"},
			[]string{"J", "W", "L", "A"},
		),
	}

	cases := []struct {
		name   string
		answer []int
		want   int
	}{
		{name: "perfect ordering", answer: []int{1, 0, 3, 2}, want: 4},
		{name: "two positional matches", answer: []int{1, 2, 3, 0}, want: 2},
		{name: "empty answer", answer: nil, want: 0},
		{name: "invalid index stops scoring", answer: []int{1, 9, 3, 2}, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := q.Score(tc.answer); got != tc.want {
				t.Fatalf("Score(%v) = %d, want %d", tc.answer, got, tc.want)
			}
		})
	}
}

func TestHotSeatCorrectness(t *testing.T) {
	q := &HotSeatQuestion{
		Question: fixed(
			[]string{"right", "w1", "w2", "w3"},
			[]string{"w2", "right", "w3", "w1"},
		),
		Index: 3,
	}

	if q.CorrectChoiceIndex() != 1 {
		t.Fatalf("CorrectChoiceIndex = %d, want 1", q.CorrectChoiceIndex())
	}
	if !q.AnswerIsCorrect(1) {
		t.Fatalf("choice 1 should be correct")
	}
	for _, c := range []int{0, 2, 3, -1, 4} {
		if q.AnswerIsCorrect(c) {
			t.Fatalf("choice %d should be incorrect", c)
		}
	}
}

func TestShuffle_IsPermutationAndVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ordered := []string{"a", "b", "c", "d"}

	seenAtZero := map[string]bool{}
	for i := 0; i < 500; i++ {
		q := NewHotSeat("q", ordered, 0, rng)

		counts := map[string]int{}
		for _, c := range q.Shuffled {
			counts[c]++
		}
		for _, c := range ordered {
			if counts[c] != 1 {
				t.Fatalf("shuffle is not a permutation: %v", q.Shuffled)
			}
		}
		seenAtZero[q.Shuffled[0]] = true
	}

	// A uniform Fisher-Yates puts every choice first eventually.
	if len(seenAtZero) != len(ordered) {
		t.Fatalf("shuffle never varied slot 0: %v", seenAtZero)
	}
}

func TestSafeHavenIndex(t *testing.T) {
	cases := []struct {
		lastCompleted int
		want          int
	}{
		{lastCompleted: -1, want: -1},
		{lastCompleted: 0, want: -1},
		{lastCompleted: 3, want: -1},
		{lastCompleted: 4, want: 4},
		{lastCompleted: 8, want: 4},
		{lastCompleted: 9, want: 9},
		{lastCompleted: 13, want: 9},
		{lastCompleted: 14, want: 14},
	}
	for _, tc := range cases {
		if got := SafeHavenIndex(tc.lastCompleted); got != tc.want {
			t.Fatalf("SafeHavenIndex(%d) = %d, want %d", tc.lastCompleted, got, tc.want)
		}
	}
}

func TestDifficultyForIndex(t *testing.T) {
	if DifficultyForIndex(0) != Easy || DifficultyForIndex(4) != Easy {
		t.Fatalf("indexes 0..4 should be easy")
	}
	if DifficultyForIndex(5) != Medium || DifficultyForIndex(9) != Medium {
		t.Fatalf("indexes 5..9 should be medium")
	}
	if DifficultyForIndex(10) != Hard || DifficultyForIndex(14) != Hard {
		t.Fatalf("indexes 10..14 should be hard")
	}
}
