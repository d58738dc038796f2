package bank

import (
	"math/rand"

	"github.com/partyquiz/hotseat-backend/internal/question"
)

// Session draws questions for one room. Each pool is consumed through a
// shuffle bag of remaining indexes, refilled when it runs dry, so a room
// sees every question once before any repeats.
type Session struct {
	bank *Bank
	rng  *rand.Rand

	fastestFingerBag []int
	hotSeatBags      map[question.Difficulty][]int
}

func NewSession(b *Bank, rng *rand.Rand) *Session {
	return &Session{
		bank:        b,
		rng:         rng,
		hotSeatBags: map[question.Difficulty][]int{},
	}
}

// NextFastestFinger constructs a fresh fastest-finger question.
func (s *Session) NextFastestFinger() *question.FastestFingerQuestion {
	e := s.bank.FastestFinger[s.drawFastestFinger()]
	return question.NewFastestFinger(e.Text, e.Choices, s.rng)
}

// NextHotSeat constructs the hot-seat question for a ladder index, drawn
// from that index's difficulty pool.
func (s *Session) NextHotSeat(index int) *question.HotSeatQuestion {
	d := question.DifficultyForIndex(index)
	e := s.bank.HotSeat[d][s.drawHotSeat(d)]
	return question.NewHotSeat(e.Text, e.Choices, index, s.rng)
}

func (s *Session) drawFastestFinger() int {
	if len(s.fastestFingerBag) == 0 {
		s.fastestFingerBag = s.refill(len(s.bank.FastestFinger))
	}
	idx := s.fastestFingerBag[len(s.fastestFingerBag)-1]
	s.fastestFingerBag = s.fastestFingerBag[:len(s.fastestFingerBag)-1]
	return idx
}

func (s *Session) drawHotSeat(d question.Difficulty) int {
	if len(s.hotSeatBags[d]) == 0 {
		s.hotSeatBags[d] = s.refill(len(s.bank.HotSeat[d]))
	}
	bag := s.hotSeatBags[d]
	idx := bag[len(bag)-1]
	s.hotSeatBags[d] = bag[:len(bag)-1]
	return idx
}

func (s *Session) refill(n int) []int {
	bag := make([]int, n)
	for i := range bag {
		bag[i] = i
	}
	s.rng.Shuffle(n, func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
	return bag
}
