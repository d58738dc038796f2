package bank

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partyquiz/hotseat-backend/internal/question"
)

func TestDefaultBankIsValid(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, b.FastestFinger)
	for _, d := range []question.Difficulty{question.Easy, question.Medium, question.Hard} {
		assert.NotEmpty(t, b.HotSeat[d], "difficulty %s", d)
		for _, e := range b.HotSeat[d] {
			assert.Len(t, e.Choices, question.NumChoices)
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	good := `{
		"fastestFinger": [{"text":"order","choices":["1","2","3","4"]}],
		"easy":   [{"text":"e","choices":["a","b","c","d"]}],
		"medium": [{"text":"m","choices":["a","b","c","d"]}],
		"hard":   [{"text":"h","choices":["a","b","c","d"]}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.json"), []byte(good), 0o644))

	b, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, b.FastestFinger, 1)

	t.Run("empty dir fails", func(t *testing.T) {
		_, err := LoadDir(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("bad choice count fails", func(t *testing.T) {
		bad := t.TempDir()
		data := `{
			"fastestFinger": [{"text":"order","choices":["1","2","3"]}],
			"easy":   [{"text":"e","choices":["a","b","c","d"]}],
			"medium": [{"text":"m","choices":["a","b","c","d"]}],
			"hard":   [{"text":"h","choices":["a","b","c","d"]}]
		}`
		require.NoError(t, os.WriteFile(filepath.Join(bad, "bank.json"), []byte(data), 0o644))
		_, err := LoadDir(bad)
		assert.Error(t, err)
	})
}

func TestSession_ShuffleBagAvoidsRepeatsUntilExhausted(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)
	s := NewSession(b, rand.New(rand.NewSource(13)))

	pool := len(b.HotSeat[question.Easy])
	seen := map[string]int{}
	for i := 0; i < pool; i++ {
		q := s.NextHotSeat(0)
		seen[q.Text]++
	}
	for text, n := range seen {
		assert.Equal(t, 1, n, "question %q repeated before bag was exhausted", text)
	}

	// The bag refills after exhaustion instead of running out.
	q := s.NextHotSeat(0)
	assert.NotEmpty(t, q.Text)
}

func TestSession_DifficultyBuckets(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)
	s := NewSession(b, rand.New(rand.NewSource(3)))

	inPool := func(d question.Difficulty, text string) bool {
		for _, e := range b.HotSeat[d] {
			if e.Text == text {
				return true
			}
		}
		return false
	}

	assert.True(t, inPool(question.Easy, s.NextHotSeat(2).Text))
	assert.True(t, inPool(question.Medium, s.NextHotSeat(7).Text))
	assert.True(t, inPool(question.Hard, s.NextHotSeat(12).Text))

	ff := s.NextFastestFinger()
	assert.Len(t, ff.Shuffled, question.NumChoices)
}
