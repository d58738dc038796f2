package hub

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/partyquiz/hotseat-backend/internal/bank"
	"github.com/partyquiz/hotseat-backend/internal/game"
	"github.com/partyquiz/hotseat-backend/internal/lobby"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("loading default bank: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, b, game.DefaultTiming(), rand.New(rand.NewSource(3)), zap.NewNop())
}

func createRoom(t *testing.T, h *Hub) Created {
	t.Helper()
	reply := make(chan Created, 1)
	h.Inbox() <- CreateRoom{Reply: reply}
	select {
	case c := <-reply:
		return c
	case <-time.After(time.Second):
		t.Fatalf("timed out creating room")
		return Created{} // unreachable
	}
}

func getRoom(t *testing.T, h *Hub, code string) *lobby.Lobby {
	t.Helper()
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- GetRoom{Code: code, Reply: reply}
	select {
	case lb := <-reply:
		return lb
	case <-time.After(time.Second):
		t.Fatalf("timed out getting room")
		return nil // unreachable
	}
}

func TestHub_CreateThenGet_SamePointer(t *testing.T) {
	h := newTestHub(t)

	created := createRoom(t, h)
	if len(created.Code) != CodeLength {
		t.Fatalf("want %d-char code, got %q", CodeLength, created.Code)
	}
	if created.Lobby == nil {
		t.Fatalf("created room has no lobby")
	}

	if got := getRoom(t, h, created.Code); got != created.Lobby {
		t.Fatalf("expected same lobby pointer")
	}
}

func TestHub_GetIsCaseAndSpaceInsensitive(t *testing.T) {
	h := newTestHub(t)
	created := createRoom(t, h)

	sloppy := "  " + created.Code + " "
	if got := getRoom(t, h, sloppy); got != created.Lobby {
		t.Fatalf("trimmed lookup should find the room")
	}
}

func TestHub_GetUnknownCode_Nil(t *testing.T) {
	h := newTestHub(t)
	if got := getRoom(t, h, "ZZZZ"); got != nil {
		t.Fatalf("unknown code should resolve to nil, got %v", got)
	}
}

func TestHub_CodesAreUnique(t *testing.T) {
	h := newTestHub(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		c := createRoom(t, h)
		if seen[c.Code] {
			t.Fatalf("duplicate room code %q", c.Code)
		}
		seen[c.Code] = true
	}
}

func TestHub_RemoveRoom(t *testing.T) {
	h := newTestHub(t)
	created := createRoom(t, h)

	h.Inbox() <- RemoveRoom{Code: created.Code}
	if got := getRoom(t, h, created.Code); got != nil {
		t.Fatalf("removed room still resolvable")
	}
}
