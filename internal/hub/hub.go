// Package hub is the actor that owns every live room: creation, lookup by
// room code, and teardown all serialize through its inbox.
package hub

import (
	"context"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/partyquiz/hotseat-backend/internal/bank"
	"github.com/partyquiz/hotseat-backend/internal/game"
	"github.com/partyquiz/hotseat-backend/internal/lobby"
	"github.com/partyquiz/hotseat-backend/internal/player"
)

// CodeLength is the length of a room code. The alphabet omits characters
// players confuse when reading a code off someone's screen.
const (
	CodeLength   = 4
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	Reply chan Created
}

type Created struct {
	Code  string
	Lobby *lobby.Lobby
}

type GetRoom struct {
	Code  string
	Reply chan *lobby.Lobby
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*lobby.Lobby
	bank   *bank.Bank
	timing game.Timing
	rng    *rand.Rand
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

func NewHub(parent context.Context, b *bank.Bank, timing game.Timing, rng *rand.Rand, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*lobby.Lobby),
		bank:   b,
		timing: timing,
		rng:    rng,
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				code := h.newCode()
				g := game.New(
					player.NewRegistry(),
					bank.NewSession(h.bank, rand.New(rand.NewSource(h.rng.Int63()))),
					rand.New(rand.NewSource(h.rng.Int63())),
					h.timing,
					h.log.With(zap.String("room", code)),
				)
				lb := lobby.NewLobby(h.ctx, g, h.log.With(zap.String("room", code)))
				h.rooms[code] = lb
				h.log.Info("room created", zap.String("code", code))
				msg.Reply <- Created{Code: code, Lobby: lb}

			case GetRoom:
				msg.Reply <- h.rooms[normalize(msg.Code)] // may be nil

			case RemoveRoom:
				code := normalize(msg.Code)
				if lb := h.rooms[code]; lb != nil {
					lb.Inbox() <- lobby.Shutdown{}
					delete(h.rooms, code)
					h.log.Info("room removed", zap.String("code", code))
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

// newCode draws until it lands on an unused code. With a 32^4 space and a
// handful of rooms, collisions are rare enough to just retry.
func (h *Hub) newCode() string {
	for {
		var sb strings.Builder
		for i := 0; i < CodeLength; i++ {
			sb.WriteByte(codeAlphabet[h.rng.Intn(len(codeAlphabet))])
		}
		code := sb.String()
		if _, taken := h.rooms[code]; !taken {
			return code
		}
	}
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (h *Hub) shutdown() {
	for code, lb := range h.rooms {
		lb.Inbox() <- lobby.Shutdown{}
		delete(h.rooms, code)
	}
	h.cancel()
}
