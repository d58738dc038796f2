// Package lobby runs one goroutine per room that owns the game state
// outright. Every mutation and read goes through the inbox, so the game
// package never needs a lock.
package lobby

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/partyquiz/hotseat-backend/internal/game"
)

var (
	// ErrInvalidUsername rejects empty or otherwise unusable usernames.
	ErrInvalidUsername = errors.New("invalid data")
	// ErrUsernameTaken rejects a name another live connection already holds.
	ErrUsernameTaken = errors.New("username taken")
)

type Msg interface{ isLobbyMsg() }

// FromClient carries one inbound game event. The username is stamped here
// from the sender's registration, never trusted from the payload.
type FromClient struct {
	ClientID string
	Event    game.Event
}

func (FromClient) isLobbyMsg() {}

type Join struct {
	ClientID string
	Username string
	Outbox   chan Snapshot // where this client receives its view updates
	Reply    chan error    // nil on success
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

// PrimeTimer arms the auto-advance timer for the current state. The ws layer
// sends it once after the game starts; afterwards the lobby re-arms itself.
type PrimeTimer struct{}

func (PrimeTimer) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

// timerFired is internal: a previously armed auto-step came due. Gen guards
// against stale fires from timers armed before the state moved on.
type timerFired struct {
	gen   int
	event game.Event
}

func (timerFired) isLobbyMsg() {}

// Snapshot is one per-viewer view update. Views are recomputed per client on
// every broadcast, so two clients never share a payload.
type Snapshot struct {
	Version int
	View    *game.ClientView
}

// View reflects internal state for tests without data races.
type View struct {
	Version    int
	NumClients int
	Phase      game.Phase
	NumPlayers int
}

type client struct {
	username string
	outbox   chan Snapshot
}

type Lobby struct {
	inbox   chan Msg
	game    *game.Game
	version int
	clients map[string]client
	// timerGen invalidates in-flight auto-step timers when state advances.
	timerGen int
	ctx      context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
}

func NewLobby(parent context.Context, g *game.Game, log *zap.Logger) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		inbox:   make(chan Msg, 64),
		game:    g,
		clients: make(map[string]client),
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
	}

	go l.loop()
	return l
}

// Inbox is where the ws layer (and tests) send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				l.handleJoin(msg)

			case Leave:
				l.handleLeave(msg.ClientID)

			case FromClient:
				c, ok := l.clients[msg.ClientID]
				if !ok {
					break
				}
				ev := msg.Event
				ev.Username = c.username
				if l.game.Apply(ev) {
					l.version++
					l.broadcast()
					l.armTimer()
				}

			case timerFired:
				if msg.gen != l.timerGen {
					break // a newer state invalidated this timer
				}
				if l.game.Apply(msg.event) {
					l.version++
					l.broadcast()
				}
				// Re-arm either way: an unapplied step usually means the
				// machine is still waiting on answers.
				l.armTimer()

			case PrimeTimer:
				l.armTimer()

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					Phase:      l.game.Phase(),
					NumPlayers: l.game.Players().Len(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) handleJoin(msg Join) {
	reg := l.game.Players()
	if existing := reg.Get(msg.Username); existing != nil {
		if l.usernameConnected(msg.Username) {
			l.refuse(msg, ErrUsernameTaken)
			return
		}
		// Reconnect: the old answer state survives, only liveness flips.
		reg.Reactivate(msg.Username)
	} else if _, ok := reg.Add(msg.Username); !ok {
		l.refuse(msg, ErrInvalidUsername)
		return
	}

	l.clients[msg.ClientID] = client{username: msg.Username, outbox: msg.Outbox}
	if msg.Reply != nil {
		msg.Reply <- nil
	}
	l.version++
	l.broadcast()
}

func (l *Lobby) refuse(msg Join, err error) {
	if msg.Reply != nil {
		msg.Reply <- err
	}
	close(msg.Outbox)
}

func (l *Lobby) handleLeave(clientID string) {
	c, ok := l.clients[clientID]
	if !ok {
		return
	}
	delete(l.clients, clientID)
	// The ws writer drains this channel until it closes; leaving it open
	// would strand that goroutine for the life of the process.
	close(c.outbox)
	if !l.usernameConnected(c.username) {
		if l.game.Phase() == game.PhaseIdle {
			// Nothing to rejoin yet; keep the pre-game roster tidy.
			l.game.Players().Remove(c.username)
		} else {
			l.game.Players().Deactivate(c.username)
		}
	}
	l.version++
	l.broadcast()
}

func (l *Lobby) usernameConnected(username string) bool {
	for _, c := range l.clients {
		if c.username == username {
			return true
		}
	}
	return false
}

// armTimer schedules the machine's next synthetic host step, if any. Arming
// bumps the generation so any timer already in flight lands stale.
func (l *Lobby) armTimer() {
	ev, delay, ok := l.game.AutoStep()
	l.timerGen++
	if !ok {
		return
	}
	gen := l.timerGen
	go func() {
		select {
		case <-l.ctx.Done():
		case <-time.After(delay):
			select {
			case l.inbox <- timerFired{gen: gen, event: ev}:
			case <-l.ctx.Done():
			}
		}
	}()
}

func (l *Lobby) broadcast() {
	for id, c := range l.clients {
		snap := Snapshot{Version: l.version, View: l.game.Snapshot(c.username)}
		select {
		case c.outbox <- snap:
		default:
			// Slow or dead client: drop it rather than stall the room.
			l.log.Warn("dropping slow client", zap.String("clientID", id))
			close(c.outbox)
			delete(l.clients, id)
			if !l.usernameConnected(c.username) {
				l.game.Players().Deactivate(c.username)
			}
		}
	}
}

func (l *Lobby) shutdown() {
	for id, c := range l.clients {
		close(c.outbox)
		delete(l.clients, id)
	}
	l.cancel()
}
