// Package ws bridges websocket connections onto a room's lobby actor.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/partyquiz/hotseat-backend/internal/game"
	"github.com/partyquiz/hotseat-backend/internal/hub"
	"github.com/partyquiz/hotseat-backend/internal/lifeline"
	"github.com/partyquiz/hotseat-backend/internal/lobby"
	"github.com/partyquiz/hotseat-backend/pkg/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades GET /ws?code=...&username=... and pumps frames both ways
// until either side hangs up.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		username := r.URL.Query().Get("username")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan lobby.Snapshot, 8)
		clientID := uuid.NewString()

		joinReply := make(chan error, 1)
		lb.Inbox() <- lobby.Join{ClientID: clientID, Username: username, Outbox: out, Reply: joinReply}
		if err := <-joinReply; err != nil {
			writeMsg(r.Context(), conn, types.ServerMessage{
				Type:   types.MsgJoinFailure,
				Reason: failureReason(err),
			})
			return
		}
		defer func() { lb.Inbox() <- lobby.Leave{ClientID: clientID} }()

		log.Info("client connected",
			zap.String("clientID", clientID),
			zap.String("username", username))

		// Writer goroutine: drains the lobby outbox until it closes.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				writeMsg(writeCtx, conn, types.ServerMessage{
					Type:    types.MsgUpdateGame,
					Version: snap.Version,
					View:    snap.View,
				})
			}
		}()

		// Reader loop.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read failed", zap.String("clientID", clientID), zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeMsg(r.Context(), conn, types.ServerMessage{Type: types.MsgError, Reason: "bad json"})
				continue
			}

			lb.Inbox() <- lobby.FromClient{ClientID: clientID, Event: toEvent(cm)}
		}
	}
}

// toEvent maps a wire frame onto a game event. Unknown types pass through and
// die in the game's dispatch table; the username is stamped by the lobby.
func toEvent(m types.ClientMessage) game.Event {
	ev := game.Event{
		Type:           game.EventType(m.Type),
		Choice:         m.Choice,
		Confidence:     m.Confidence,
		Lifeline:       lifeline.Kind(m.Lifeline),
		FriendUsername: m.FriendUsername,
		UseAI:          m.UseAI,
	}
	if m.GameOptions != nil {
		ev.GameOptions = &game.Options{ShowHostUsername: m.GameOptions.ShowHostUsername}
	}
	return ev
}

func failureReason(err error) string {
	switch err {
	case lobby.ErrUsernameTaken:
		return "Username taken"
	default:
		return "Invalid data"
	}
}

func writeMsg(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}
