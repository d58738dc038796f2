// Package types holds the websocket wire contract shared with clients.
package types

import "github.com/partyquiz/hotseat-backend/internal/game"

// ClientMessage is the single inbound frame shape. Type selects the game
// event; the other fields are read per event and ignored otherwise. The
// sender's username is taken from the connection, never from the frame.
type ClientMessage struct {
	Type string `json:"type"`

	Choice         *int          `json:"choice,omitempty"`
	Confidence     *float64      `json:"confidence,omitempty"`
	Lifeline       string        `json:"lifeline,omitempty"`
	FriendUsername string        `json:"friendUsername,omitempty"`
	UseAI          bool          `json:"useAI,omitempty"`
	GameOptions    *ClientOption `json:"gameOptions,omitempty"`
}

type ClientOption struct {
	ShowHostUsername string `json:"showHostUsername,omitempty"`
}

// Server -> client message types.
const (
	MsgUpdateGame  = "updateGame"
	MsgJoinFailure = "joinFailure"
	MsgError       = "error"
)

// ServerMessage is the single outbound frame shape.
type ServerMessage struct {
	Type    string `json:"type"`
	Version int    `json:"version,omitempty"`

	// View is the per-viewer game projection on updateGame frames.
	View *game.ClientView `json:"view,omitempty"`

	// Reason explains joinFailure and error frames.
	Reason string `json:"reason,omitempty"`
}
