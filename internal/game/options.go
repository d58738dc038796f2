package game

import "github.com/partyquiz/hotseat-backend/internal/player"

// Options carries the host-configurable settings of hostAttemptStartGame.
type Options struct {
	ShowHostUsername string `json:"showHostUsername,omitempty"`
}

// Valid rejects a show-host assignment unless the named player exists and at
// least one other active player remains to actually play.
func (o Options) Valid(reg *player.Registry) bool {
	if o.ShowHostUsername == "" {
		return true
	}
	if reg.Get(o.ShowHostUsername) == nil {
		return false
	}
	return len(reg.ActivePlayers()) > 1
}
