package player

// Registry tracks the participants of one room, keyed by username. Holders
// of player references elsewhere keep the username and look players up here
// instead of aliasing the struct, so reconnects never leave dangling state.
type Registry struct {
	players map[string]*Player
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*Player)}
}

// Add registers a new active player. Empty and duplicate usernames are
// rejected.
func (r *Registry) Add(username string) (*Player, bool) {
	if username == "" {
		return nil, false
	}
	if _, exists := r.players[username]; exists {
		return nil, false
	}
	p := &Player{Username: username, Active: true}
	r.players[username] = p
	r.order = append(r.order, username)
	return p, true
}

// Get returns nil when the username is unknown; callers null-check.
func (r *Registry) Get(username string) *Player {
	return r.players[username]
}

// Deactivate marks a player disconnected without touching answer state.
func (r *Registry) Deactivate(username string) {
	if p := r.players[username]; p != nil {
		p.Active = false
	}
}

// Reactivate marks a returning player active again.
func (r *Registry) Reactivate(username string) {
	if p := r.players[username]; p != nil {
		p.Active = true
	}
}

// Remove drops a player entirely, for explicit room leaves.
func (r *Registry) Remove(username string) {
	if _, exists := r.players[username]; !exists {
		return
	}
	delete(r.players, username)
	for i, u := range r.order {
		if u == username {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Players returns every player in join order, including inactive ones.
func (r *Registry) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, u := range r.order {
		out = append(out, r.players[u])
	}
	return out
}

// ActivePlayers returns connected players in join order.
func (r *Registry) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, p := range r.Players() {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// ActiveContestants returns connected players holding no special role.
// Quorum checks count these only.
func (r *Registry) ActiveContestants() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, p := range r.ActivePlayers() {
		if p.IsContestant() {
			out = append(out, p)
		}
	}
	return out
}

func (r *Registry) Len() int { return len(r.players) }

// ClearAllAnswers wipes per-question answer state for everyone.
func (r *Registry) ClearAllAnswers() {
	for _, p := range r.players {
		p.ClearAllAnswers()
	}
}
