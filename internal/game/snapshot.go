package game

import (
	"github.com/partyquiz/hotseat-backend/internal/lifeline"
	"github.com/partyquiz/hotseat-backend/internal/player"
)

// ClientView is the compressed per-viewer projection pushed after every
// state-changing event. It is recomputed fresh per viewer per event, never
// cached: a pure function of state, viewer, and triggering event.
type ClientView struct {
	Phase Phase     `json:"phase"`
	Event EventType `json:"event,omitempty"`

	IsShowHost      bool `json:"isShowHost"`
	IsHotSeatPlayer bool `json:"isHotSeatPlayer"`
	IsContestant    bool `json:"isContestant"`

	StepDialog   *StepDialog `json:"stepDialog,omitempty"`
	ChoiceAction EventType   `json:"choiceAction,omitempty"`

	Question *QuestionView `json:"question,omitempty"`

	LifelinesAvailable []lifeline.Kind      `json:"lifelinesAvailable,omitempty"`
	AudienceResults    *AudienceResultsView `json:"audienceResults,omitempty"`
	PhoneResults       *PhoneResultsView    `json:"phoneResults,omitempty"`

	Players []PlayerView `json:"players"`
}

type QuestionView struct {
	Text            string    `json:"text"`
	RevealedChoices []*string `json:"revealedChoices"`

	// Index is the money-ladder position; absent for fastest finger.
	Index *int `json:"index,omitempty"`

	// MadeChoices is the viewer's own fastest-finger ranking so far.
	MadeChoices []int `json:"madeChoices,omitempty"`

	// Choice is the viewer's own hot-seat answer; for the show host it is
	// the featured player's answer instead.
	Choice *int `json:"choice,omitempty"`

	// CorrectChoice is visible to the host while the question is live and to
	// everyone once the answer is revealed.
	CorrectChoice *int `json:"correctChoice,omitempty"`

	// CorrectOrder is the true fastest-finger ordering, shown with results.
	CorrectOrder []string `json:"correctOrder,omitempty"`
}

type AudienceResultsView struct {
	AIBuckets         []int `json:"aiBuckets"`
	ContestantBuckets []int `json:"contestantBuckets"`
}

type PhoneResultsView struct {
	FriendUsername string  `json:"friendUsername,omitempty"`
	Choice         int     `json:"choice"`
	Confidence     float64 `json:"confidence"`
}

type PlayerView struct {
	Username                string `json:"username"`
	Money                   int    `json:"money"`
	Active                  bool   `json:"active"`
	IsShowHost              bool   `json:"isShowHost"`
	IsHotSeatPlayer         bool   `json:"isHotSeatPlayer"`
	SelectedForPhoneAFriend bool   `json:"selectedForPhoneAFriend"`
}

// choiceActions is the fixed allow-list deciding, per triggering event and
// viewer role, which choice-submission event the viewer's UI may fire.
var choiceActions = map[EventType]map[Role]EventType{
	EvtShowHostRevealFastestFingerChoice: {RoleContestant: EvtContestantFastestFingerChoose},
	EvtContestantFastestFingerChoose:     {RoleContestant: EvtContestantFastestFingerChoose},

	EvtShowHostRevealHotSeatChoice: {RoleContestant: EvtContestantChoose, RoleHotSeat: EvtHotSeatChoose},
	EvtHotSeatChoose:               {RoleContestant: EvtContestantChoose, RoleHotSeat: EvtHotSeatChoose},
	EvtContestantChoose:            {RoleContestant: EvtContestantChoose, RoleHotSeat: EvtHotSeatChoose},
	EvtContestantFinalAnswer:       {RoleContestant: EvtContestantChoose, RoleHotSeat: EvtHotSeatChoose},
	EvtHotSeatUseLifeline:          {RoleContestant: EvtContestantChoose, RoleHotSeat: EvtHotSeatChoose},
	EvtHotSeatConfirmLifeline:      {RoleContestant: EvtContestantChoose, RoleHotSeat: EvtHotSeatChoose},
	EvtHotSeatPickPhoneAFriend:     {RoleContestant: EvtContestantChoose, RoleHotSeat: EvtHotSeatChoose},
	EvtContestantSetConfidence:     {RoleContestant: EvtContestantChoose, RoleHotSeat: EvtHotSeatChoose},
}

// Snapshot builds the view for one username. Unknown viewers (spectating
// sockets) still get the public slice of the state.
func (g *Game) Snapshot(viewer string) *ClientView {
	p := g.players.Get(viewer)

	view := &ClientView{
		Phase:              g.phase,
		Event:              g.lastEvent,
		LifelinesAvailable: g.LifelinesAvailable(),
	}

	role := RoleContestant
	if p != nil {
		view.IsShowHost = p.IsShowHost
		view.IsHotSeatPlayer = p.IsHotSeatPlayer
		view.IsContestant = p.IsContestant()
		switch {
		case p.IsShowHost:
			role = RoleShowHost
		case p.IsHotSeatPlayer:
			role = RoleHotSeat
		}
	}

	switch role {
	case RoleShowHost:
		view.StepDialog = g.showHostStepDialog
	case RoleHotSeat:
		view.StepDialog = g.hotSeatStepDialog
	}

	view.ChoiceAction = g.choiceActionFor(role)
	view.Question = g.questionView(p, role)
	g.attachLifelineResults(view)

	for _, pl := range g.players.Players() {
		view.Players = append(view.Players, PlayerView{
			Username:                pl.Username,
			Money:                   pl.Money,
			Active:                  pl.Active,
			IsShowHost:              pl.IsShowHost,
			IsHotSeatPlayer:         pl.IsHotSeatPlayer,
			SelectedForPhoneAFriend: pl.SelectedForPhoneAFriend,
		})
	}
	return view
}

func (g *Game) choiceActionFor(role Role) EventType {
	byRole, ok := choiceActions[g.lastEvent]
	if !ok {
		return ""
	}
	action, ok := byRole[role]
	if !ok {
		return ""
	}
	// The allow-list is necessary, not sufficient: choices only open once
	// the full board is revealed and, for hot seat, before the lock.
	switch action {
	case EvtContestantFastestFingerChoose:
		q := g.fastestFingerQuestion
		if g.phase != PhaseFastestFingerQuestion || q == nil || !q.AllRevealed() {
			return ""
		}
	case EvtContestantChoose, EvtHotSeatChoose:
		if !g.hotSeatAnswerOpen() {
			return ""
		}
	}
	return action
}

func (g *Game) questionView(viewer *player.Player, role Role) *QuestionView {
	switch g.phase {
	case PhaseFastestFingerQuestion, PhaseFastestFingerResults:
		return g.fastestFingerView(viewer, role)
	case PhaseHotSeatQuestion, PhaseHotSeatVictory, PhaseRoundWon, PhaseRoundLost, PhaseRoundEnd:
		return g.hotSeatView(viewer, role)
	}
	return nil
}

func (g *Game) fastestFingerView(viewer *player.Player, role Role) *QuestionView {
	q := g.fastestFingerQuestion
	if q == nil {
		return nil
	}
	v := &QuestionView{
		Text:            q.Text,
		RevealedChoices: copyRevealed(q.Revealed),
	}
	if viewer != nil {
		v.MadeChoices = append([]int(nil), viewer.FastestFingerChoices...)
	}
	if role == RoleShowHost || g.phase == PhaseFastestFingerResults {
		v.CorrectOrder = append([]string(nil), q.Ordered...)
	}
	return v
}

func (g *Game) hotSeatView(viewer *player.Player, role Role) *QuestionView {
	q := g.hotSeatQuestion
	if q == nil {
		return nil
	}
	idx := q.Index
	v := &QuestionView{
		Text:            q.Text,
		RevealedChoices: copyRevealed(q.Revealed),
		Index:           &idx,
	}

	switch role {
	case RoleShowHost:
		// The host narrates the featured player's answer.
		if featured := g.players.Get(g.hotSeatUsername); featured != nil {
			v.Choice = copyChoice(featured.HotSeatChoice)
		}
	default:
		if viewer != nil {
			v.Choice = copyChoice(viewer.HotSeatChoice)
		}
	}

	answerRevealed := g.phase == PhaseHotSeatVictory ||
		g.phase == PhaseRoundWon || g.phase == PhaseRoundLost
	if role == RoleShowHost || answerRevealed {
		c := q.CorrectChoiceIndex()
		v.CorrectChoice = &c
	}
	return v
}

func (g *Game) attachLifelineResults(view *ClientView) {
	if g.hotSeatQuestion == nil {
		return
	}
	idx := g.hotSeatQuestion.Index
	// While the question is live the poll withholds its numbers until at most
	// one contestant vote is still outstanding.
	polling := g.phase == PhaseHotSeatQuestion &&
		g.askTheAudience.WaitingOnContestants(g.players.ActiveContestants())
	if g.askTheAudience.HasResultsForQuestionIndex(idx) && !polling {
		view.AudienceResults = &AudienceResultsView{
			AIBuckets:         append([]int(nil), g.askTheAudience.AIBuckets[:]...),
			ContestantBuckets: append([]int(nil), g.askTheAudience.ContestantBuckets[:]...),
		}
	}
	if g.phoneAFriend.HasResultsForQuestionIndex(idx) {
		view.PhoneResults = &PhoneResultsView{
			FriendUsername: g.phoneAFriend.FriendUsername,
			Choice:         *g.phoneAFriend.FriendChoice,
			Confidence:     *g.phoneAFriend.FriendConfidence,
		}
	}
}

func copyRevealed(revealed []*string) []*string {
	out := make([]*string, len(revealed))
	for i, c := range revealed {
		if c != nil {
			v := *c
			out[i] = &v
		}
	}
	return out
}

func copyChoice(c *int) *int {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
