// Package game owns the shared state of one hot-seat trivia round and every
// legal transition through it. All mutation happens through Apply, which the
// room's actor loop serializes; nothing here is safe for concurrent use.
package game

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/partyquiz/hotseat-backend/internal/bank"
	"github.com/partyquiz/hotseat-backend/internal/grade"
	"github.com/partyquiz/hotseat-backend/internal/lifeline"
	"github.com/partyquiz/hotseat-backend/internal/player"
	"github.com/partyquiz/hotseat-backend/internal/question"
)

type Phase string

const (
	PhaseIdle                  Phase = "idle"
	PhaseFastestFingerRules    Phase = "fastestFingerRules"
	PhaseFastestFingerQuestion Phase = "fastestFingerQuestion"
	PhaseFastestFingerResults  Phase = "fastestFingerResults"
	PhaseHotSeatRules          Phase = "hotSeatRules"
	PhaseHotSeatQuestion       Phase = "hotSeatQuestion"
	// PhaseHotSeatVictory sits between a correct answer and the next rung.
	PhaseHotSeatVictory Phase = "hotSeatVictory"
	PhaseRoundWon       Phase = "roundWon"
	PhaseRoundLost      Phase = "roundLost"
	// PhaseRoundEnd follows a walk away.
	PhaseRoundEnd Phase = "roundEnd"
)

// Timing tunes the auto-advance pacing used when no human host is seated.
type Timing struct {
	// StepDelay paces synthetic host steps.
	StepDelay time.Duration
	// AnswerCutoff bounds how long the fastest-finger answer window stays
	// open before results are forced.
	AnswerCutoff time.Duration
}

func DefaultTiming() Timing {
	return Timing{StepDelay: 4 * time.Second, AnswerCutoff: 20 * time.Second}
}

// timeNow is stubbed in tests.
var timeNow = time.Now

// Game is the state machine for one room.
type Game struct {
	log     *zap.Logger
	rng     *rand.Rand
	players *player.Registry
	session *bank.Session
	timing  Timing

	phase     Phase
	lastEvent EventType

	// Weak references: usernames resolved through the registry on use.
	showHostUsername string
	hotSeatUsername  string

	// ladderIndex is the money-ladder position of the live (or upcoming)
	// hot-seat question, 0..14.
	ladderIndex int

	fastestFingerQuestion *question.FastestFingerQuestion
	hotSeatQuestion       *question.HotSeatQuestion

	// questionStartTime opens when the last choice is revealed; grading
	// measures contestant speed against it.
	questionStartTime time.Time

	hotSeatAnswerLocked bool

	askTheAudience *lifeline.AskTheAudience
	phoneAFriend   *lifeline.PhoneAFriend
	fiftyFifty     *lifeline.FiftyFifty

	// pendingLifeline is chosen but unconfirmed; at most one lifeline may
	// fire per question even though each is one-shot per round.
	pendingLifeline          lifeline.Kind
	lifelineUsedThisQuestion bool
	// phonePending holds the phone flow open between confirm and friend pick.
	phonePending bool

	showHostStepDialog *StepDialog
	hotSeatStepDialog  *StepDialog
}

func New(players *player.Registry, session *bank.Session, rng *rand.Rand, timing Timing, log *zap.Logger) *Game {
	g := &Game{
		log:     log,
		rng:     rng,
		players: players,
		session: session,
		timing:  timing,
		phase:   PhaseIdle,
	}
	g.resetRound()
	g.phase = PhaseIdle
	return g
}

func (g *Game) Phase() Phase              { return g.phase }
func (g *Game) Players() *player.Registry { return g.players }
func (g *Game) HotSeatUsername() string   { return g.hotSeatUsername }

// Apply dispatches one inbound event. Illegal or malformed events change
// nothing and report false; the transport treats that as "nothing to
// broadcast".
func (g *Game) Apply(ev Event) bool {
	h, ok := handlers[ev.Type]
	if !ok {
		g.log.Debug("unknown event", zap.String("type", string(ev.Type)))
		return false
	}
	if !g.allowed(h.role, ev) {
		g.log.Debug("event rejected by role gate",
			zap.String("type", string(ev.Type)),
			zap.String("from", ev.Username))
		return false
	}
	changed := h.fn(g, ev)
	if changed {
		g.lastEvent = ev.Type
		g.refreshDialogs()
		g.log.Debug("event applied",
			zap.String("type", string(ev.Type)),
			zap.String("phase", string(g.phase)))
	}
	return changed
}

// --- round lifecycle -------------------------------------------------------

func (g *Game) handleStartGame(ev Event) bool {
	if g.phase != PhaseIdle {
		return false
	}
	opts := Options{}
	if ev.GameOptions != nil {
		opts = *ev.GameOptions
	}
	if !opts.Valid(g.players) {
		return false
	}
	if opts.ShowHostUsername != "" {
		host := g.players.Get(opts.ShowHostUsername)
		host.IsShowHost = true
		g.showHostUsername = host.Username
	}
	g.phase = PhaseFastestFingerRules
	g.log.Info("game started", zap.String("showHost", g.showHostUsername))
	return true
}

func (g *Game) handleStartNewRound(Event) bool {
	switch g.phase {
	case PhaseRoundWon, PhaseRoundLost, PhaseRoundEnd:
	default:
		return false
	}
	g.resetRound()
	g.phase = PhaseFastestFingerRules
	return true
}

// resetRound clears round-scoped state. Player money and the show host
// survive; everything else goes back to baseline.
func (g *Game) resetRound() {
	for _, p := range g.players.Players() {
		p.IsHotSeatPlayer = false
		p.SelectedForPhoneAFriend = false
	}
	g.players.ClearAllAnswers()
	g.hotSeatUsername = ""
	g.ladderIndex = 0
	g.fastestFingerQuestion = nil
	g.hotSeatQuestion = nil
	g.hotSeatAnswerLocked = false
	g.questionStartTime = time.Time{}
	g.askTheAudience = lifeline.NewAskTheAudience(g.rng)
	g.phoneAFriend = lifeline.NewPhoneAFriend(g.rng)
	g.fiftyFifty = lifeline.NewFiftyFifty(g.rng)
	g.pendingLifeline = ""
	g.lifelineUsedThisQuestion = false
	g.phonePending = false
}

// --- fastest finger --------------------------------------------------------

func (g *Game) handleCueFastestFingerQuestion(Event) bool {
	if g.phase != PhaseFastestFingerRules {
		return false
	}
	g.players.ClearAllAnswers()
	g.fastestFingerQuestion = g.session.NextFastestFinger()
	g.phase = PhaseFastestFingerQuestion
	return true
}

func (g *Game) handleRevealFastestFingerChoice(Event) bool {
	if g.phase != PhaseFastestFingerQuestion || g.fastestFingerQuestion == nil {
		return false
	}
	q := g.fastestFingerQuestion
	if q.AllRevealed() {
		return false
	}
	q.RevealChoice()
	if q.AllRevealed() {
		g.questionStartTime = timeNow()
	}
	return true
}

func (g *Game) handleContestantFastestFingerChoose(ev Event) bool {
	if g.phase != PhaseFastestFingerQuestion || ev.Choice == nil {
		return false
	}
	q := g.fastestFingerQuestion
	if q == nil || !q.AllRevealed() {
		return false
	}
	return g.playerFor(ev).ChooseFastestFinger(*ev.Choice)
}

func (g *Game) handleRevealFastestFingerResults(Event) bool {
	if g.phase != PhaseFastestFingerQuestion || g.fastestFingerQuestion == nil {
		return false
	}
	if !g.fastestFingerQuestion.AllRevealed() {
		return false
	}
	winner := g.fastestFingerWinner()
	if winner == nil {
		return false
	}
	winner.IsHotSeatPlayer = true
	g.hotSeatUsername = winner.Username
	g.phase = PhaseFastestFingerResults
	g.log.Info("hot seat decided", zap.String("username", winner.Username))
	return true
}

// fastestFingerWinner ranks active contestants by score, breaking ties by
// earliest full submission. Partial submissions still score but an unset
// timestamp sorts last among equals.
func (g *Game) fastestFingerWinner() *player.Player {
	var best *player.Player
	bestScore := -1
	for _, p := range g.players.ActiveContestants() {
		if len(p.FastestFingerChoices) == 0 {
			continue
		}
		score := g.fastestFingerQuestion.Score(p.FastestFingerChoices)
		switch {
		case score > bestScore:
			best, bestScore = p, score
		case score == bestScore && earlier(p.FastestFingerTime, best.FastestFingerTime):
			best = p
		}
	}
	return best
}

func earlier(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	if b.IsZero() {
		return true
	}
	return a.Before(b)
}

// AllFastestFingerAnswersIn reports whether every active contestant has
// submitted a full ranking.
func (g *Game) AllFastestFingerAnswersIn() bool {
	contestants := g.players.ActiveContestants()
	if len(contestants) == 0 {
		return false
	}
	for _, p := range contestants {
		if !p.HasAllFastestFingerChoices() {
			return false
		}
	}
	return true
}

// --- hot seat --------------------------------------------------------------

func (g *Game) handleCueHotSeatRules(Event) bool {
	if g.phase != PhaseFastestFingerResults {
		return false
	}
	g.phase = PhaseHotSeatRules
	return true
}

func (g *Game) handleCueHotSeatQuestion(Event) bool {
	switch g.phase {
	case PhaseHotSeatRules, PhaseHotSeatVictory:
	default:
		return false
	}
	g.players.ClearAllAnswers()
	g.hotSeatQuestion = g.session.NextHotSeat(g.ladderIndex)
	g.hotSeatAnswerLocked = false
	g.pendingLifeline = ""
	g.lifelineUsedThisQuestion = false
	g.phonePending = false
	g.questionStartTime = time.Time{}
	g.phase = PhaseHotSeatQuestion
	return true
}

func (g *Game) handleRevealHotSeatChoice(Event) bool {
	if g.phase != PhaseHotSeatQuestion || g.hotSeatQuestion == nil {
		return false
	}
	q := g.hotSeatQuestion
	if q.AllRevealed() {
		return false
	}
	q.RevealChoice()
	if q.AllRevealed() {
		g.questionStartTime = timeNow()
	}
	return true
}

func (g *Game) handleHotSeatChoose(ev Event) bool {
	if !g.hotSeatAnswerOpen() || ev.Choice == nil {
		return false
	}
	if !g.hotSeatQuestion.ChoiceVisible(*ev.Choice) {
		return false
	}
	return g.playerFor(ev).ChooseHotSeat(*ev.Choice)
}

func (g *Game) handleContestantChoose(ev Event) bool {
	if !g.hotSeatAnswerOpen() || ev.Choice == nil {
		return false
	}
	if !g.hotSeatQuestion.ChoiceVisible(*ev.Choice) {
		return false
	}
	p := g.playerFor(ev)
	if !p.ChooseHotSeat(*ev.Choice) {
		return false
	}
	if g.askTheAudience.HasResultsForQuestionIndex(g.ladderIndex) {
		g.askTheAudience.TallyContestantVotes(g.players.ActiveContestants())
	}
	return true
}

func (g *Game) handleContestantFinalAnswer(ev Event) bool {
	if !g.hotSeatAnswerOpen() {
		return false
	}
	p := g.playerFor(ev)
	if p.HotSeatChoice == nil || p.AnswerLocked {
		return false
	}
	p.AnswerLocked = true
	return true
}

func (g *Game) handleHotSeatFinalAnswer(ev Event) bool {
	if !g.hotSeatAnswerOpen() {
		return false
	}
	p := g.playerFor(ev)
	if p.HotSeatChoice == nil || !g.hotSeatQuestion.ChoiceVisible(*p.HotSeatChoice) {
		return false
	}
	if g.phonePending {
		return false
	}
	g.hotSeatAnswerLocked = true
	return true
}

// hotSeatAnswerOpen: a live hot-seat question, fully revealed, answer not
// yet locked in.
func (g *Game) hotSeatAnswerOpen() bool {
	return g.phase == PhaseHotSeatQuestion &&
		g.hotSeatQuestion != nil &&
		g.hotSeatQuestion.AllRevealed() &&
		!g.hotSeatAnswerLocked
}

func (g *Game) handleRevealHotSeatAnswer(Event) bool {
	if g.phase != PhaseHotSeatQuestion || !g.hotSeatAnswerLocked {
		return false
	}
	featured := g.players.Get(g.hotSeatUsername)
	if featured == nil || featured.HotSeatChoice == nil {
		return false
	}
	correct := g.hotSeatQuestion.AnswerIsCorrect(*featured.HotSeatChoice)

	grade.Grade(g.gradeConfig(featured.HotSeatChoice, false), g.players.Players())

	if correct {
		if g.ladderIndex == question.NumHotSeatQuestions-1 {
			featured.Money += question.PayoutFor(g.ladderIndex)
			g.phase = PhaseRoundWon
			g.log.Info("round won", zap.String("username", featured.Username))
			return true
		}
		g.ladderIndex++
		g.phase = PhaseHotSeatVictory
		return true
	}

	haven := question.SafeHavenIndex(g.ladderIndex - 1)
	featured.Money += question.PayoutFor(haven)
	g.phase = PhaseRoundLost
	g.log.Info("round lost",
		zap.String("username", featured.Username),
		zap.Int("failedAt", g.ladderIndex),
		zap.Int("safeHaven", haven))
	return true
}

func (g *Game) handleWalkAway(Event) bool {
	if g.phase != PhaseHotSeatQuestion || g.hotSeatAnswerLocked {
		return false
	}
	if g.hotSeatQuestion == nil || len(g.hotSeatQuestion.Revealed) == 0 {
		return false
	}
	featured := g.players.Get(g.hotSeatUsername)
	if featured == nil {
		return false
	}

	grade.Grade(g.gradeConfig(nil, true), g.players.Players())

	featured.Money += question.PayoutFor(g.ladderIndex - 1)
	g.phase = PhaseRoundEnd
	g.log.Info("walked away",
		zap.String("username", featured.Username),
		zap.Int("lastCompleted", g.ladderIndex-1))
	return true
}

func (g *Game) gradeConfig(finalChoice *int, walkedAway bool) grade.Config {
	cfg := grade.Config{
		QuestionIndex: g.ladderIndex,
		CorrectChoice: g.hotSeatQuestion.CorrectChoiceIndex(),
		HotSeatChoice: finalChoice,
		StartTime:     g.questionStartTime,
		WalkedAway:    walkedAway,
		LifelineUsed:  g.lifelineUsedThisQuestion,
		AudienceUsed:  g.askTheAudience.HasResultsForQuestionIndex(g.ladderIndex),
	}
	if g.phoneAFriend.HasResultsForQuestionIndex(g.ladderIndex) {
		cfg.PhoneChoice = g.phoneAFriend.FriendChoice
		cfg.PhoneConfidence = g.phoneAFriend.FriendConfidence
	}
	return cfg
}

// --- lifelines -------------------------------------------------------------

// LifelinesAvailable lists the kinds not yet burned this round.
func (g *Game) LifelinesAvailable() []lifeline.Kind {
	avail := make([]lifeline.Kind, 0, len(lifeline.Kinds))
	if !g.askTheAudience.Used {
		avail = append(avail, lifeline.KindAskTheAudience)
	}
	if !g.phoneAFriend.Used {
		avail = append(avail, lifeline.KindPhoneAFriend)
	}
	if !g.fiftyFifty.Used {
		avail = append(avail, lifeline.KindFiftyFifty)
	}
	return avail
}

func (g *Game) lifelineAvailable(k lifeline.Kind) bool {
	for _, a := range g.LifelinesAvailable() {
		if a == k {
			return true
		}
	}
	return false
}

func (g *Game) handleUseLifeline(ev Event) bool {
	if !g.hotSeatAnswerOpen() || g.lifelineUsedThisQuestion || g.phonePending {
		return false
	}
	if !lifeline.ValidKind(ev.Lifeline) || !g.lifelineAvailable(ev.Lifeline) {
		return false
	}
	g.pendingLifeline = ev.Lifeline
	return true
}

func (g *Game) handleConfirmLifeline(Event) bool {
	if g.pendingLifeline == "" || !g.hotSeatAnswerOpen() {
		return false
	}
	kind := g.pendingLifeline
	g.pendingLifeline = ""
	g.lifelineUsedThisQuestion = true

	switch kind {
	case lifeline.KindAskTheAudience:
		g.askTheAudience.Execute(g.hotSeatQuestion)
		g.askTheAudience.TallyContestantVotes(g.players.ActiveContestants())
	case lifeline.KindPhoneAFriend:
		g.phoneAFriend.Execute(g.hotSeatQuestion)
		g.phonePending = true
	case lifeline.KindFiftyFifty:
		g.fiftyFifty.Execute(g.hotSeatQuestion)
		g.clearMaskedAnswers()
	}
	g.log.Info("lifeline used", zap.String("kind", string(kind)), zap.Int("question", g.ladderIndex))
	return true
}

// clearMaskedAnswers wipes the answer state of any contestant whose current
// vote fifty-fifty just hid, forcing a re-answer among visible choices.
func (g *Game) clearMaskedAnswers() {
	for _, p := range g.players.ActiveContestants() {
		if p.HotSeatChoice != nil && g.fiftyFifty.Removed(*p.HotSeatChoice) {
			p.ClearAllAnswers()
		}
	}
}

func (g *Game) handlePickPhoneAFriend(ev Event) bool {
	if g.phase != PhaseHotSeatQuestion || !g.phonePending {
		return false
	}
	if ev.UseAI {
		g.phoneAFriend.PickAIFriend()
		g.phonePending = false
		return true
	}
	friend := g.players.Get(ev.FriendUsername)
	if friend == nil || !friend.Active || !friend.IsContestant() {
		return false
	}
	g.phoneAFriend.PickFriend(friend)
	g.phonePending = false
	return true
}

func (g *Game) handleContestantSetConfidence(ev Event) bool {
	if g.phase != PhaseHotSeatQuestion || ev.Confidence == nil {
		return false
	}
	p := g.playerFor(ev)
	if p.Username != g.phoneAFriend.FriendUsername {
		return false
	}
	g.phoneAFriend.MaybeSetFriendConfidence(*ev.Confidence, p)
	return true
}

// --- auto advance ----------------------------------------------------------

// AutoStep reports the host event the machine would fire on its own, plus
// the delay before firing it. It returns false while a human host is seated
// or nothing is pending.
func (g *Game) AutoStep() (Event, time.Duration, bool) {
	if g.showHostUsername != "" {
		return Event{}, 0, false
	}

	step := func(t EventType, d time.Duration) (Event, time.Duration, bool) {
		return Event{Type: t}, d, true
	}

	switch g.phase {
	case PhaseFastestFingerRules:
		return step(EvtShowHostCueFastestFingerQuestion, g.timing.StepDelay)
	case PhaseFastestFingerQuestion:
		q := g.fastestFingerQuestion
		if q == nil {
			return Event{}, 0, false
		}
		if !q.AllRevealed() {
			return step(EvtShowHostRevealFastestFingerChoice, g.timing.StepDelay)
		}
		if g.AllFastestFingerAnswersIn() {
			return step(EvtShowHostRevealFastestFingerResults, g.timing.StepDelay)
		}
		return step(EvtShowHostRevealFastestFingerResults, g.timing.AnswerCutoff)
	case PhaseFastestFingerResults:
		return step(EvtShowHostCueHotSeatRules, g.timing.StepDelay)
	case PhaseHotSeatRules, PhaseHotSeatVictory:
		return step(EvtShowHostCueHotSeatQuestion, g.timing.StepDelay)
	case PhaseHotSeatQuestion:
		if g.hotSeatQuestion != nil && !g.hotSeatQuestion.AllRevealed() {
			return step(EvtShowHostRevealHotSeatChoice, g.timing.StepDelay)
		}
		if g.hotSeatAnswerLocked {
			return step(EvtShowHostRevealHotSeatAnswer, g.timing.StepDelay)
		}
		// Waiting on the featured player; no timer rushes them.
		return Event{}, 0, false
	case PhaseRoundWon, PhaseRoundLost, PhaseRoundEnd:
		return step(EvtShowHostStartNewRound, g.timing.StepDelay)
	}
	return Event{}, 0, false
}
