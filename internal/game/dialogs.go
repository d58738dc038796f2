package game

// DialogAction is one clickable step: the event it fires and its label.
type DialogAction struct {
	Event EventType `json:"event"`
	Text  string    `json:"text"`
}

// StepDialog is a server-pushed "what to click next" prompt. Only the role
// it targets ever receives it.
type StepDialog struct {
	Header  string         `json:"header,omitempty"`
	Actions []DialogAction `json:"actions"`
}

func hostDialog(header string, actions ...DialogAction) *StepDialog {
	return &StepDialog{Header: header, Actions: actions}
}

// refreshDialogs recomputes both role-targeted dialogs after a transition.
func (g *Game) refreshDialogs() {
	g.showHostStepDialog = nil
	g.hotSeatStepDialog = nil

	switch g.phase {
	case PhaseFastestFingerRules:
		g.showHostStepDialog = hostDialog("Fastest finger first",
			DialogAction{Event: EvtShowHostCueFastestFingerQuestion, Text: "Cue question"})

	case PhaseFastestFingerQuestion:
		if q := g.fastestFingerQuestion; q != nil && !q.AllRevealed() {
			g.showHostStepDialog = hostDialog("",
				DialogAction{Event: EvtShowHostRevealFastestFingerChoice, Text: "Reveal next choice"})
		} else {
			g.showHostStepDialog = hostDialog("Contestants are answering",
				DialogAction{Event: EvtShowHostRevealFastestFingerResults, Text: "Reveal results"})
		}

	case PhaseFastestFingerResults:
		g.showHostStepDialog = hostDialog("",
			DialogAction{Event: EvtShowHostCueHotSeatRules, Text: "To the hot seat"})

	case PhaseHotSeatRules, PhaseHotSeatVictory:
		g.showHostStepDialog = hostDialog("",
			DialogAction{Event: EvtShowHostCueHotSeatQuestion, Text: "Cue next question"})

	case PhaseHotSeatQuestion:
		g.refreshHotSeatQuestionDialogs()

	case PhaseRoundWon, PhaseRoundLost, PhaseRoundEnd:
		g.showHostStepDialog = hostDialog("",
			DialogAction{Event: EvtShowHostStartNewRound, Text: "Start a new round"})
	}
}

func (g *Game) refreshHotSeatQuestionDialogs() {
	q := g.hotSeatQuestion
	if q == nil {
		return
	}

	if !q.AllRevealed() {
		g.showHostStepDialog = hostDialog("",
			DialogAction{Event: EvtShowHostRevealHotSeatChoice, Text: "Reveal next choice"})
		return
	}

	if g.hotSeatAnswerLocked {
		g.showHostStepDialog = hostDialog("The answer is locked in",
			DialogAction{Event: EvtShowHostRevealHotSeatAnswer, Text: "Reveal the answer"})
		return
	}

	switch {
	case g.pendingLifeline != "":
		g.hotSeatStepDialog = &StepDialog{
			Header: "Use " + string(g.pendingLifeline) + "?",
			Actions: []DialogAction{
				{Event: EvtHotSeatConfirmLifeline, Text: "Yes"},
			},
		}
	case g.phonePending:
		g.hotSeatStepDialog = &StepDialog{
			Header: "Who do you want to call?",
			Actions: []DialogAction{
				{Event: EvtHotSeatPickPhoneAFriend, Text: "Call the computer"},
			},
		}
	default:
		actions := []DialogAction{
			{Event: EvtHotSeatWalkAway, Text: "Walk away"},
		}
		featured := g.players.Get(g.hotSeatUsername)
		if featured != nil && featured.HotSeatChoice != nil {
			actions = append([]DialogAction{
				{Event: EvtHotSeatFinalAnswer, Text: "Final answer"},
			}, actions...)
		}
		g.hotSeatStepDialog = &StepDialog{Actions: actions}
	}
}
