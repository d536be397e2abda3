package game

import (
	"log"
	"time"
)

type reactionPhase string

const (
	phaseAwaitingReady reactionPhase = "awaiting_ready"
	phaseRoundPending  reactionPhase = "round_pending"
	phaseTargetShown   reactionPhase = "target_shown"
)

// simultaneityWindow is the follow-up window for the timing-fairness
// adjustment: a second tap landing this close to the first is treated as
// near-simultaneous and gets the remainder subtracted from its elapsed time.
const simultaneityWindow = 500 * time.Millisecond

type reactionTap struct {
	elapsed time.Duration
	points  int
	at      time.Time
}

type reactionState struct {
	round      int
	scores     map[string]int
	phase      reactionPhase
	ready      map[string]bool
	roundStart time.Time
	taps       map[string]reactionTap
	firstTapAt time.Time
	penalized  map[string]bool
	greenCount int

	// Guard latches. Each one makes a multi-trigger transition idempotent:
	// the first admitted trigger sets the flag, everything else bounces.
	roundStarting    bool
	targetShowing    bool
	roundActive      bool // go signal shown and tap window open
	roundEnding      bool
	fakeOutTriggered bool // first wrong tap owns the decoy resolution
}

// ReactionPromptView asks both participants to ready up.
type ReactionPromptView struct {
	Game      GameType `json:"game"`
	MatchID   string   `json:"match_id"`
	Round     int      `json:"round"`
	MaxRounds int      `json:"max_rounds"`
	YourScore int      `json:"your_score"`
	OppScore  int      `json:"opponent_score"`
	YouReady  bool     `json:"you_ready"`
	OppReady  bool     `json:"opponent_ready"`
}

// ReactionSignalView announces a phase of the live round.
type ReactionSignalView struct {
	Game    GameType `json:"game"`
	MatchID string   `json:"match_id"`
	Round   int      `json:"round"`
	Signal  string   `json:"signal"` // "countdown", "get_ready", "go" or "decoy"
}

// ReactionTapView is the immediate feedback to a participant who tapped.
type ReactionTapView struct {
	Game    GameType `json:"game"`
	MatchID string   `json:"match_id"`
	Round   int      `json:"round"`
	Seconds float64  `json:"seconds"`
	Points  int      `json:"points"`
}

// ReactionPenaltyView is the immediate feedback for tapping a decoy.
type ReactionPenaltyView struct {
	Game    GameType `json:"game"`
	MatchID string   `json:"match_id"`
	Round   int      `json:"round"`
	Penalty int      `json:"penalty"`
}

// ReactionRoundView summarizes a finished go-round for one participant.
type ReactionRoundView struct {
	Game      GameType `json:"game"`
	MatchID   string   `json:"match_id"`
	Round     int      `json:"round"`
	YouTapped bool     `json:"you_tapped"`
	YourTime  float64  `json:"your_time,omitempty"`
	YourGain  int      `json:"your_gain"`
	OppTapped bool     `json:"opponent_tapped"`
	OppTime   float64  `json:"opponent_time,omitempty"`
	OppGain   int      `json:"opponent_gain"`
	YourScore int      `json:"your_score"`
	OppScore  int      `json:"opponent_score"`
}

// ReactionDecoyView summarizes a finished decoy round for one participant.
type ReactionDecoyView struct {
	Game         GameType `json:"game"`
	MatchID      string   `json:"match_id"`
	Round        int      `json:"round"`
	YouPenalized bool     `json:"you_penalized"`
	OppPenalized bool     `json:"opponent_penalized"`
	YourScore    int      `json:"your_score"`
	OppScore     int      `json:"opponent_score"`
}

// reactionEngine runs the timed-reaction duel. It is the only engine with a
// double deferred-delay chain (ready -> countdown -> round start -> random
// pre-signal delay -> signal), so nearly every step carries its own guard.
type reactionEngine struct {
	r *Registry
}

func (e *reactionEngine) Init(m *Match) {
	m.State = &reactionState{
		round:     1,
		scores:    map[string]int{m.Players[0]: 0, m.Players[1]: 0},
		phase:     phaseAwaitingReady,
		ready:     make(map[string]bool),
		penalized: make(map[string]bool),
	}
	e.promptReady(m)
}

func (e *reactionEngine) ApplyAction(m *Match, actorID string, action Action) error {
	st := m.State.(*reactionState)
	switch action.(type) {
	case ReadyAction:
		return e.handleReady(m, st, actorID)
	case TapAction:
		return e.handleTap(m, st, actorID)
	case DecoyTapAction:
		return e.handleDecoyTap(m, st, actorID)
	default:
		return ErrInvalidAction
	}
}

func (e *reactionEngine) OnTimer(m *Match, tag TimerTag) {
	st := m.State.(*reactionState)
	switch tag {
	case timerReactionStart:
		e.startRound(m, st)
	case timerReactionSignal:
		e.showSignal(m, st)
	case timerReactionWindow:
		if !st.roundActive {
			return // round already ended on the second tap
		}
		e.endGoRound(m, st)
	case timerReactionDecoyAuto:
		if st.fakeOutTriggered {
			return // a wrong tap owns the resolution
		}
		e.resolveDecoy(m, st)
	case timerReactionDecoyResult:
		e.resolveDecoy(m, st)
	case timerReactionNextRound:
		e.promptReady(m)
	case timerReactionFinish:
		e.finish(m, st)
	}
}

func (e *reactionEngine) handleReady(m *Match, st *reactionState, actorID string) error {
	if st.phase != phaseAwaitingReady {
		return ErrInvalidAction
	}
	if st.ready[actorID] {
		return nil // ready is an idempotent set insertion
	}
	st.ready[actorID] = true

	if len(st.ready) < 2 {
		e.promptReady(m)
		return nil
	}

	e.r.notifyAll(m, func(p string) any {
		return ReactionSignalView{Game: TypeReaction, MatchID: m.ID, Round: st.round, Signal: "countdown"}
	})
	e.r.schedule(m.ID, timerReactionStart, e.r.timings.ReactionCountdown)
	return nil
}

// startRound fires after the countdown: show the pre-signal notice, then wait
// a random interval before revealing the signal.
func (e *reactionEngine) startRound(m *Match, st *reactionState) {
	if st.roundStarting {
		return
	}
	st.roundStarting = true
	st.phase = phaseRoundPending

	e.r.notifyAll(m, func(p string) any {
		return ReactionSignalView{Game: TypeReaction, MatchID: m.ID, Round: st.round, Signal: "get_ready"}
	})

	spread := e.r.timings.SignalDelayMax - e.r.timings.SignalDelayMin
	delay := e.r.timings.SignalDelayMin + time.Duration(randRoll()*float64(spread))
	e.r.schedule(m.ID, timerReactionSignal, delay)
}

// showSignal decides go vs decoy and opens the corresponding window.
func (e *reactionEngine) showSignal(m *Match, st *reactionState) {
	if st.targetShowing {
		return
	}
	st.targetShowing = true
	st.roundStarting = false
	st.phase = phaseTargetShown

	genuine := st.greenCount < ReactionGreenCap && randRoll() < ReactionGreenOdds
	if genuine {
		st.roundActive = true
		st.roundStart = timeNow()
		st.greenCount++
		st.taps = make(map[string]reactionTap)

		log.Printf("[REACTION] %s round %d: go signal", m.ID, st.round)
		e.r.notifyAll(m, func(p string) any {
			return ReactionSignalView{Game: TypeReaction, MatchID: m.ID, Round: st.round, Signal: "go"}
		})
		e.r.schedule(m.ID, timerReactionWindow, e.r.timings.ReactionWindow)
		return
	}

	log.Printf("[REACTION] %s round %d: decoy signal", m.ID, st.round)
	e.r.notifyAll(m, func(p string) any {
		return ReactionSignalView{Game: TypeReaction, MatchID: m.ID, Round: st.round, Signal: "decoy"}
	})
	e.r.schedule(m.ID, timerReactionDecoyAuto, e.r.timings.DecoyAutoResolve)
}

func (e *reactionEngine) handleTap(m *Match, st *reactionState, actorID string) error {
	if !st.roundActive {
		return ErrInvalidAction
	}
	if _, tapped := st.taps[actorID]; tapped {
		return ErrInvalidAction // one tap per participant per round
	}

	now := timeNow()
	elapsed := now.Sub(st.roundStart)

	if len(st.taps) == 0 {
		st.firstTapAt = now
	} else {
		// Second tapper: if they followed within the simultaneity window,
		// subtract the remainder to compensate for perceived simultaneity.
		diff := now.Sub(st.firstTapAt)
		if diff < simultaneityWindow {
			elapsed -= simultaneityWindow - diff
		}
	}
	if elapsed < ReactionTapFloor {
		elapsed = ReactionTapFloor
	}

	points := reactionPoints(elapsed)
	st.scores[actorID] += points
	st.taps[actorID] = reactionTap{elapsed: elapsed, points: points, at: now}
	log.Printf("[REACTION] %s round %d: %s tapped %.3fs +%d", m.ID, st.round, actorID, elapsed.Seconds(), points)

	e.r.notifier.Notify(actorID, ReactionTapView{
		Game:    TypeReaction,
		MatchID: m.ID,
		Round:   st.round,
		Seconds: elapsed.Seconds(),
		Points:  points,
	})

	if len(st.taps) == 2 {
		e.endGoRound(m, st)
	}
	return nil
}

func (e *reactionEngine) handleDecoyTap(m *Match, st *reactionState, actorID string) error {
	if !st.targetShowing || st.roundActive {
		return ErrInvalidAction
	}
	if st.penalized[actorID] {
		return nil // penalty applies at most once per participant per round
	}

	st.penalized[actorID] = true
	st.scores[actorID] -= ReactionPenalty
	log.Printf("[REACTION] %s round %d: %s tapped the decoy (-%d)", m.ID, st.round, actorID, ReactionPenalty)

	e.r.notifier.Notify(actorID, ReactionPenaltyView{
		Game:    TypeReaction,
		MatchID: m.ID,
		Round:   st.round,
		Penalty: ReactionPenalty,
	})

	// Only the first processed wrong tap schedules the resolution; later
	// ones in the same round still took their own penalty above.
	if !st.fakeOutTriggered {
		st.fakeOutTriggered = true
		e.r.schedule(m.ID, timerReactionDecoyResult, e.r.timings.DisplayDelay)
	}
	return nil
}

// endGoRound closes a go-round, reachable from both the window-timeout timer
// and a second tap arriving at the boundary.
func (e *reactionEngine) endGoRound(m *Match, st *reactionState) {
	if st.roundEnding {
		return
	}
	st.roundEnding = true
	st.roundActive = false
	st.targetShowing = false
	st.ready = make(map[string]bool)

	e.r.notifyAll(m, func(p string) any {
		opp := m.opponent(p)
		v := ReactionRoundView{
			Game:      TypeReaction,
			MatchID:   m.ID,
			Round:     st.round,
			YourScore: st.scores[p],
			OppScore:  st.scores[opp],
		}
		if tap, ok := st.taps[p]; ok {
			v.YouTapped = true
			v.YourTime = tap.elapsed.Seconds()
			v.YourGain = tap.points
		}
		if tap, ok := st.taps[opp]; ok {
			v.OppTapped = true
			v.OppTime = tap.elapsed.Seconds()
			v.OppGain = tap.points
		}
		return v
	})

	st.taps = nil
	st.roundEnding = false
	e.advance(m, st)
}

// resolveDecoy closes a decoy round, reachable from the auto-resolve timer
// (nobody tapped) or the deferred resolution scheduled by the first wrong tap.
func (e *reactionEngine) resolveDecoy(m *Match, st *reactionState) {
	if !st.targetShowing || st.roundActive {
		return // stale delivery; the round already resolved
	}

	e.r.notifyAll(m, func(p string) any {
		return ReactionDecoyView{
			Game:         TypeReaction,
			MatchID:      m.ID,
			Round:        st.round,
			YouPenalized: st.penalized[p],
			OppPenalized: st.penalized[m.opponent(p)],
			YourScore:    st.scores[p],
			OppScore:     st.scores[m.opponent(p)],
		}
	})

	st.penalized = make(map[string]bool)
	st.fakeOutTriggered = false
	st.targetShowing = false
	st.ready = make(map[string]bool)
	e.advance(m, st)
}

// advance moves to the next round prompt or, after the final round, to the
// terminal transition.
func (e *reactionEngine) advance(m *Match, st *reactionState) {
	if st.round >= ReactionMaxRounds {
		e.r.schedule(m.ID, timerReactionFinish, e.r.timings.DisplayDelay)
		return
	}
	st.round++
	st.phase = phaseAwaitingReady
	e.r.schedule(m.ID, timerReactionNextRound, e.r.timings.DisplayDelay)
}

func (e *reactionEngine) finish(m *Match, st *reactionState) {
	p1, p2 := m.Players[0], m.Players[1]
	winnerID := ""
	switch {
	case st.scores[p1] > st.scores[p2]:
		winnerID = p1
	case st.scores[p2] > st.scores[p1]:
		winnerID = p2
	}

	e.r.notifyAll(m, func(p string) any {
		return ResultView{
			Game:      TypeReaction,
			MatchID:   m.ID,
			Outcome:   outcomeFor(p, winnerID),
			YourScore: st.scores[p],
			OppScore:  st.scores[m.opponent(p)],
		}
	})
	e.r.endMatch(m, winnerID, st.scores)
}

func (e *reactionEngine) promptReady(m *Match) {
	st := m.State.(*reactionState)
	e.r.notifyAll(m, func(p string) any {
		return ReactionPromptView{
			Game:      TypeReaction,
			MatchID:   m.ID,
			Round:     st.round,
			MaxRounds: ReactionMaxRounds,
			YourScore: st.scores[p],
			OppScore:  st.scores[m.opponent(p)],
			YouReady:  st.ready[p],
			OppReady:  st.ready[m.opponent(p)],
		}
	})
}

// reactionPoints maps elapsed time to points along a decreasing
// piecewise-linear curve: 0.5s -> 100, 1s -> 75, 2s -> 30, 3s -> 10, with a
// floor of 10 for any tap inside the window.
func reactionPoints(elapsed time.Duration) int {
	s := elapsed.Seconds()
	var p int
	switch {
	case s <= 0.5:
		p = 100
	case s <= 1.0:
		p = int(100 - (s-0.5)*50)
	case s <= 2.0:
		p = int(75 - (s-1.0)*45)
	case s <= 3.0:
		p = int(30 - (s-2.0)*20)
	default:
		p = 10
	}
	if p < 10 {
		p = 10
	}
	return p
}
