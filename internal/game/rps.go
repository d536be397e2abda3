package game

import "log"

// Symbol is one of the five RPS throws.
type Symbol string

const (
	Rock     Symbol = "rock"
	Paper    Symbol = "paper"
	Scissors Symbol = "scissors"
	Gun      Symbol = "gun"
	Judo     Symbol = "judo"
)

// rpsBeats holds the fixed asymmetric beats-relation: each symbol beats
// exactly two others and loses to exactly two.
var rpsBeats = map[[2]Symbol]bool{
	{Rock, Scissors}:     true,
	{Rock, Judo}:         true,
	{Paper, Rock}:        true,
	{Paper, Gun}:         true,
	{Scissors, Paper}:    true,
	{Scissors, Judo}:     true,
	{Gun, Rock}:          true,
	{Gun, Scissors}:      true,
	{Judo, Paper}:        true,
	{Judo, Gun}:          true,
}

// Beats reports whether a wins against b. Identical symbols tie.
func Beats(a, b Symbol) bool {
	return rpsBeats[[2]Symbol{a, b}]
}

// ValidSymbol reports whether s is one of the five throws.
func ValidSymbol(s Symbol) bool {
	switch s {
	case Rock, Paper, Scissors, Gun, Judo:
		return true
	}
	return false
}

type rpsState struct {
	round   int
	scores  map[string]int
	choices map[string]Symbol

	// processing latches round resolution so two submissions landing at the
	// same instant cannot resolve the round twice.
	processing bool
}

// RPSView is the per-participant rendering of a round.
type RPSView struct {
	Game       GameType `json:"game"`
	MatchID    string   `json:"match_id"`
	Round      int      `json:"round"`
	YourScore  int      `json:"your_score"`
	OppScore   int      `json:"opponent_score"`
	YourChoice Symbol   `json:"your_choice,omitempty"`
	Waiting    bool     `json:"waiting"` // you chose, opponent hasn't
}

// RPSRoundResultView is sent to both participants when a round resolves.
type RPSRoundResultView struct {
	Game      GameType `json:"game"`
	MatchID   string   `json:"match_id"`
	Round     int      `json:"round"`
	YourPlay  Symbol   `json:"your_play"`
	OppPlay   Symbol   `json:"opponent_play"`
	Result    string   `json:"result"` // "won", "lost" or "tie"
	YourScore int      `json:"your_score"`
	OppScore  int      `json:"opponent_score"`
}

type rpsEngine struct {
	r *Registry
}

func (e *rpsEngine) Init(m *Match) {
	m.State = &rpsState{
		round:   1,
		scores:  map[string]int{m.Players[0]: 0, m.Players[1]: 0},
		choices: make(map[string]Symbol),
	}
	e.prompt(m)
}

func (e *rpsEngine) ApplyAction(m *Match, actorID string, action Action) error {
	choice, ok := action.(ChoiceAction)
	if !ok || !ValidSymbol(choice.Symbol) {
		return ErrInvalidAction
	}
	st := m.State.(*rpsState)

	if st.processing {
		return nil // round already resolving; drop the straggler
	}
	if _, chosen := st.choices[actorID]; chosen {
		return ErrInvalidAction
	}

	st.choices[actorID] = choice.Symbol
	if len(st.choices) < 2 {
		e.prompt(m)
		return nil
	}

	st.processing = true
	e.resolveRound(m, st)
	return nil
}

func (e *rpsEngine) OnTimer(m *Match, tag TimerTag) {
	st := m.State.(*rpsState)
	switch tag {
	case timerRPSNextRound:
		e.prompt(m)
	case timerRPSFinish:
		e.finish(m, st)
	}
}

// resolveRound scores the completed round and schedules what follows the
// 2-unit result display: either the next round's prompt or the terminal
// transition.
func (e *rpsEngine) resolveRound(m *Match, st *rpsState) {
	p1, p2 := m.Players[0], m.Players[1]
	c1, c2 := st.choices[p1], st.choices[p2]

	winner := ""
	if c1 != c2 {
		if Beats(c1, c2) {
			winner = p1
		} else {
			winner = p2
		}
		st.scores[winner]++
	}
	log.Printf("[RPS] %s round %d: %s vs %s winner=%q", m.ID, st.round, c1, c2, winner)

	round := st.round
	e.r.notifyAll(m, func(p string) any {
		result := "tie"
		if winner != "" {
			result = "lost"
			if p == winner {
				result = "won"
			}
		}
		return RPSRoundResultView{
			Game:      TypeRPS,
			MatchID:   m.ID,
			Round:     round,
			YourPlay:  st.choices[p],
			OppPlay:   st.choices[m.opponent(p)],
			Result:    result,
			YourScore: st.scores[p],
			OppScore:  st.scores[m.opponent(p)],
		}
	})

	st.choices = make(map[string]Symbol)
	st.processing = false

	if st.scores[p1] >= RPSTargetWins || st.scores[p2] >= RPSTargetWins {
		e.r.schedule(m.ID, timerRPSFinish, e.r.timings.DisplayDelay)
		return
	}
	st.round++
	e.r.schedule(m.ID, timerRPSNextRound, e.r.timings.DisplayDelay)
}

func (e *rpsEngine) finish(m *Match, st *rpsState) {
	p1, p2 := m.Players[0], m.Players[1]
	winnerID := p1
	if st.scores[p2] > st.scores[p1] {
		winnerID = p2
	}

	e.r.notifyAll(m, func(p string) any {
		return ResultView{
			Game:      TypeRPS,
			MatchID:   m.ID,
			Outcome:   outcomeFor(p, winnerID),
			YourScore: st.scores[p],
			OppScore:  st.scores[m.opponent(p)],
		}
	})
	e.r.endMatch(m, winnerID, st.scores)
}

func (e *rpsEngine) prompt(m *Match) {
	st := m.State.(*rpsState)
	e.r.notifyAll(m, func(p string) any {
		choice, chosen := st.choices[p]
		return RPSView{
			Game:       TypeRPS,
			MatchID:    m.ID,
			Round:      st.round,
			YourScore:  st.scores[p],
			OppScore:   st.scores[m.opponent(p)],
			YourChoice: choice,
			Waiting:    chosen,
		}
	})
}
