package game

import (
	"log"
	"strings"
)

type qaPhase string

const (
	qaPhaseQuestion qaPhase = "question" // asker writes the question
	qaPhaseAnswer   qaPhase = "answer"   // asker writes the answer key
	qaPhaseGuess    qaPhase = "guess"    // answerer guesses
)

type qaState struct {
	round     int
	asker     string
	answerer  string
	phase     qaPhase
	question  string
	answerKey string
	scores    map[string]int
}

// QAPromptView tells a participant what the duel expects of them right now.
type QAPromptView struct {
	Game      GameType `json:"game"`
	MatchID   string   `json:"match_id"`
	Round     int      `json:"round"`
	MaxRounds int      `json:"max_rounds"`
	Phase     qaPhase  `json:"phase"`
	YourTurn  bool     `json:"your_turn"`
	Question  string   `json:"question,omitempty"`
	YourScore int      `json:"your_score"`
	OppScore  int      `json:"opponent_score"`
}

// QARoundView reports a settled round to both participants.
type QARoundView struct {
	Game      GameType `json:"game"`
	MatchID   string   `json:"match_id"`
	Round     int      `json:"round"`
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Guess     string   `json:"guess"`
	Correct   bool     `json:"correct"`
	YourScore int      `json:"your_score"`
	OppScore  int      `json:"opponent_score"`
}

// qaEngine runs the question-and-answer duel. Unlike the other engines it is
// driven by free text rather than structured actions; the registry routes
// chat input here through its participant index.
type qaEngine struct {
	r *Registry
}

func (e *qaEngine) Init(m *Match) {
	m.State = &qaState{
		round:    1,
		asker:    m.Players[0],
		answerer: m.Players[1],
		phase:    qaPhaseQuestion,
		scores:   map[string]int{m.Players[0]: 0, m.Players[1]: 0},
	}
	e.prompt(m)
}

// ApplyAction rejects everything; the duel has no structured actions.
func (e *qaEngine) ApplyAction(m *Match, actorID string, action Action) error {
	return ErrInvalidAction
}

func (e *qaEngine) OnTimer(m *Match, tag TimerTag) {
	st := m.State.(*qaState)
	switch tag {
	case timerQANextRound:
		e.prompt(m)
	case timerQAFinish:
		e.finish(m, st)
	}
}

// HandleText consumes a chat message if the duel is waiting on this
// participant; it returns false for text that belongs to someone else's turn
// so the caller can treat it as ordinary chat.
func (e *qaEngine) HandleText(m *Match, actorID, text string) bool {
	st := m.State.(*qaState)
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	switch {
	case st.phase == qaPhaseQuestion && actorID == st.asker:
		st.question = text
		st.phase = qaPhaseAnswer
		e.prompt(m)
		return true

	case st.phase == qaPhaseAnswer && actorID == st.asker:
		st.answerKey = text
		st.phase = qaPhaseGuess
		e.prompt(m)
		return true

	case st.phase == qaPhaseGuess && actorID == st.answerer:
		correct := answerSimilar(st.answerKey, text)
		if correct {
			st.scores[st.answerer]++
		}
		log.Printf("[QA] %s round %d: guess by %s correct=%v", m.ID, st.round, actorID, correct)

		e.r.notifyAll(m, func(p string) any {
			return QARoundView{
				Game:      TypeQA,
				MatchID:   m.ID,
				Round:     st.round,
				Question:  st.question,
				Answer:    st.answerKey,
				Guess:     text,
				Correct:   correct,
				YourScore: st.scores[p],
				OppScore:  st.scores[m.opponent(p)],
			}
		})

		if st.round >= QARounds {
			e.r.schedule(m.ID, timerQAFinish, e.r.timings.DisplayDelay)
		} else {
			st.round++
			st.asker, st.answerer = st.answerer, st.asker
			st.phase = qaPhaseQuestion
			st.question = ""
			st.answerKey = ""
			e.r.schedule(m.ID, timerQANextRound, e.r.timings.DisplayDelay)
		}
		return true
	}
	return false
}

func (e *qaEngine) finish(m *Match, st *qaState) {
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
			Game:      TypeQA,
			MatchID:   m.ID,
			Outcome:   outcomeFor(p, winnerID),
			YourScore: st.scores[p],
			OppScore:  st.scores[m.opponent(p)],
		}
	})
	e.r.endMatch(m, winnerID, st.scores)
}

func (e *qaEngine) prompt(m *Match) {
	st := m.State.(*qaState)
	e.r.notifyAll(m, func(p string) any {
		v := QAPromptView{
			Game:      TypeQA,
			MatchID:   m.ID,
			Round:     st.round,
			MaxRounds: QARounds,
			Phase:     st.phase,
			YourScore: st.scores[p],
			OppScore:  st.scores[m.opponent(p)],
		}
		switch st.phase {
		case qaPhaseQuestion:
			v.YourTurn = p == st.asker
		case qaPhaseAnswer:
			v.YourTurn = p == st.asker
			v.Question = st.question
		case qaPhaseGuess:
			v.YourTurn = p == st.answerer
			v.Question = st.question
		}
		return v
	})
}
