package game

import "log"

// Mark is one cell of the tic-tac-toe grid.
type Mark string

const (
	MarkNone Mark = ""
	MarkX    Mark = "X"
	MarkO    Mark = "O"
)

type tttState struct {
	board [3][3]Mark
	turn  int             // index into m.Players
	marks map[string]Mark // participant id -> mark
}

// TicTacToeView is the per-participant rendering of the grid game.
type TicTacToeView struct {
	Game     GameType   `json:"game"`
	MatchID  string     `json:"match_id"`
	Board    [][]string `json:"board"`
	YourMark Mark       `json:"your_mark"`
	YourTurn bool       `json:"your_turn"`
}

// tttEngine implements the grid strategy game. Every transition is
// actor-triggered; no timers are involved.
type tttEngine struct {
	r *Registry
}

func (e *tttEngine) Init(m *Match) {
	st := &tttState{
		marks: map[string]Mark{
			m.Players[0]: MarkX,
			m.Players[1]: MarkO,
		},
	}
	m.State = st
	e.notifyBoard(m, st)
}

func (e *tttEngine) ApplyAction(m *Match, actorID string, action Action) error {
	move, ok := action.(MoveAction)
	if !ok {
		return ErrInvalidAction
	}
	st := m.State.(*tttState)

	if actorID != m.Players[st.turn] {
		return ErrNotYourTurn
	}
	if move.Row < 0 || move.Row > 2 || move.Col < 0 || move.Col > 2 {
		return ErrInvalidAction
	}
	if st.board[move.Row][move.Col] != MarkNone {
		return ErrInvalidAction
	}

	st.board[move.Row][move.Col] = st.marks[actorID]
	log.Printf("[TTT] %s: %s played %s at %d,%d", m.ID, actorID, st.marks[actorID], move.Row, move.Col)

	if winner := checkLines(st.board); winner != MarkNone {
		e.finish(m, st, actorID)
		return nil
	}
	if boardFull(st.board) {
		// A full board with no line counts as a loss for both sides.
		e.finish(m, st, "")
		return nil
	}

	st.turn = 1 - st.turn
	e.notifyBoard(m, st)
	return nil
}

func (e *tttEngine) OnTimer(m *Match, tag TimerTag) {}

func (e *tttEngine) finish(m *Match, st *tttState, winnerID string) {
	board := renderBoard(st.board)
	e.r.notifyAll(m, func(p string) any {
		return ResultView{
			Game:    TypeTicTacToe,
			MatchID: m.ID,
			Outcome: outcomeFor(p, winnerID),
			Board:   board,
		}
	})
	e.r.endMatch(m, winnerID, nil)
}

func (e *tttEngine) notifyBoard(m *Match, st *tttState) {
	board := renderBoard(st.board)
	current := m.Players[st.turn]
	e.r.notifyAll(m, func(p string) any {
		return TicTacToeView{
			Game:     TypeTicTacToe,
			MatchID:  m.ID,
			Board:    board,
			YourMark: st.marks[p],
			YourTurn: p == current,
		}
	})
}

// checkLines scans the 8 winning lines and returns the winning mark, if any.
func checkLines(b [3][3]Mark) Mark {
	for i := 0; i < 3; i++ {
		if b[i][0] != MarkNone && b[i][0] == b[i][1] && b[i][1] == b[i][2] {
			return b[i][0]
		}
		if b[0][i] != MarkNone && b[0][i] == b[1][i] && b[1][i] == b[2][i] {
			return b[0][i]
		}
	}
	if b[1][1] != MarkNone {
		if b[0][0] == b[1][1] && b[1][1] == b[2][2] {
			return b[1][1]
		}
		if b[0][2] == b[1][1] && b[1][1] == b[2][0] {
			return b[1][1]
		}
	}
	return MarkNone
}

func boardFull(b [3][3]Mark) bool {
	for i := range b {
		for j := range b[i] {
			if b[i][j] == MarkNone {
				return false
			}
		}
	}
	return true
}

func renderBoard(b [3][3]Mark) [][]string {
	out := make([][]string, 3)
	for i := range b {
		out[i] = make([]string, 3)
		for j := range b[i] {
			out[i][j] = string(b[i][j])
		}
	}
	return out
}
