package game

import (
	"log"
	"math/rand"
)

var memorySymbols = []string{"apple", "banana", "cherry", "grape", "orange", "kiwi"}

type memoryTile struct {
	symbol   string
	revealed bool
	matched  bool
}

type memoryState struct {
	tiles        []memoryTile
	current      int // index into m.Players
	scores       map[string]int
	selected     []int
	matchedPairs int
	pendingMatch bool
	turnLocked   bool // set between the second selection and its resolution
}

// MemoryTileView is a single cell as one participant may see it. Hidden tiles
// carry no symbol.
type MemoryTileView struct {
	Symbol   string `json:"symbol,omitempty"`
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`
}

// MemoryView is the per-participant board state.
type MemoryView struct {
	Game      GameType         `json:"game"`
	MatchID   string           `json:"match_id"`
	Tiles     []MemoryTileView `json:"tiles"`
	Rows      int              `json:"rows"`
	Cols      int              `json:"cols"`
	YourTurn  bool             `json:"your_turn"`
	YourScore int              `json:"your_score"`
	OppScore  int              `json:"opponent_score"`
	Pairs     int              `json:"pairs_found"`
}

// memoryEngine runs the tile-matching duel. The only deferred transition is
// the reveal resolution, which keeps mismatched tiles face-up briefly before
// hiding them and passing the turn.
type memoryEngine struct {
	r *Registry
}

func (e *memoryEngine) Init(m *Match) {
	symbols := make([]string, 0, MemoryPairs*2)
	for _, s := range memorySymbols {
		symbols = append(symbols, s, s)
	}
	rand.Shuffle(len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})

	tiles := make([]memoryTile, len(symbols))
	for i, s := range symbols {
		tiles[i] = memoryTile{symbol: s}
	}
	m.State = &memoryState{
		tiles:  tiles,
		scores: map[string]int{m.Players[0]: 0, m.Players[1]: 0},
	}
	e.notifyBoard(m)
}

func (e *memoryEngine) ApplyAction(m *Match, actorID string, action Action) error {
	sel, ok := action.(SelectAction)
	if !ok {
		return ErrInvalidAction
	}
	st := m.State.(*memoryState)

	if actorID != m.Players[st.current] {
		return ErrNotYourTurn
	}
	if st.turnLocked {
		return ErrInvalidAction // waiting for the reveal to resolve
	}
	if sel.Tile < 0 || sel.Tile >= len(st.tiles) {
		return ErrInvalidAction
	}
	t := &st.tiles[sel.Tile]
	if t.matched || t.revealed {
		return ErrInvalidAction
	}

	t.revealed = true
	st.selected = append(st.selected, sel.Tile)

	if len(st.selected) < 2 {
		e.notifyBoard(m)
		return nil
	}

	// Second pick: compare and score now; the resolve timer only settles
	// the board view and the turn.
	a, b := &st.tiles[st.selected[0]], &st.tiles[st.selected[1]]
	if a.symbol == b.symbol {
		a.matched = true
		b.matched = true
		st.scores[actorID]++
		st.matchedPairs++
		st.pendingMatch = true
		log.Printf("[MEMORY] %s: %s matched %q (%d/%d pairs)", m.ID, actorID, a.symbol, st.matchedPairs, MemoryPairs)
	} else {
		st.pendingMatch = false
	}
	st.turnLocked = true
	e.notifyBoard(m)
	e.r.schedule(m.ID, timerMemoryResolve, e.r.timings.MemoryRevealDelay)
	return nil
}

func (e *memoryEngine) OnTimer(m *Match, tag TimerTag) {
	if tag != timerMemoryResolve {
		return
	}
	st := m.State.(*memoryState)
	if !st.turnLocked {
		return // stale resolve
	}

	if !st.pendingMatch {
		for _, i := range st.selected {
			st.tiles[i].revealed = false
		}
		st.current = 1 - st.current // a miss passes the turn; a match keeps it
	}
	st.selected = nil
	st.turnLocked = false

	if st.matchedPairs >= MemoryPairs {
		e.finish(m, st)
		return
	}
	e.notifyBoard(m)
}

func (e *memoryEngine) finish(m *Match, st *memoryState) {
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
			Game:      TypeMemory,
			MatchID:   m.ID,
			Outcome:   outcomeFor(p, winnerID),
			YourScore: st.scores[p],
			OppScore:  st.scores[m.opponent(p)],
		}
	})
	e.r.endMatch(m, winnerID, st.scores)
}

func (e *memoryEngine) notifyBoard(m *Match) {
	st := m.State.(*memoryState)
	e.r.notifyAll(m, func(p string) any {
		tiles := make([]MemoryTileView, len(st.tiles))
		for i, t := range st.tiles {
			tv := MemoryTileView{Revealed: t.revealed, Matched: t.matched}
			if t.revealed || t.matched {
				tv.Symbol = t.symbol
			}
			tiles[i] = tv
		}
		return MemoryView{
			Game:      TypeMemory,
			MatchID:   m.ID,
			Tiles:     tiles,
			Rows:      MemoryRows,
			Cols:      MemoryCols,
			YourTurn:  p == m.Players[st.current] && !st.turnLocked,
			YourScore: st.scores[p],
			OppScore:  st.scores[m.opponent(p)],
			Pairs:     st.matchedPairs,
		}
	})
}
