package game

// Action is an inbound participant decision. The transport layer decodes the
// wire payload into one of the concrete action types below; engines reject a
// type that does not belong to their game with ErrInvalidAction.
type Action interface {
	isAction()
}

// MoveAction places a mark on the tic-tac-toe grid.
type MoveAction struct {
	Row, Col int
}

// ChoiceAction submits a symbol for the current RPS round.
type ChoiceAction struct {
	Symbol Symbol
}

// ReadyAction signals readiness for the next reaction round.
type ReadyAction struct{}

// TapAction is a tap on a genuine go signal.
type TapAction struct{}

// DecoyTapAction is a tap on a decoy (no-go) signal.
type DecoyTapAction struct{}

// SelectAction reveals a memory tile.
type SelectAction struct {
	Tile int
}

func (MoveAction) isAction()     {}
func (ChoiceAction) isAction()   {}
func (ReadyAction) isAction()    {}
func (TapAction) isAction()      {}
func (DecoyTapAction) isAction() {}
func (SelectAction) isAction()   {}

// TimerTag names a deferred transition. Tags are scoped per game type; a tag
// arriving at a match whose engine does not know it is dropped.
type TimerTag string

const (
	timerRPSNextRound TimerTag = "rps_next_round"
	timerRPSFinish    TimerTag = "rps_finish"

	timerReactionStart       TimerTag = "reaction_start"
	timerReactionSignal      TimerTag = "reaction_signal"
	timerReactionWindow      TimerTag = "reaction_window"
	timerReactionDecoyAuto   TimerTag = "reaction_decoy_auto"
	timerReactionDecoyResult TimerTag = "reaction_decoy_result"
	timerReactionNextRound   TimerTag = "reaction_next_round"
	timerReactionFinish      TimerTag = "reaction_finish"

	timerMemoryResolve TimerTag = "memory_resolve"

	timerQANextRound TimerTag = "qa_next_round"
	timerQAFinish    TimerTag = "qa_finish"
)

// Engine is the phase state machine for one game type. All three methods are
// invoked with the match lock held; they mutate match state, notify
// participants and schedule follow-up timers, but never block.
type Engine interface {
	// Init sets the initial game state and prompts both participants.
	// Called when the second participant joins.
	Init(m *Match)

	// ApplyAction validates that the actor holds a pending decision and
	// advances the match, or returns one of the sentinel errors. A nil
	// return with no state change is a guard no-op (the transition already
	// ran on another trigger).
	ApplyAction(m *Match, actorID string, action Action) error

	// OnTimer handles a deferred transition. It is a no-op whenever the
	// relevant guard flag shows the step already ran.
	OnTimer(m *Match, tag TimerTag)
}

// textEngine is implemented by engines driven by free-form text (Q&A).
type textEngine interface {
	// HandleText consumes a free-text submission, returning false when the
	// match is not awaiting this actor's input.
	HandleText(m *Match, actorID, text string) bool
}
