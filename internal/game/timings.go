package game

import "time"

// Gameplay timing constants. These match the pacing the games were tuned
// with; shrinking them is only intended for tests (see Timings).
const (
	DefaultWaitingExpiry     = 10 * time.Minute
	DefaultSweepInterval     = 30 * time.Second
	DefaultDisplayDelay      = 2 * time.Second         // pause between a round's result and the next prompt
	DefaultReactionCountdown = 10 * time.Second        // both-ready -> round start
	DefaultSignalDelayMin    = 2500 * time.Millisecond // round start -> signal, lower bound
	DefaultSignalDelayMax    = 3500 * time.Millisecond // round start -> signal, upper bound
	DefaultReactionWindow    = 4 * time.Second         // tap window on a go signal
	DefaultDecoyAutoResolve  = 3 * time.Second         // decoy round resolves if nobody taps
	DefaultMemoryRevealDelay = 1500 * time.Millisecond

	ReactionMaxRounds = 5
	ReactionGreenCap  = 3   // at most 3 of 5 rounds show a genuine go signal
	ReactionGreenOdds = 0.7 // chance of a go signal while under the cap
	ReactionPenalty   = 20  // points lost for tapping a decoy
	ReactionTapFloor  = 100 * time.Millisecond
	RPSTargetWins     = 2 // first to 2 round wins
	MemoryPairs       = 6
	MemoryRows        = 3
	MemoryCols        = 4
	QARounds          = 6
)

// Timings bundles every deferred-transition delay so tests can run the
// state machines at full speed.
type Timings struct {
	WaitingExpiry     time.Duration
	SweepInterval     time.Duration
	DisplayDelay      time.Duration
	ReactionCountdown time.Duration
	SignalDelayMin    time.Duration
	SignalDelayMax    time.Duration
	ReactionWindow    time.Duration
	DecoyAutoResolve  time.Duration
	MemoryRevealDelay time.Duration
}

// DefaultTimings returns the production pacing.
func DefaultTimings() Timings {
	return Timings{
		WaitingExpiry:     DefaultWaitingExpiry,
		SweepInterval:     DefaultSweepInterval,
		DisplayDelay:      DefaultDisplayDelay,
		ReactionCountdown: DefaultReactionCountdown,
		SignalDelayMin:    DefaultSignalDelayMin,
		SignalDelayMax:    DefaultSignalDelayMax,
		ReactionWindow:    DefaultReactionWindow,
		DecoyAutoResolve:  DefaultDecoyAutoResolve,
		MemoryRevealDelay: DefaultMemoryRevealDelay,
	}
}
