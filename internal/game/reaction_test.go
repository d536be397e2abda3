package game

import (
	"errors"
	"testing"
	"time"
)

func TestReactionPointsCurve(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{100 * time.Millisecond, 100},
		{500 * time.Millisecond, 100},
		{750 * time.Millisecond, 87},
		{1 * time.Second, 75},
		{1500 * time.Millisecond, 52},
		{2 * time.Second, 30},
		{2500 * time.Millisecond, 20},
		{3 * time.Second, 10},
		{3900 * time.Millisecond, 10},
	}
	for _, c := range cases {
		if got := reactionPoints(c.elapsed); got != c.want {
			t.Errorf("reactionPoints(%v) = %d, want %d", c.elapsed, got, c.want)
		}
	}

	// Monotonically non-increasing across the window.
	prev := reactionPoints(ReactionTapFloor)
	for d := ReactionTapFloor; d <= DefaultReactionWindow; d += 50 * time.Millisecond {
		p := reactionPoints(d)
		if p > prev {
			t.Fatalf("points increased from %d to %d at %v", prev, p, d)
		}
		prev = p
	}
}

// readyBoth drives a round up to the go/decoy signal. The caller stubs the
// rolls; the first roll picks the signal delay, the second picks go vs decoy.
func readyBoth(t *testing.T, env *testEnv, matchID string) {
	t.Helper()
	if err := env.registry.HandleAction(matchID, "alice", ReadyAction{}); err != nil {
		t.Fatalf("alice ready failed: %v", err)
	}
	if err := env.registry.HandleAction(matchID, "bob", ReadyAction{}); err != nil {
		t.Fatalf("bob ready failed: %v", err)
	}
	env.sched.fire(t) // countdown elapsed: round starts
	env.sched.fire(t) // signal delay elapsed: signal shows
}

func TestReactionGoRoundScoresBothTaps(t *testing.T) {
	env := newTestEnv()
	advance := stubClock(t, time.Unix(1700000000, 0))
	stubRolls(t, 0.5, 0.0) // go signal
	matchID := env.startMatch(t, TypeReaction)

	// Tapping before the signal is rejected.
	if err := env.registry.HandleAction(matchID, "alice", TapAction{}); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction tapping before the signal, got %v", err)
	}

	readyBoth(t, env, matchID)
	sig := env.notifier.last(t, "alice").(ReactionSignalView)
	if sig.Signal != "go" {
		t.Fatalf("signal = %q, want go", sig.Signal)
	}

	advance(1 * time.Second)
	if err := env.registry.HandleAction(matchID, "alice", TapAction{}); err != nil {
		t.Fatalf("alice tap failed: %v", err)
	}
	if err := env.registry.HandleAction(matchID, "alice", TapAction{}); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction for a second tap, got %v", err)
	}

	advance(1 * time.Second)
	if err := env.registry.HandleAction(matchID, "bob", TapAction{}); err != nil {
		t.Fatalf("bob tap failed: %v", err)
	}

	// Both tapped: the round ended without waiting for the window timer.
	round := env.notifier.last(t, "alice").(ReactionRoundView)
	if !round.YouTapped || !round.OppTapped {
		t.Fatalf("round result missing taps: %+v", round)
	}
	if round.YourScore != 75 {
		t.Errorf("alice score = %d, want 75 for a 1s tap", round.YourScore)
	}
	if round.OppScore != 30 {
		t.Errorf("bob score = %d, want 30 for a 2s tap", round.OppScore)
	}

	// The stale window timer is a no-op.
	env.sched.fire(t) // next-round prompt
	env.sched.fire(t) // leftover window timer
	prompt := env.notifier.last(t, "alice").(ReactionPromptView)
	if prompt.Round != 2 {
		t.Errorf("round = %d, want 2", prompt.Round)
	}
}

func TestReactionSimultaneityAdjustment(t *testing.T) {
	env := newTestEnv()
	advance := stubClock(t, time.Unix(1700000000, 0))
	stubRolls(t, 0.5, 0.0)
	matchID := env.startMatch(t, TypeReaction)
	readyBoth(t, env, matchID)

	advance(1 * time.Second)
	env.registry.HandleAction(matchID, "alice", TapAction{})
	advance(200 * time.Millisecond)
	env.registry.HandleAction(matchID, "bob", TapAction{})

	// Bob followed within 0.5s, so 0.3s is forgiven: 1.2s counts as 0.9s.
	round := env.notifier.last(t, "bob").(ReactionRoundView)
	if round.YourScore != 80 {
		t.Errorf("bob adjusted score = %d, want 80", round.YourScore)
	}
}

func TestReactionDecoyPenaltyOncePerRound(t *testing.T) {
	env := newTestEnv()
	stubClock(t, time.Unix(1700000000, 0))
	stubRolls(t, 0.5, 0.9) // decoy signal
	matchID := env.startMatch(t, TypeReaction)
	readyBoth(t, env, matchID)

	sig := env.notifier.last(t, "alice").(ReactionSignalView)
	if sig.Signal != "decoy" {
		t.Fatalf("signal = %q, want decoy", sig.Signal)
	}

	// A genuine tap on a decoy round is invalid.
	if err := env.registry.HandleAction(matchID, "alice", TapAction{}); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction for go-tap on decoy, got %v", err)
	}

	env.registry.HandleAction(matchID, "alice", DecoyTapAction{})
	env.registry.HandleAction(matchID, "alice", DecoyTapAction{}) // repeated wrong tap
	env.registry.HandleAction(matchID, "bob", DecoyTapAction{})

	// Auto-resolve is superseded by the wrong-tap resolution; firing both
	// settles the round exactly once.
	env.sched.fire(t) // auto-resolve, skipped
	env.sched.fire(t) // wrong-tap resolution

	res := env.notifier.last(t, "alice").(ReactionDecoyView)
	if !res.YouPenalized || !res.OppPenalized {
		t.Errorf("penalty flags = %+v, want both penalized", res)
	}
	if res.YourScore != -ReactionPenalty {
		t.Errorf("alice score = %d, want %d (single penalty)", res.YourScore, -ReactionPenalty)
	}
	if res.Round != 1 {
		t.Errorf("resolved round = %d, want 1", res.Round)
	}

	env.sched.fire(t)
	prompt := env.notifier.last(t, "alice").(ReactionPromptView)
	if prompt.Round != 2 {
		t.Errorf("round after decoy = %d, want 2", prompt.Round)
	}
}

func TestReactionGreenCapAndFinish(t *testing.T) {
	env := newTestEnv()
	advance := stubClock(t, time.Unix(1700000000, 0))
	stubRolls(t, 0.0) // every roll low: green whenever the cap allows
	matchID := env.startMatch(t, TypeReaction)

	greens, decoys := 0, 0
	for round := 1; round <= ReactionMaxRounds; round++ {
		readyBoth(t, env, matchID)
		sig := env.notifier.last(t, "alice").(ReactionSignalView)
		switch sig.Signal {
		case "go":
			greens++
			advance(500 * time.Millisecond)
			env.registry.HandleAction(matchID, "alice", TapAction{})
			advance(2 * time.Second)
			env.registry.HandleAction(matchID, "bob", TapAction{})
			env.sched.fire(t) // next-round prompt or finish
			if round < ReactionMaxRounds {
				env.sched.fire(t) // leftover window timer
			}
		case "decoy":
			decoys++
			env.sched.fire(t) // auto-resolve
			env.sched.fire(t) // next-round prompt or finish
		default:
			t.Fatalf("round %d: unexpected signal %q", round, sig.Signal)
		}
	}

	if greens != ReactionGreenCap {
		t.Errorf("greens = %d, want %d", greens, ReactionGreenCap)
	}
	if decoys != ReactionMaxRounds-ReactionGreenCap {
		t.Errorf("decoys = %d, want %d", decoys, ReactionMaxRounds-ReactionGreenCap)
	}

	// Alice tapped at 0.5s every green round, bob at 2.5s.
	if o := env.reporter.outcomeFor(t, "alice"); !o.won || o.score != 300 {
		t.Errorf("alice outcome = won=%v score=%d, want won=true score=300", o.won, o.score)
	}
	if o := env.reporter.outcomeFor(t, "bob"); o.won || o.score != 60 {
		t.Errorf("bob outcome = won=%v score=%d, want won=false score=60", o.won, o.score)
	}
}
