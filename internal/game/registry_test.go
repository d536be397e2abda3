package game

import (
	"errors"
	"testing"
	"time"
)

func TestCreateRejectsUnknownType(t *testing.T) {
	env := newTestEnv()
	if _, err := env.registry.Create(GameType("chess"), "alice", "Alice"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction for unknown type, got %v", err)
	}
}

func TestJoinStartsMatch(t *testing.T) {
	env := newTestEnv()
	matchID := env.startMatch(t, TypeTicTacToe)

	// Both participants got an initial board view.
	for _, p := range []string{"alice", "bob"} {
		if _, ok := env.notifier.last(t, p).(TicTacToeView); !ok {
			t.Errorf("%s: expected TicTacToeView after join, got %T", p, env.notifier.last(t, p))
		}
	}

	// The open listing no longer carries the match.
	for _, open := range env.registry.ListOpen() {
		if open.MatchID == matchID {
			t.Errorf("active match %s still listed as open", matchID)
		}
	}
}

func TestJoinRejectsHost(t *testing.T) {
	env := newTestEnv()
	matchID, _ := env.registry.Create(TypeRPS, "alice", "Alice")
	if err := env.registry.Join(matchID, "alice", "Alice"); !errors.Is(err, ErrSelfJoin) {
		t.Errorf("expected ErrSelfJoin, got %v", err)
	}
}

func TestJoinAdmitsExactlyOneOpponent(t *testing.T) {
	env := newTestEnv()
	matchID := env.startMatch(t, TypeRPS)

	// A third participant is told the match is full, not that it vanished.
	if err := env.registry.Join(matchID, "carol", "Carol"); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull joining a full match, got %v", err)
	}
	// The host re-joining their own full match is still a self-join.
	if err := env.registry.Join(matchID, "alice", "Alice"); !errors.Is(err, ErrSelfJoin) {
		t.Errorf("expected ErrSelfJoin for host, got %v", err)
	}
}

func TestJoinUnknownMatch(t *testing.T) {
	env := newTestEnv()
	if err := env.registry.Join("match_nope", "bob", "Bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelHostOnly(t *testing.T) {
	env := newTestEnv()
	matchID, _ := env.registry.Create(TypeMemory, "alice", "Alice")

	if err := env.registry.Cancel(matchID, "bob"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-host cancel, got %v", err)
	}
	if err := env.registry.Cancel(matchID, "alice"); err != nil {
		t.Errorf("host cancel failed: %v", err)
	}
	if err := env.registry.Join(matchID, "bob", "Bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cancelled match still joinable: %v", err)
	}
}

func TestCancelActiveForbidden(t *testing.T) {
	env := newTestEnv()
	matchID := env.startMatch(t, TypeRPS)
	if err := env.registry.Cancel(matchID, "alice"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden cancelling an active match, got %v", err)
	}
}

func TestActionRejectsOutsiders(t *testing.T) {
	env := newTestEnv()
	matchID := env.startMatch(t, TypeRPS)
	if err := env.registry.HandleAction(matchID, "carol", ChoiceAction{Symbol: Rock}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-participant, got %v", err)
	}
}

func TestSweepRemovesOnlyExpiredWaiting(t *testing.T) {
	env := newTestEnv()
	advance := stubClock(t, time.Unix(1700000000, 0))

	oldID, _ := env.registry.Create(TypeTicTacToe, "alice", "Alice")
	activeID := env.startMatch(t, TypeRPS)

	advance(DefaultWaitingExpiry + time.Minute)
	freshID, _ := env.registry.Create(TypeMemory, "carol", "Carol")

	if removed := env.registry.SweepExpired(); removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}
	if err := env.registry.Join(oldID, "dave", "Dave"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired match still joinable: %v", err)
	}
	if err := env.registry.Join(freshID, "dave", "Dave"); err != nil {
		t.Errorf("fresh match was swept: %v", err)
	}
	if err := env.registry.HandleAction(activeID, "alice", ChoiceAction{Symbol: Rock}); err != nil {
		t.Errorf("active match was swept: %v", err)
	}
}

func TestLateTimerIsDropped(t *testing.T) {
	env := newTestEnv()
	matchID := env.startMatch(t, TypeRPS)

	// Resolve a full round so a display timer is pending.
	env.registry.HandleAction(matchID, "alice", ChoiceAction{Symbol: Rock})
	env.registry.HandleAction(matchID, "bob", ChoiceAction{Symbol: Scissors})
	if len(env.sched.pending) == 0 {
		t.Fatalf("expected a pending round timer")
	}

	// Finish the match before the timer fires.
	env.registry.HandleAction(matchID, "alice", ChoiceAction{Symbol: Rock})
	env.registry.HandleAction(matchID, "bob", ChoiceAction{Symbol: Scissors})
	env.sched.fireAll(t)

	before := len(env.reporter.outcomes)
	env.sched.fireAll(t) // anything left is stale
	if len(env.reporter.outcomes) != before {
		t.Errorf("stale timer produced extra outcome reports")
	}
	if got := env.registry.ActiveCount(); got != 0 {
		t.Errorf("expected empty registry, got %d matches", got)
	}
}

func TestFreeTextIgnoredWithoutQAMatch(t *testing.T) {
	env := newTestEnv()
	env.startMatch(t, TypeRPS)
	if env.registry.HandleFreeText("alice", "hello") {
		t.Errorf("free text consumed without an active Q&A match")
	}
}

func TestLookupActiveByParticipant(t *testing.T) {
	env := newTestEnv()
	matchID := env.startMatch(t, TypeMemory)

	got, ok := env.registry.LookupActiveByParticipant(TypeMemory, "bob")
	if !ok || got != matchID {
		t.Errorf("lookup = %q, %v; want %q, true", got, ok, matchID)
	}
	if _, ok := env.registry.LookupActiveByParticipant(TypeRPS, "bob"); ok {
		t.Errorf("lookup found a match of the wrong type")
	}
}
