package game

import (
	"math/rand"
	"testing"
	"time"
)

// fakeScheduler records scheduled callbacks so tests drive deferred
// transitions by hand instead of sleeping.
type fakeScheduler struct {
	pending []fakeTimer
}

type fakeTimer struct {
	d  time.Duration
	fn func()
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) {
	s.pending = append(s.pending, fakeTimer{d: d, fn: fn})
}

// fire runs the oldest pending callback. Callbacks scheduled while firing
// queue up behind the rest.
func (s *fakeScheduler) fire(t *testing.T) {
	t.Helper()
	if len(s.pending) == 0 {
		t.Fatalf("no pending timer to fire")
	}
	next := s.pending[0]
	s.pending = s.pending[1:]
	next.fn()
}

// fireAll drains the queue, including callbacks scheduled along the way.
func (s *fakeScheduler) fireAll(t *testing.T) {
	t.Helper()
	for i := 0; len(s.pending) > 0; i++ {
		if i > 1000 {
			t.Fatalf("timer queue does not drain")
		}
		s.fire(t)
	}
}

// recordingNotifier captures every pushed view per participant.
type recordingNotifier struct {
	views map[string][]any
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{views: make(map[string][]any)}
}

func (n *recordingNotifier) Notify(playerID string, view any) {
	n.views[playerID] = append(n.views[playerID], view)
}

func (n *recordingNotifier) last(t *testing.T, playerID string) any {
	t.Helper()
	vs := n.views[playerID]
	if len(vs) == 0 {
		t.Fatalf("no views recorded for %s", playerID)
	}
	return vs[len(vs)-1]
}

type outcome struct {
	playerID string
	gameType GameType
	won      bool
	score    int
}

// recordingReporter captures terminal outcome reports.
type recordingReporter struct {
	outcomes []outcome
}

func (r *recordingReporter) ReportOutcome(playerID string, gameType GameType, won bool, score int) {
	r.outcomes = append(r.outcomes, outcome{playerID, gameType, won, score})
}

func (r *recordingReporter) outcomeFor(t *testing.T, playerID string) outcome {
	t.Helper()
	for _, o := range r.outcomes {
		if o.playerID == playerID {
			return o
		}
	}
	t.Fatalf("no outcome recorded for %s", playerID)
	return outcome{}
}

type testEnv struct {
	registry *Registry
	sched    *fakeScheduler
	notifier *recordingNotifier
	reporter *recordingReporter
}

func newTestEnv() *testEnv {
	sched := &fakeScheduler{}
	notifier := newRecordingNotifier()
	reporter := &recordingReporter{}
	return &testEnv{
		registry: NewRegistry(notifier, reporter, sched, DefaultTimings()),
		sched:    sched,
		notifier: notifier,
		reporter: reporter,
	}
}

// startMatch creates an active alice-vs-bob match of the given type.
func (env *testEnv) startMatch(t *testing.T, gameType GameType) string {
	t.Helper()
	matchID, err := env.registry.Create(gameType, "alice", "Alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := env.registry.Join(matchID, "bob", "Bob"); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	return matchID
}

// stubClock replaces the time seam with a manually advanced clock and
// restores it on cleanup.
func stubClock(t *testing.T, start time.Time) func(time.Duration) {
	t.Helper()
	now := start
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })
	return func(d time.Duration) { now = now.Add(d) }
}

// stubRolls replaces the randomness seam with a fixed sequence, repeating
// the last value once exhausted.
func stubRolls(t *testing.T, rolls ...float64) {
	t.Helper()
	i := 0
	randRoll = func() float64 {
		v := rolls[i]
		if i < len(rolls)-1 {
			i++
		}
		return v
	}
	t.Cleanup(func() { randRoll = rand.Float64 })
}
