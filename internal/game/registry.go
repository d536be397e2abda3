package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"
)

// Test seams. Production code never reassigns these.
var (
	timeNow  = time.Now
	randRoll = rand.Float64
)

// Notifier delivers a participant-specific rendered view to the transport
// layer. Implementations must not call back into the Registry.
type Notifier interface {
	Notify(playerID string, view any)
}

// Reporter consumes match outcomes at every terminal transition.
type Reporter interface {
	ReportOutcome(playerID string, gameType GameType, won bool, score int)
}

// Registry owns all live matches and the dispatch to their game engines.
//
// Locking: r.mu guards the maps only and is always the innermost lock; no
// code path holds r.mu while acquiring a match lock. Per-match work (engine
// dispatch, timer delivery, state reads) is serialized by Match.mu, so
// different matches proceed fully in parallel.
type Registry struct {
	matches    map[string]*Match
	qaByPlayer map[string]string // participant id -> active QA match id
	engines    map[GameType]Engine

	notifier Notifier
	reporter Reporter
	sched    Scheduler
	timings  Timings

	mu sync.RWMutex
}

// NewRegistry creates a registry wired to the given collaborators.
func NewRegistry(notifier Notifier, reporter Reporter, sched Scheduler, timings Timings) *Registry {
	r := &Registry{
		matches:    make(map[string]*Match),
		qaByPlayer: make(map[string]string),
		notifier:   notifier,
		reporter:   reporter,
		sched:      sched,
		timings:    timings,
	}
	r.engines = map[GameType]Engine{
		TypeTicTacToe: &tttEngine{r: r},
		TypeRPS:       &rpsEngine{r: r},
		TypeReaction:  &reactionEngine{r: r},
		TypeMemory:    &memoryEngine{r: r},
		TypeQA:        &qaEngine{r: r},
	}
	return r
}

// Create opens a new match in StatusWaiting hosted by hostID.
func (r *Registry) Create(gameType GameType, hostID, hostName string) (string, error) {
	if !KnownType(gameType) {
		return "", ErrInvalidAction
	}

	m := &Match{
		ID:        generateMatchID(),
		Type:      gameType,
		HostID:    hostID,
		Players:   []string{hostID},
		Names:     map[string]string{hostID: hostName},
		Status:    StatusWaiting,
		CreatedAt: timeNow(),
	}

	r.mu.Lock()
	r.matches[m.ID] = m
	r.mu.Unlock()

	log.Printf("[REGISTRY] Match created: %s type=%s host=%s", m.ID, gameType, hostID)
	return m.ID, nil
}

// Join adds the second participant and starts the game.
func (r *Registry) Join(matchID, joinerID, joinerName string) error {
	m := r.lookup(matchID)
	if m == nil {
		return ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if joinerID == m.HostID {
		return ErrSelfJoin
	}
	if len(m.Players) >= 2 {
		return ErrFull
	}
	if m.Status != StatusWaiting {
		return ErrNotFound // cancelled or swept between lookup and lock
	}

	m.Players = append(m.Players, joinerID)
	m.Names[joinerID] = joinerName
	m.Status = StatusActive

	if m.Type == TypeQA {
		r.mu.Lock()
		for _, p := range m.Players {
			r.qaByPlayer[p] = m.ID
		}
		r.mu.Unlock()
	}

	log.Printf("[REGISTRY] Match %s active: %s vs %s", m.ID, m.Players[0], m.Players[1])
	r.engines[m.Type].Init(m)
	return nil
}

// Cancel removes a waiting match. Only the host may cancel, and only before
// an opponent joins.
func (r *Registry) Cancel(matchID, requesterID string) error {
	m := r.lookup(matchID)
	if m == nil {
		return ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if requesterID != m.HostID {
		return ErrForbidden
	}
	if m.Status != StatusWaiting {
		return ErrForbidden
	}

	m.Status = StatusEnded
	r.remove(m)
	log.Printf("[REGISTRY] Match %s cancelled by host", m.ID)
	return nil
}

// HandleAction routes an inbound participant action to the match's engine.
func (r *Registry) HandleAction(matchID, actorID string, action Action) error {
	m := r.lookup(matchID)
	if m == nil {
		return ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Status != StatusActive {
		return ErrNotFound
	}
	if !m.hasPlayer(actorID) {
		return ErrForbidden
	}
	return r.engines[m.Type].ApplyAction(m, actorID, action)
}

// HandleFreeText routes a free-form text submission to the actor's active
// Q&A match, if any. Returns true when the text was consumed.
func (r *Registry) HandleFreeText(actorID, text string) bool {
	r.mu.RLock()
	matchID, ok := r.qaByPlayer[actorID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	m := r.lookup(matchID)
	if m == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Status != StatusActive {
		return false
	}
	return r.engines[m.Type].(textEngine).HandleText(m, actorID, text)
}

// LookupActiveByParticipant resolves the active match of the given type that
// contains the participant. Q&A uses the secondary index; other types scan.
func (r *Registry) LookupActiveByParticipant(gameType GameType, playerID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if gameType == TypeQA {
		id, ok := r.qaByPlayer[playerID]
		return id, ok
	}
	for id, m := range r.matches {
		if m.Type == gameType && m.hasPlayer(playerID) && m.Status == StatusActive {
			return id, true
		}
	}
	return "", false
}

// OpenMatch summarizes a joinable match.
type OpenMatch struct {
	MatchID  string   `json:"match_id"`
	GameType GameType `json:"game_type"`
	HostName string   `json:"host_name"`
}

// ListOpen returns up to five waiting matches, sweeping expired ones on the
// way.
func (r *Registry) ListOpen() []OpenMatch {
	r.SweepExpired()

	r.mu.RLock()
	defer r.mu.RUnlock()

	open := []OpenMatch{}
	for _, m := range r.matches {
		if m.Status == StatusWaiting {
			open = append(open, OpenMatch{MatchID: m.ID, GameType: m.Type, HostName: m.Names[m.HostID]})
			if len(open) == 5 {
				break
			}
		}
	}
	return open
}

// SweepExpired removes waiting matches older than the waiting expiry.
func (r *Registry) SweepExpired() int {
	cutoff := timeNow().Add(-r.timings.WaitingExpiry)

	// Collect candidates without holding match locks.
	r.mu.RLock()
	var candidates []*Match
	for _, m := range r.matches {
		if m.Status == StatusWaiting && m.CreatedAt.Before(cutoff) {
			candidates = append(candidates, m)
		}
	}
	r.mu.RUnlock()

	removed := 0
	for _, m := range candidates {
		m.mu.Lock()
		if m.Status == StatusWaiting {
			m.Status = StatusEnded
			r.remove(m)
			removed++
			log.Printf("[SWEEP] Waiting match %s expired", m.ID)
		}
		m.mu.Unlock()
	}
	return removed
}

// StartSweeper runs SweepExpired on a ticker until ctx is done.
func (r *Registry) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(r.timings.SweepInterval)
	defer ticker.Stop()

	log.Printf("[SWEEP] Sweeper started (every %v)", r.timings.SweepInterval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[SWEEP] Sweeper stopped")
			return
		case <-ticker.C:
			r.SweepExpired()
		}
	}
}

// ActiveCount returns the number of live matches.
func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}

// lookup resolves a match id under the registry lock.
func (r *Registry) lookup(matchID string) *Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.matches[matchID]
}

// schedule arranges for tag to be delivered to the match after d. The timer
// carries only the match id: by the time it fires the match may be gone, in
// which case fireTimer silently drops it.
func (r *Registry) schedule(matchID string, tag TimerTag, d time.Duration) {
	r.sched.AfterFunc(d, func() { r.fireTimer(matchID, tag) })
}

// fireTimer is the single entry point for deferred transitions. It re-resolves
// the match and delivers the tag under the match lock, so a timer racing a
// participant action serializes like any other trigger.
func (r *Registry) fireTimer(matchID string, tag TimerTag) {
	m := r.lookup(matchID)
	if m == nil {
		return // match ended or cancelled between scheduling and firing
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Status != StatusActive {
		return
	}
	r.engines[m.Type].OnTimer(m, tag)
}

// endMatch performs the terminal transition bookkeeping: it reports the
// outcome for both participants and removes the match. winnerID is empty on
// a draw; scores may be nil for games without point totals.
//
// Caller must hold m.mu and must have verified m.Status is still
// StatusActive; endMatch flips it to StatusEnded, which is what makes the
// terminal transition fire exactly once even when reachable from two racing
// code paths.
func (r *Registry) endMatch(m *Match, winnerID string, scores map[string]int) {
	m.Status = StatusEnded

	for _, p := range m.Players {
		r.reporter.ReportOutcome(p, m.Type, p == winnerID, scores[p])
	}
	r.remove(m)
	log.Printf("[REGISTRY] Match %s ended, winner=%q", m.ID, winnerID)
}

// remove deletes the match from the registry maps. Caller holds m.mu; r.mu
// is an inner lock here by the documented ordering.
func (r *Registry) remove(m *Match) {
	r.mu.Lock()
	delete(r.matches, m.ID)
	if m.Type == TypeQA {
		for _, p := range m.Players {
			if r.qaByPlayer[p] == m.ID {
				delete(r.qaByPlayer, p)
			}
		}
	}
	r.mu.Unlock()
}

// notifyAll sends each participant their own view of the match.
func (r *Registry) notifyAll(m *Match, viewFor func(playerID string) any) {
	for _, p := range m.Players {
		r.notifier.Notify(p, viewFor(p))
	}
}
