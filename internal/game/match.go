package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Match is one running instance of a two-participant game.
//
// All reads and writes of Players, Status and State are serialized by mu.
// The registry lock is never taken while mu is held by the same goroutine
// except for map deletions in Registry.remove, which touch no match state.
type Match struct {
	ID        string
	Type      GameType
	HostID    string
	Players   []string          // players[0] is always the host
	Names     map[string]string // participant id -> display name
	Status    GameStatus
	CreatedAt time.Time

	// State holds the game-type-specific variant (*tttState, *rpsState, ...).
	// A match in StatusActive always carries the variant matching Type;
	// engines assert the concrete type at the dispatch boundary.
	State any

	mu sync.Mutex
}

// opponent returns the other participant of an active match.
func (m *Match) opponent(playerID string) string {
	if m.Players[0] == playerID {
		return m.Players[1]
	}
	return m.Players[0]
}

// hasPlayer reports whether playerID is one of the match's participants.
func (m *Match) hasPlayer(playerID string) bool {
	for _, p := range m.Players {
		if p == playerID {
			return true
		}
	}
	return false
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("t%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

// generateMatchID generates a unique match ID
func generateMatchID() string {
	return "match_" + generateToken(8)
}
