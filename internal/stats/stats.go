// Package stats keeps in-memory win/loss bookkeeping and prize eligibility
// for every participant the server has seen.
package stats

import (
	"errors"
	"log"
	"sync"

	"github.com/playversus/backend/internal/game"
)

var (
	ErrNotEligible = errors.New("prize threshold not reached")
	ErrNotClaimed  = errors.New("prize not claimed yet")
)

// DefaultPrizeThreshold is the total win count that unlocks the prize.
const DefaultPrizeThreshold = 3

// GameRecord is the per-game-type tally for one participant.
type GameRecord struct {
	Games     int `json:"games"`
	Wins      int `json:"wins"`
	BestScore int `json:"best_score,omitempty"`
}

type playerRecord struct {
	games            map[game.GameType]*GameRecord
	totalWins        int
	prizeClaimed     bool
	realPrizeClaimed bool
	prizeNotified    bool
}

// PrizeNoticeView is pushed to a participant the moment they become eligible.
type PrizeNoticeView struct {
	Type      string `json:"type"`
	TotalWins int    `json:"total_wins"`
	Threshold int    `json:"threshold"`
}

// PlayerView is the scoreboard snapshot for one participant.
type PlayerView struct {
	PlayerID         string                       `json:"player_id"`
	Games            map[game.GameType]GameRecord `json:"games"`
	TotalGames       int                          `json:"total_games"`
	TotalWins        int                          `json:"total_wins"`
	WinRate          float64                      `json:"win_rate"`
	Tier             string                       `json:"tier"`
	PrizeEligible    bool                         `json:"prize_eligible"`
	PrizeClaimed     bool                         `json:"prize_claimed"`
	RealPrizeClaimed bool                         `json:"real_prize_claimed"`
}

// Board tracks every participant's record. It implements game.Reporter so the
// match registry can feed it terminal outcomes directly.
type Board struct {
	players   map[string]*playerRecord
	notifier  game.Notifier
	threshold int
	mu        sync.RWMutex
}

// NewBoard creates an empty scoreboard. threshold <= 0 selects the default.
func NewBoard(notifier game.Notifier, threshold int) *Board {
	if threshold <= 0 {
		threshold = DefaultPrizeThreshold
	}
	return &Board{
		players:   make(map[string]*playerRecord),
		notifier:  notifier,
		threshold: threshold,
	}
}

// ReportOutcome records one participant's side of a finished match. When a
// win lifts the total to the threshold with the prize unclaimed, a single
// eligibility notice is pushed; it is not repeated on later wins unless
// ResetPrizeNotice has run.
func (b *Board) ReportOutcome(playerID string, gameType game.GameType, won bool, score int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.player(playerID)
	rec, ok := p.games[gameType]
	if !ok {
		rec = &GameRecord{}
		p.games[gameType] = rec
	}
	rec.Games++
	if won {
		rec.Wins++
		p.totalWins++
	}
	if score > rec.BestScore {
		rec.BestScore = score
	}
	log.Printf("[STATS] %s: %s won=%v score=%d (total wins %d)", playerID, gameType, won, score, p.totalWins)

	if won && p.totalWins >= b.threshold && !p.prizeClaimed && !p.prizeNotified {
		p.prizeNotified = true
		b.notifier.Notify(playerID, PrizeNoticeView{
			Type:      "prize_eligible",
			TotalWins: p.totalWins,
			Threshold: b.threshold,
		})
	}
}

// ResetPrizeNotice rearms the eligibility notice so the next qualifying win
// pushes it again.
func (b *Board) ResetPrizeNotice(playerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.players[playerID]; ok {
		p.prizeNotified = false
	}
}

// ClaimPrize marks the decorative prize as claimed.
func (b *Board) ClaimPrize(playerID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.player(playerID)
	if p.totalWins < b.threshold {
		return ErrNotEligible
	}
	p.prizeClaimed = true
	return nil
}

// ClaimRealPrize marks the real prize as claimed. The decorative claim comes
// first.
func (b *Board) ClaimRealPrize(playerID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.player(playerID)
	if p.totalWins < b.threshold {
		return ErrNotEligible
	}
	if !p.prizeClaimed {
		return ErrNotClaimed
	}
	p.realPrizeClaimed = true
	return nil
}

// Snapshot returns the scoreboard view for one participant. Unknown
// participants get a zeroed view rather than an error.
func (b *Board) Snapshot(playerID string) PlayerView {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v := PlayerView{
		PlayerID: playerID,
		Games:    make(map[game.GameType]GameRecord),
	}
	p, ok := b.players[playerID]
	if !ok {
		v.Tier = tierFor(0)
		return v
	}

	for gt, rec := range p.games {
		v.Games[gt] = *rec
		v.TotalGames += rec.Games
	}
	v.TotalWins = p.totalWins
	if v.TotalGames > 0 {
		v.WinRate = float64(p.totalWins) / float64(v.TotalGames) * 100
	}
	v.Tier = tierFor(p.totalWins)
	v.PrizeEligible = p.totalWins >= b.threshold
	v.PrizeClaimed = p.prizeClaimed
	v.RealPrizeClaimed = p.realPrizeClaimed
	return v
}

// player returns the record for playerID, creating it if needed. Caller holds
// b.mu.
func (b *Board) player(playerID string) *playerRecord {
	p, ok := b.players[playerID]
	if !ok {
		p = &playerRecord{games: make(map[game.GameType]*GameRecord)}
		b.players[playerID] = p
	}
	return p
}

func tierFor(totalWins int) string {
	switch {
	case totalWins == 0:
		return "Ready to Play"
	case totalWins < 3:
		return "Getting Started"
	case totalWins < 10:
		return "Rising Star"
	case totalWins < 25:
		return "Skilled Player"
	default:
		return "Legend Status"
	}
}
