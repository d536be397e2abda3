package game

// GameStatus represents the current state of a match
type GameStatus string

const (
	StatusWaiting GameStatus = "WAITING"
	StatusActive  GameStatus = "ACTIVE"
	StatusEnded   GameStatus = "ENDED"
)

// GameType identifies one of the five mini-games
type GameType string

const (
	TypeTicTacToe GameType = "tictactoe"
	TypeRPS       GameType = "rps"
	TypeReaction  GameType = "reaction"
	TypeMemory    GameType = "memory"
	TypeQA        GameType = "qa"
)

// KnownType reports whether t is one of the supported game types.
func KnownType(t GameType) bool {
	switch t {
	case TypeTicTacToe, TypeRPS, TypeReaction, TypeMemory, TypeQA:
		return true
	}
	return false
}
