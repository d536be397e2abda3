package game

// ResultView is the terminal notification sent to each participant, framed
// from their side of the match.
type ResultView struct {
	Game      GameType   `json:"game"`
	MatchID   string     `json:"match_id"`
	Outcome   string     `json:"outcome"` // "won", "lost" or "tie"
	YourScore int        `json:"your_score"`
	OppScore  int        `json:"opponent_score"`
	Board     [][]string `json:"board,omitempty"`
}

func outcomeFor(playerID, winnerID string) string {
	switch winnerID {
	case playerID:
		return "won"
	case "":
		return "tie"
	default:
		return "lost"
	}
}
