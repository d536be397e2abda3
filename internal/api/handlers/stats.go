package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playversus/backend/internal/stats"
)

// GetPlayerStats returns the participant's scoreboard snapshot.
func GetPlayerStats(board *stats.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, board.Snapshot(c.Param("id")))
	}
}

// ClaimPrize marks the decorative prize as claimed.
func ClaimPrize(board *stats.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := board.ClaimPrize(c.Param("id")); err != nil {
			respondPrizeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "claimed"})
	}
}

// ClaimRealPrize marks the real prize as claimed.
func ClaimRealPrize(board *stats.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := board.ClaimRealPrize(c.Param("id")); err != nil {
			respondPrizeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "claimed"})
	}
}

func respondPrizeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stats.ErrNotEligible):
		c.JSON(http.StatusForbidden, gin.H{"error": "prize threshold not reached"})
	case errors.Is(err, stats.ErrNotClaimed):
		c.JSON(http.StatusConflict, gin.H{"error": "claim the prize first"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
