package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playversus/backend/internal/game"
)

// CreateMatch opens a new waiting match hosted by the caller.
func CreateMatch(registry *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			GameType string `json:"game_type" binding:"required"`
			PlayerID string `json:"player_id" binding:"required"`
			Name     string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "game_type and player_id required"})
			return
		}

		matchID, err := registry.Create(game.GameType(req.GameType), req.PlayerID, req.Name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown game type"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"match_id": matchID})
	}
}

// ListOpenMatches returns joinable matches.
func ListOpenMatches(registry *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"matches": registry.ListOpen()})
	}
}

// JoinMatch adds the caller as the second participant and starts the game.
func JoinMatch(registry *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerID string `json:"player_id" binding:"required"`
			Name     string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_id required"})
			return
		}

		if err := registry.Join(c.Param("id"), req.PlayerID, req.Name); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "joined"})
	}
}

// CancelMatch withdraws a waiting match. Host only.
func CancelMatch(registry *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerID string `json:"player_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_id required"})
			return
		}

		if err := registry.Cancel(c.Param("id"), req.PlayerID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	}
}

// SubmitAction routes a structured in-game action to the caller's match.
func SubmitAction(registry *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerID string `json:"player_id" binding:"required"`
			Action   string `json:"action" binding:"required"`
			Row      int    `json:"row"`
			Col      int    `json:"col"`
			Choice   string `json:"choice"`
			Tile     int    `json:"tile"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_id and action required"})
			return
		}

		var action game.Action
		switch req.Action {
		case "move":
			action = game.MoveAction{Row: req.Row, Col: req.Col}
		case "choice":
			action = game.ChoiceAction{Symbol: game.Symbol(req.Choice)}
		case "ready":
			action = game.ReadyAction{}
		case "tap":
			action = game.TapAction{}
		case "decoy_tap":
			action = game.DecoyTapAction{}
		case "select":
			action = game.SelectAction{Tile: req.Tile}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
			return
		}

		if err := registry.HandleAction(c.Param("id"), req.PlayerID, action); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "accepted"})
	}
}

// SubmitText feeds free-form chat text to the caller's active Q&A duel, if
// any. The response reports whether the duel consumed it.
func SubmitText(registry *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerID string `json:"player_id" binding:"required"`
			Text     string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_id and text required"})
			return
		}

		consumed := registry.HandleFreeText(req.PlayerID, req.Text)
		c.JSON(http.StatusOK, gin.H{"consumed": consumed})
	}
}
