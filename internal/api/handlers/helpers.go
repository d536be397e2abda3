package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playversus/backend/internal/game"
)

// respondError maps the core's sentinel errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
	case errors.Is(err, game.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case errors.Is(err, game.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{"error": "not your turn"})
	case errors.Is(err, game.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action"})
	case errors.Is(err, game.ErrFull):
		c.JSON(http.StatusConflict, gin.H{"error": "match is full"})
	case errors.Is(err, game.ErrSelfJoin):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot join your own match"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
