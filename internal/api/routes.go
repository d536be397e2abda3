package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/playversus/backend/internal/api/handlers"
	"github.com/playversus/backend/internal/config"
	"github.com/playversus/backend/internal/game"
	"github.com/playversus/backend/internal/stats"
	"github.com/playversus/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, registry *game.Registry, board *stats.Board, hub *ws.Hub, cfg *config.Config) {
	// No-cache middleware for development
	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(registry))

		// Match endpoints
		matches := v1.Group("/matches")
		{
			matches.POST("", handlers.CreateMatch(registry))
			matches.GET("", handlers.ListOpenMatches(registry))
			matches.POST("/:id/join", handlers.JoinMatch(registry))
			matches.POST("/:id/cancel", handlers.CancelMatch(registry))
			matches.POST("/:id/action", handlers.SubmitAction(registry))
		}

		// Free-text input (Q&A duel)
		v1.POST("/text", handlers.SubmitText(registry))

		// Player endpoints
		players := v1.Group("/players")
		{
			players.GET("/:id/stats", handlers.GetPlayerStats(board))
			players.POST("/:id/prize/claim", handlers.ClaimPrize(board))
			players.POST("/:id/prize/claim-real", handlers.ClaimRealPrize(board))
			players.GET("/:id/ws", hub.Serve)
		}
	}
}
