package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/playversus/backend/internal/api"
	"github.com/playversus/backend/internal/config"
	"github.com/playversus/backend/internal/game"
	"github.com/playversus/backend/internal/middleware"
	"github.com/playversus/backend/internal/stats"
	"github.com/playversus/backend/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Outbound push hub
	hub := ws.NewHub()
	go hub.Run()

	// Scoreboard and prize bookkeeping
	board := stats.NewBoard(hub, cfg.PrizeWinThreshold)

	// Match registry with config-driven timings
	timings := game.DefaultTimings()
	timings.WaitingExpiry = time.Duration(cfg.MatchExpiryMinutes) * time.Minute
	timings.SweepInterval = time.Duration(cfg.SweepIntervalSeconds) * time.Second
	registry := game.NewRegistry(hub, board, game.NewWallScheduler(), timings)

	// Start expired-match sweeper
	go registry.StartSweeper(context.Background())

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.WebSocketCORSCheck(cfg))

	// Initialize API handlers
	api.SetupRoutes(router, registry, board, hub, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting PlayVersus server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
