// controllers/roundController.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetRoundHandler returns the current round snapshot.
func GetRoundHandler(engine *DrawEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"round": engine.Snapshot()})
	}
}

// GetOutcomesHandler returns the recent outcome history, newest first.
func GetOutcomesHandler(engine *DrawEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, engine.Snapshot().RecentOutcomes)
	}
}

type placeBetRequest struct {
	Target string  `json:"target" binding:"required"`
	Stake  float64 `json:"stake" binding:"required"`
}

// PlaceBetHandler places a wager on the current round for the player.
// Closed-window and insufficient-funds rejections come back as 400s
// with nothing debited.
func PlaceBetHandler(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := c.Query("player")
		if player == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player parameter is required"})
			return
		}

		var req placeBetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bet data: " + err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		bet, err := sessions.Session(player).PlaceBet(ctx, req.Target, req.Stake)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Bet placed.", "bet": bet})
	}
}

// GetBetsHandler lists the player's pending bets.
func GetBetsHandler(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := c.Query("player")
		if player == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player parameter is required"})
			return
		}
		c.JSON(http.StatusOK, sessions.Session(player).Ledger.Pending())
	}
}
