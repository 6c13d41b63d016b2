package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"color-rush/controllers"
	"color-rush/db"
	"color-rush/models"
	"color-rush/routes"
	"color-rush/websocket"
)

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			return n
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && f >= 0 {
			return f
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return fallback
}

func main() {
	godotenv.Load()

	// Connect to the database
	db.ConnectDB()
	database := db.GetDB()

	// Initialize the WebSocket hub
	hub := models.NewHub()
	go hub.Run()

	wallets := controllers.NewMongoWallets(database, envFloat("STARTING_BALANCE", 1000))
	history := controllers.NewMongoHistory(database)

	betWindow := envInt("BET_WINDOW_SECONDS", 30)
	revealDelay := envInt("REVEAL_DELAY_SECONDS", 3)
	engine := controllers.NewDrawEngine(time.Now().Unix(), betWindow, revealDelay)
	engine.SeedHistory(10)

	sessions := controllers.NewSessionManager(engine, wallets, history, func(result models.RoundResult) {
		hub.Broadcast <- models.WSMessage{Event: "round_result", Data: result}
	})

	// Every published snapshot goes out to all connected clients.
	engine.Subscribe(func(state models.RoundState) {
		event := "round_update"
		if state.Phase == models.PhaseResolving && state.Outcome != nil {
			event = "round_resolved"
		}
		hub.Broadcast <- models.WSMessage{Event: event, Data: state}
	})

	engine.Start()

	// Initialize routes
	r := gin.Default()
	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, engine, c.Writer, c.Request)
	})
	routes.GameRoutes(r, engine, sessions)
	routes.WalletRoutes(r, wallets)
	routes.HistoryRoutes(r, history)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Println("Server running on port", port)
	r.Run(":" + port)
}
