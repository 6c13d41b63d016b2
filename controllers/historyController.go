package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"color-rush/models"
)

// MongoHistory stores the per-round settlement summaries.
type MongoHistory struct {
	collection *mongo.Collection
}

func NewMongoHistory(db *mongo.Database) *MongoHistory {
	return &MongoHistory{collection: db.Collection("game_history")}
}

func (h *MongoHistory) RecordGameHistory(ctx context.Context, entry models.GameHistory) error {
	if _, err := h.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to record game history: %v", err)
	}
	return nil
}

// List returns a player's settled rounds, newest first.
func (h *MongoHistory) List(ctx context.Context, player string) ([]models.GameHistory, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := h.collection.Find(ctx, bson.M{"player": player}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game history: %v", err)
	}
	defer cursor.Close(ctx)

	var entries []models.GameHistory
	for cursor.Next(ctx) {
		var entry models.GameHistory
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode game history: %v", err)
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return entries, nil
}

// GetHistoryHandler handles fetching a player's settled-round history.
func GetHistoryHandler(history *MongoHistory) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := c.Query("player")
		if player == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player parameter is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		entries, err := history.List(ctx, player)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
