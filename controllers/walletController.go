// controllers/walletController.go
package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"color-rush/models"
)

// MongoWallets stores balances and their transaction log in MongoDB.
// Every mutation goes through Adjust under one mutex, so the
// insufficient-funds check can never race a concurrent debit.
type MongoWallets struct {
	mu              sync.Mutex
	wallets         *mongo.Collection
	transactions    *mongo.Collection
	startingBalance float64
}

func NewMongoWallets(db *mongo.Database, startingBalance float64) *MongoWallets {
	w := &MongoWallets{
		wallets:         db.Collection("wallets"),
		transactions:    db.Collection("transactions"),
		startingBalance: startingBalance,
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.M{"player": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := w.wallets.Indexes().CreateOne(context.TODO(), indexModel); err != nil {
		log.Fatalf("Failed to create unique index on player field: %v", err)
	}
	return w
}

// find-or-create; new wallets get the welcome bonus and a bonus
// transaction so the balance is explainable from the log.
func (w *MongoWallets) fetch(ctx context.Context, player string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := w.wallets.FindOne(ctx, bson.M{"player": player}).Decode(&wallet)
	if err == nil {
		return &wallet, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to fetch wallet: %v", err)
	}

	wallet = models.Wallet{Player: player, Balance: w.startingBalance}
	if _, err := w.wallets.InsertOne(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %v", err)
	}
	if err := w.logTransaction(ctx, player, models.TransactionTypeBonus, w.startingBalance, 0, wallet.Balance, "welcome bonus"); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (w *MongoWallets) logTransaction(ctx context.Context, player string, kind models.TransactionType, amount, before, after float64, description string) error {
	tx := models.Transaction{
		ID:            uuid.NewString(),
		Player:        player,
		Type:          kind,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   description,
		CreatedAt:     time.Now(),
	}
	if _, err := w.transactions.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("failed to log transaction: %v", err)
	}
	return nil
}

func (w *MongoWallets) Balance(ctx context.Context, player string) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	wallet, err := w.fetch(ctx, player)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// Adjust applies a signed delta to the player's balance. A debit that
// would overdraw is rejected with ErrInsufficientFunds and nothing is
// written.
func (w *MongoWallets) Adjust(ctx context.Context, player string, delta float64, kind models.TransactionType, description string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	wallet, err := w.fetch(ctx, player)
	if err != nil {
		return err
	}
	if wallet.Balance+delta < 0 {
		return ErrInsufficientFunds
	}
	before := wallet.Balance
	wallet.Balance += delta
	if _, err := w.wallets.ReplaceOne(ctx, bson.M{"player": player}, wallet); err != nil {
		return fmt.Errorf("failed to save wallet: %v", err)
	}
	return w.logTransaction(ctx, player, kind, delta, before, wallet.Balance, description)
}

// Transactions returns a player's transaction log, newest first.
func (w *MongoWallets) Transactions(ctx context.Context, player string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := w.transactions.Find(ctx, bson.M{"player": player}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %v", err)
	}
	defer cursor.Close(ctx)

	var txs []models.Transaction
	for cursor.Next(ctx) {
		var tx models.Transaction
		if err := cursor.Decode(&tx); err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %v", err)
		}
		txs = append(txs, tx)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return txs, nil
}

// GetWalletHandler handles fetching a player's balance, creating the
// wallet on first sight.
func GetWalletHandler(wallets *MongoWallets) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := c.Query("player")
		if player == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player parameter is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		balance, err := wallets.Balance(ctx, player)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, models.Wallet{Player: player, Balance: balance})
	}
}

// GetTransactionsHandler handles fetching a player's transaction log.
func GetTransactionsHandler(wallets *MongoWallets) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := c.Query("player")
		if player == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player parameter is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		txs, err := wallets.Transactions(ctx, player)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, txs)
	}
}
