package models

import "time"

type Wallet struct {
	Player  string  `json:"player" bson:"player"`
	Balance float64 `json:"balance" bson:"balance"`
}

type TransactionType string

const (
	TransactionTypeBet    TransactionType = "bet"
	TransactionTypeWin    TransactionType = "win"
	TransactionTypeBonus  TransactionType = "bonus"
	TransactionTypeRefund TransactionType = "refund"
)

type Transaction struct {
	ID            string          `json:"id" bson:"id"`
	Player        string          `json:"player" bson:"player"`
	Type          TransactionType `json:"type" bson:"type"`
	Amount        float64         `json:"amount" bson:"amount"`
	BalanceBefore float64         `json:"balance_before" bson:"balance_before"`
	BalanceAfter  float64         `json:"balance_after" bson:"balance_after"`
	Description   string          `json:"description" bson:"description"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
}

// GameHistory is the one summary record appended per settled round, not
// one record per bet.
type GameHistory struct {
	Player    string    `json:"player" bson:"player"`
	Game      string    `json:"game" bson:"game"`
	Staked    float64   `json:"staked" bson:"staked"`
	Won       float64   `json:"won" bson:"won"`
	Detail    string    `json:"detail" bson:"detail"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
