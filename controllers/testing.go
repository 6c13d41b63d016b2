package controllers

import (
	"context"
	"sync"

	"color-rush/models"
)

// MemoryWallets is an in-memory WalletStore for tests.
type MemoryWallets struct {
	mu           sync.Mutex
	balances     map[string]float64
	transactions []models.Transaction
}

func NewMemoryWallets() *MemoryWallets {
	return &MemoryWallets{balances: make(map[string]float64)}
}

// SetBalance seeds a player's balance directly, bypassing the log.
func (w *MemoryWallets) SetBalance(player string, balance float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[player] = balance
}

func (w *MemoryWallets) Balance(ctx context.Context, player string) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[player], nil
}

func (w *MemoryWallets) Adjust(ctx context.Context, player string, delta float64, kind models.TransactionType, description string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	before := w.balances[player]
	if before+delta < 0 {
		return ErrInsufficientFunds
	}
	w.balances[player] = before + delta
	w.transactions = append(w.transactions, models.Transaction{
		Player:        player,
		Type:          kind,
		Amount:        delta,
		BalanceBefore: before,
		BalanceAfter:  before + delta,
		Description:   description,
	})
	return nil
}

// Transactions returns all recorded transactions in insertion order.
func (w *MemoryWallets) Transactions() []models.Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.Transaction, len(w.transactions))
	copy(out, w.transactions)
	return out
}

// MemoryHistory is an in-memory HistoryStore for tests.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []models.GameHistory
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (h *MemoryHistory) RecordGameHistory(ctx context.Context, entry models.GameHistory) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
	return nil
}

func (h *MemoryHistory) Entries() []models.GameHistory {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.GameHistory, len(h.entries))
	copy(out, h.entries)
	return out
}
