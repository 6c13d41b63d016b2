package controllers

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"color-rush/models"
)

// GameSession is one player's seat at the draw game: their bet ledger
// plus a settlement subscription on the engine. Created lazily the
// first time a player shows up.
type GameSession struct {
	Player      string
	Ledger      *models.BetLedger
	engine      *DrawEngine
	wallet      WalletStore
	unsubscribe func()
}

// SessionManager hands out per-player sessions. One instance per
// process; sessions live until Close.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*GameSession
	engine   *DrawEngine
	wallet   WalletStore
	history  HistoryStore
	notify   func(models.RoundResult)
}

func NewSessionManager(engine *DrawEngine, wallet WalletStore, history HistoryStore, notify func(models.RoundResult)) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*GameSession),
		engine:   engine,
		wallet:   wallet,
		history:  history,
		notify:   notify,
	}
}

// Session returns the player's session, creating it (and subscribing
// its settler to the engine) on first use.
func (m *SessionManager) Session(player string) *GameSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[player]; ok {
		return s
	}
	s := &GameSession{
		Player: player,
		Ledger: models.NewBetLedger(),
		engine: m.engine,
		wallet: m.wallet,
	}
	settler := &Settler{
		Player:  player,
		Ledger:  s.Ledger,
		Wallet:  m.wallet,
		History: m.history,
		Notify:  m.notify,
	}
	s.unsubscribe = m.engine.Subscribe(settler.OnRoundResolved)
	m.sessions[player] = s
	return s
}

// Close tears down a player's session. Any bets still pending are not
// settled once the subscription is gone; that is a known non-guarantee
// of leaving mid-round.
func (m *SessionManager) Close(player string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[player]; ok {
		s.unsubscribe()
		delete(m.sessions, player)
	}
}

// PlaceBet validates the betting window, debits the stake, and appends
// the pending bet tagged with the current round. Rejections are
// all-or-nothing: no partial debit, no ledger entry. The append happens
// under the round clock, so a bet either lands in a window that is
// still open or is refunded — the debit can never outlive its round.
func (s *GameSession) PlaceBet(ctx context.Context, target string, stake float64) (models.PendingBet, error) {
	if stake <= 0 {
		return models.PendingBet{}, fmt.Errorf("stake must be positive")
	}
	parsed, err := models.ParseBetTarget(target)
	if err != nil {
		return models.PendingBet{}, err
	}

	snapshot := s.engine.Snapshot()
	if snapshot.Phase != models.PhaseBetting {
		return models.PendingBet{}, ErrBetWindowClosed
	}

	desc := fmt.Sprintf("bet on %s, round %d", parsed, snapshot.RoundID)
	if err := s.wallet.Adjust(ctx, s.Player, -stake, models.TransactionTypeBet, desc); err != nil {
		return models.PendingBet{}, err
	}

	bet := models.PendingBet{
		Target:   parsed,
		Stake:    stake,
		RoundID:  snapshot.RoundID,
		PlacedAt: time.Now(),
	}

	// The round may have resolved while the debit round-tripped the
	// store; appending then would strand a bet settlement can never
	// drain. Refund instead of orphaning the stake.
	if !s.engine.DuringBetting(bet.RoundID, func() { s.Ledger.Append(bet) }) {
		refund := fmt.Sprintf("refund: round %d closed before bet on %s landed", bet.RoundID, parsed)
		if err := s.wallet.Adjust(ctx, s.Player, stake, models.TransactionTypeRefund, refund); err != nil {
			log.Printf("Failed to refund %s for round %d: %v", s.Player, bet.RoundID, err)
		}
		return models.PendingBet{}, ErrBetWindowClosed
	}
	return bet, nil
}
