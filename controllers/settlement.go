package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"color-rush/models"
)

const gameName = "color-draw"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBetWindowClosed   = errors.New("betting window is closed")
)

// WalletStore is the serialized balance mutation entry point. Adjust
// must reject any delta that would take the balance negative, and a
// balance read must reflect every prior adjustment.
type WalletStore interface {
	Balance(ctx context.Context, player string) (float64, error)
	Adjust(ctx context.Context, player string, delta float64, kind models.TransactionType, description string) error
}

// HistoryStore records one game-history row per settled round.
type HistoryStore interface {
	RecordGameHistory(ctx context.Context, entry models.GameHistory) error
}

// Settler reconciles one player's pending bets when a round resolves:
// drain the ledger, evaluate every bet, credit total winnings once, and
// emit exactly one result event and one history row.
type Settler struct {
	Player  string
	Ledger  *models.BetLedger
	Wallet  WalletStore
	History HistoryStore
	Notify  func(models.RoundResult)
}

// OnRoundResolved settles the player's bets for the resolved round.
// The ledger drain is the de-duplication mechanism: invoking this twice
// for the same snapshot settles nothing the second time.
func (s *Settler) OnRoundResolved(state models.RoundState) {
	if state.Phase != models.PhaseResolving || state.Outcome == nil {
		return
	}
	outcome := *state.Outcome
	if outcome.Number < 0 || outcome.Number > 9 {
		// Impossible under correct generation; never pay out on it.
		log.Printf("Malformed outcome %d for round %d, skipping settlement.", outcome.Number, outcome.RoundID)
		return
	}

	bets := s.Ledger.Drain(outcome.RoundID)
	if len(bets) == 0 {
		return
	}

	var totalStake, totalWin float64
	for _, bet := range bets {
		totalStake += bet.Stake
		if won, multiplier := EvaluateBet(outcome, bet.Target); won {
			totalWin += bet.Stake * multiplier
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if totalWin > 0 {
		desc := fmt.Sprintf("win on round %d (drew %d)", outcome.RoundID, outcome.Number)
		if err := s.Wallet.Adjust(ctx, s.Player, totalWin, models.TransactionTypeWin, desc); err != nil {
			log.Printf("Failed to credit win for %s on round %d: %v", s.Player, outcome.RoundID, err)
		}
	}

	result := models.RoundResult{
		Player:  s.Player,
		RoundID: outcome.RoundID,
		Number:  outcome.Number,
		Won:     totalWin > 0,
		Amount:  totalStake,
	}
	if result.Won {
		result.Amount = totalWin
	}
	if s.Notify != nil {
		s.Notify(result)
	}

	entry := models.GameHistory{
		Player:    s.Player,
		Game:      gameName,
		Staked:    totalStake,
		Won:       totalWin,
		Detail:    fmt.Sprintf("round %d drew %d (%s, %s)", outcome.RoundID, outcome.Number, outcome.Color, outcome.Size),
		CreatedAt: time.Now(),
	}
	if err := s.History.RecordGameHistory(ctx, entry); err != nil {
		log.Printf("Failed to record history for %s on round %d: %v", s.Player, outcome.RoundID, err)
	}
}
