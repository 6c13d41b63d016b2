package models

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// BetKind discriminates what a wager is placed on.
type BetKind string

const (
	BetKindColor  BetKind = "color"
	BetKindSize   BetKind = "size"
	BetKindNumber BetKind = "number"
)

// BetTarget is the category a bet is placed on: a color, a size class,
// or an exact digit.
type BetTarget struct {
	Kind   BetKind    `json:"kind" bson:"kind"`
	Color  ColorClass `json:"color,omitempty" bson:"color,omitempty"`
	Size   SizeClass  `json:"size,omitempty" bson:"size,omitempty"`
	Number int        `json:"number,omitempty" bson:"number,omitempty"`
}

// ParseBetTarget parses the wire form of a target: "red", "green",
// "violet", "big", "small", or a single digit "0".."9".
func ParseBetTarget(s string) (BetTarget, error) {
	switch s {
	case "red":
		return BetTarget{Kind: BetKindColor, Color: ColorRed}, nil
	case "green":
		return BetTarget{Kind: BetKindColor, Color: ColorGreen}, nil
	case "violet":
		return BetTarget{Kind: BetKindColor, Color: ColorViolet}, nil
	case "big":
		return BetTarget{Kind: BetKindSize, Size: SizeBig}, nil
	case "small":
		return BetTarget{Kind: BetKindSize, Size: SizeSmall}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 9 {
		return BetTarget{}, fmt.Errorf("invalid bet target %q", s)
	}
	return BetTarget{Kind: BetKindNumber, Number: n}, nil
}

func (t BetTarget) String() string {
	switch t.Kind {
	case BetKindColor:
		return string(t.Color)
	case BetKindSize:
		return string(t.Size)
	case BetKindNumber:
		return strconv.Itoa(t.Number)
	}
	return "unknown"
}

// PendingBet is a wager waiting for its round to resolve. Owned by the
// placing player's session only.
type PendingBet struct {
	Target   BetTarget `json:"target" bson:"target"`
	Stake    float64   `json:"stake" bson:"stake"`
	RoundID  int64     `json:"round_id" bson:"round_id"`
	PlacedAt time.Time `json:"placed_at" bson:"placed_at"`
}

// BetLedger holds one player's pending bets. Bets for the same round
// and even the same target coexist as separate stakes; they are never
// merged.
type BetLedger struct {
	mu   sync.Mutex
	bets []PendingBet
}

func NewBetLedger() *BetLedger {
	return &BetLedger{}
}

func (l *BetLedger) Append(bet PendingBet) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bets = append(l.bets, bet)
}

// Drain removes and returns every pending bet for the given round.
// A second drain for the same round returns nothing, which is what
// makes settlement exactly-once. Bets for other rounds are untouched.
func (l *BetLedger) Drain(roundID int64) []PendingBet {
	l.mu.Lock()
	defer l.mu.Unlock()
	var drained, kept []PendingBet
	for _, b := range l.bets {
		if b.RoundID == roundID {
			drained = append(drained, b)
		} else {
			kept = append(kept, b)
		}
	}
	l.bets = kept
	return drained
}

// Pending returns a copy of all not-yet-settled bets.
func (l *BetLedger) Pending() []PendingBet {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]PendingBet, len(l.bets))
	copy(out, l.bets)
	return out
}
