package models

// Phase is the lifecycle state of a draw round.
type Phase string

const (
	PhaseBetting   Phase = "betting"   // accepting wagers
	PhaseResolving Phase = "resolving" // outcome fixed, payouts being settled
)

type ColorClass string

const (
	ColorRed    ColorClass = "red"
	ColorGreen  ColorClass = "green"
	ColorViolet ColorClass = "violet"
)

type SizeClass string

const (
	SizeBig   SizeClass = "big"
	SizeSmall SizeClass = "small"
)

// RoundOutcome is the drawn result of a single round. Immutable once
// generated.
type RoundOutcome struct {
	RoundID int64      `json:"round_id" bson:"round_id"`
	Number  int        `json:"number" bson:"number"`
	Size    SizeClass  `json:"size" bson:"size"`
	Color   ColorClass `json:"color" bson:"color"`
}

// ColorOf maps a drawn digit to its color class: 0 and 5 are violet,
// the odd digits 1, 3, 7, 9 are green, the rest are red.
func ColorOf(number int) ColorClass {
	switch {
	case number == 0 || number == 5:
		return ColorViolet
	case number == 1 || number == 3 || number == 7 || number == 9:
		return ColorGreen
	default:
		return ColorRed
	}
}

func SizeOf(number int) SizeClass {
	if number >= 5 {
		return SizeBig
	}
	return SizeSmall
}

func NewRoundOutcome(roundID int64, number int) RoundOutcome {
	return RoundOutcome{
		RoundID: roundID,
		Number:  number,
		Size:    SizeOf(number),
		Color:   ColorOf(number),
	}
}

// RoundState is the authoritative state of the draw clock. It is
// mutated only by the draw engine; everything else receives copies.
type RoundState struct {
	RoundID          int64          `json:"round_id"`
	Phase            Phase          `json:"phase"`
	SecondsRemaining int            `json:"seconds_remaining"`
	Outcome          *RoundOutcome  `json:"outcome,omitempty"`
	RecentOutcomes   []RoundOutcome `json:"recent_outcomes"`
}

// Copy returns a snapshot safe to hand to observers: the recent-outcome
// slice and the outcome pointer are duplicated so callers cannot reach
// back into engine state.
func (s RoundState) Copy() RoundState {
	out := s
	if s.Outcome != nil {
		o := *s.Outcome
		out.Outcome = &o
	}
	out.RecentOutcomes = make([]RoundOutcome, len(s.RecentOutcomes))
	copy(out.RecentOutcomes, s.RecentOutcomes)
	return out
}

// RoundResult is the single per-player settlement event emitted for a
// resolved round.
type RoundResult struct {
	Player  string  `json:"player"`
	RoundID int64   `json:"round_id"`
	Number  int     `json:"number"`
	Won     bool    `json:"won"`
	Amount  float64 `json:"amount"` // total winnings, or total stake lost
}
