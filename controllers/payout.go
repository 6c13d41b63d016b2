package controllers

import "color-rush/models"

// Payout multipliers for the color-prediction game. Violet shares its
// digits with red (0) and green (5), which is why those colors pay a
// reduced 1.5x on the violet digits.
const (
	colorMultiplier      = 2.0
	colorEdgeMultiplier  = 1.5
	violetMultiplier     = 4.5
	sizeMultiplier       = 2.0
	exactDigitMultiplier = 9.0
)

// EvaluateBet decides whether a target wins against a drawn outcome and
// at what multiplier. Pure; no state, no side effects.
func EvaluateBet(outcome models.RoundOutcome, target models.BetTarget) (bool, float64) {
	switch target.Kind {
	case models.BetKindColor:
		switch target.Color {
		case models.ColorGreen:
			if outcome.Color == models.ColorGreen {
				return true, colorMultiplier
			}
			if outcome.Number == 5 {
				return true, colorEdgeMultiplier
			}
		case models.ColorRed:
			if outcome.Color == models.ColorRed {
				return true, colorMultiplier
			}
			if outcome.Number == 0 {
				return true, colorEdgeMultiplier
			}
		case models.ColorViolet:
			if outcome.Color == models.ColorViolet {
				return true, violetMultiplier
			}
		}
	case models.BetKindSize:
		if outcome.Size == target.Size {
			return true, sizeMultiplier
		}
	case models.BetKindNumber:
		if outcome.Number == target.Number {
			return true, exactDigitMultiplier
		}
	}
	return false, 0
}
