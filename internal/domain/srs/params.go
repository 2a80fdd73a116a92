// Package srs implements the SM-2-style spaced repetition scheduler that
// decides when a card should next be reviewed.
package srs

import "aralin/internal/domain"

// Params defines the tunable knobs of the scheduling algorithm.
type Params struct {
	// Ease factor bounds. The ease factor grows intervals faster for easy
	// cards and is clamped into this range after every adjustment.
	MinEaseFactor float64
	MaxEaseFactor float64

	// Per-outcome ease factor adjustments and interval multipliers.
	EaseFactorAdjustment map[domain.ReviewOutcome]float64
	IntervalModifier     map[domain.ReviewOutcome]float64

	// FirstReviewIntervals gives the interval in days assigned on a card's
	// first successful review.
	FirstReviewIntervals map[domain.ReviewOutcome]int

	// AgainReviewMinutes is how soon a failed card comes back, in minutes.
	AgainReviewMinutes int
}

// DefaultParams returns the standard scheduling parameters.
func DefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 2.5,

		EaseFactorAdjustment: map[domain.ReviewOutcome]float64{
			domain.ReviewOutcomeAgain: -0.20,
			domain.ReviewOutcomeHard:  -0.15,
			domain.ReviewOutcomeGood:  0.0,
			domain.ReviewOutcomeEasy:  0.15,
		},

		IntervalModifier: map[domain.ReviewOutcome]float64{
			domain.ReviewOutcomeAgain: 0.0,
			domain.ReviewOutcomeHard:  1.2,
			domain.ReviewOutcomeGood:  1.0, // Good uses the ease factor directly
			domain.ReviewOutcomeEasy:  1.3,
		},

		FirstReviewIntervals: map[domain.ReviewOutcome]int{
			domain.ReviewOutcomeHard: 1,
			domain.ReviewOutcomeGood: 1,
			domain.ReviewOutcomeEasy: 2,
		},

		AgainReviewMinutes: 10,
	}
}
