package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewOutcome represents the result of a card review.
type ReviewOutcome string

// Possible review outcome values
const (
	ReviewOutcomeAgain ReviewOutcome = "again"
	ReviewOutcomeHard  ReviewOutcome = "hard"
	ReviewOutcomeGood  ReviewOutcome = "good"
	ReviewOutcomeEasy  ReviewOutcome = "easy"
)

// IsValid reports whether o is one of the four supported outcomes.
func (o ReviewOutcome) IsValid() bool {
	switch o {
	case ReviewOutcomeAgain, ReviewOutcomeHard, ReviewOutcomeGood, ReviewOutcomeEasy:
		return true
	default:
		return false
	}
}

// UserCardStats validation errors
var (
	ErrEmptyStatsUserID  = errors.New("stats user ID cannot be empty")
	ErrEmptyStatsCardID  = errors.New("stats card ID cannot be empty")
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor = errors.New("ease factor must be greater than 1.0")
)

// UserCardStats tracks a user's spaced repetition state for a single card.
// Instances are treated as immutable: the srs package returns fresh copies
// rather than mutating in place.
type UserCardStats struct {
	UserID             uuid.UUID `json:"user_id"`
	CardID             uuid.UUID `json:"card_id"`
	Interval           int       `json:"interval"`            // Days until the next review
	EaseFactor         float64   `json:"ease_factor"`         // Difficulty modifier, typically 1.3-2.5
	ConsecutiveCorrect int       `json:"consecutive_correct"` // Streak of non-Again reviews
	LastReviewedAt     time.Time `json:"last_reviewed_at"`
	NextReviewAt       time.Time `json:"next_review_at"`
	ReviewCount        int       `json:"review_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewUserCardStats creates stats for a freshly generated card. The card is
// due immediately so new material surfaces in the next review session.
func NewUserCardStats(userID, cardID uuid.UUID) (*UserCardStats, error) {
	now := time.Now().UTC()
	stats := &UserCardStats{
		UserID:       userID,
		CardID:       cardID,
		Interval:     0,
		EaseFactor:   2.5,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := stats.Validate(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Validate checks if the UserCardStats has valid data.
func (s *UserCardStats) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStatsUserID
	}

	if s.CardID == uuid.Nil {
		return ErrEmptyStatsCardID
	}

	if s.Interval < 0 {
		return ErrInvalidInterval
	}

	if s.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	return nil
}
