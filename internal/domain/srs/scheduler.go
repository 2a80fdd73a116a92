package srs

import (
	"errors"
	"time"

	"aralin/internal/domain"
)

// Common scheduler errors
var (
	ErrNilStats       = errors.New("user card stats cannot be nil")
	ErrInvalidOutcome = errors.New("invalid review outcome")
	ErrInvalidDays    = errors.New("postpone days must be at least 1")
)

// Service defines the scheduling operations used by the review flow.
type Service interface {
	// CalculateNextReview computes new stats from a review outcome.
	// The input stats are never modified; a fresh copy is returned.
	CalculateNextReview(
		stats *domain.UserCardStats,
		outcome domain.ReviewOutcome,
		now time.Time,
	) (*domain.UserCardStats, error)

	// PostponeReview pushes the next review forward by the given number of days.
	PostponeReview(
		stats *domain.UserCardStats,
		days int,
		now time.Time,
	) (*domain.UserCardStats, error)
}

type scheduler struct {
	params *Params
}

// NewService creates a scheduler with the default parameters.
func NewService() Service {
	return &scheduler{params: DefaultParams()}
}

// NewServiceWithParams creates a scheduler with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &scheduler{params: params}
}

func (s *scheduler) CalculateNextReview(
	stats *domain.UserCardStats,
	outcome domain.ReviewOutcome,
	now time.Time,
) (*domain.UserCardStats, error) {
	if stats == nil {
		return nil, ErrNilStats
	}
	if !outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}

	next := *stats
	next.ReviewCount++
	next.LastReviewedAt = now
	next.EaseFactor = s.nextEaseFactor(stats.EaseFactor, outcome)

	if outcome == domain.ReviewOutcomeAgain {
		next.ConsecutiveCorrect = 0
	} else {
		next.ConsecutiveCorrect++
	}

	next.Interval = s.nextInterval(stats.Interval, stats.ConsecutiveCorrect, next.EaseFactor, outcome)
	next.NextReviewAt = s.nextReviewAt(next.Interval, outcome, now)
	next.UpdatedAt = now

	return &next, nil
}

func (s *scheduler) PostponeReview(
	stats *domain.UserCardStats,
	days int,
	now time.Time,
) (*domain.UserCardStats, error) {
	if stats == nil {
		return nil, ErrNilStats
	}
	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := *stats
	next.NextReviewAt = stats.NextReviewAt.AddDate(0, 0, days)
	next.UpdatedAt = now

	return &next, nil
}

// nextEaseFactor applies the outcome's adjustment and clamps the result into
// the configured bounds.
func (s *scheduler) nextEaseFactor(current float64, outcome domain.ReviewOutcome) float64 {
	ef := current + s.params.EaseFactorAdjustment[outcome]
	if ef < s.params.MinEaseFactor {
		ef = s.params.MinEaseFactor
	}
	if ef > s.params.MaxEaseFactor {
		ef = s.params.MaxEaseFactor
	}
	return ef
}

// nextInterval computes the new interval in days. Again resets the interval;
// a first review uses the configured starting intervals; a Good review after
// a lapse grows the old interval by 1.5 rather than the full ease factor.
func (s *scheduler) nextInterval(
	currentInterval, consecutiveCorrect int,
	easeFactor float64,
	outcome domain.ReviewOutcome,
) int {
	if outcome == domain.ReviewOutcomeAgain {
		return 0
	}

	if currentInterval == 0 {
		return s.params.FirstReviewIntervals[outcome]
	}

	if consecutiveCorrect == 0 && outcome == domain.ReviewOutcomeGood {
		return int(float64(currentInterval) * 1.5)
	}

	modifier := s.params.IntervalModifier[outcome]
	switch outcome {
	case domain.ReviewOutcomeGood:
		modifier = easeFactor
	case domain.ReviewOutcomeEasy:
		modifier *= easeFactor
	}

	return int(float64(currentInterval) * modifier)
}

// nextReviewAt converts the interval into a concrete due time. Failed cards
// come back within minutes, everything else after the interval in days.
func (s *scheduler) nextReviewAt(interval int, outcome domain.ReviewOutcome, now time.Time) time.Time {
	if outcome == domain.ReviewOutcomeAgain {
		return now.Add(time.Duration(s.params.AgainReviewMinutes) * time.Minute)
	}
	return now.AddDate(0, 0, interval)
}
