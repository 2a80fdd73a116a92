// Package card_review coordinates flashcard review sessions: fetching the
// next due card, grading answers through the spaced repetition scheduler,
// and postponing reviews.
package card_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"aralin/internal/domain"
)

// ReviewAnswer represents a user's answer to a flashcard review.
type ReviewAnswer struct {
	Outcome domain.ReviewOutcome `json:"outcome"`
}

// CardReviewService provides methods for reviewing flashcards using a
// spaced repetition algorithm.
type CardReviewService interface {
	// GetNextCard retrieves the next card due for review for a user.
	// Returns ErrNoCardsDue if nothing is currently due. This method does
	// not modify any data.
	GetNextCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error)

	// SubmitAnswer grades a user's answer and updates the review schedule.
	// Within a single transaction it verifies ownership, locks the stats
	// row, runs the scheduler, and persists the new stats.
	// Returns ErrCardNotFound, ErrCardNotOwned, or ErrInvalidAnswer on the
	// corresponding failures.
	SubmitAnswer(
		ctx context.Context,
		userID uuid.UUID,
		cardID uuid.UUID,
		answer ReviewAnswer,
	) (*domain.UserCardStats, error)

	// PostponeCard pushes a card's next review forward by the given number
	// of days. Returns ErrCardNotFound, ErrCardNotOwned, or an error from
	// the scheduler for days < 1.
	PostponeCard(
		ctx context.Context,
		userID uuid.UUID,
		cardID uuid.UUID,
		days int,
	) (*domain.UserCardStats, error)
}

// Common error types for CardReviewService
var (
	// ErrNoCardsDue indicates that the user has no cards due for review.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardStatsNotFound indicates that the card statistics do not exist.
	ErrCardStatsNotFound = errors.New("card stats not found")

	// ErrCardNotOwned indicates that the user does not own the card.
	ErrCardNotOwned = errors.New("unauthorized access: card not owned by user")

	// ErrInvalidAnswer indicates an invalid answer was provided.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// ServiceError wraps errors from the card review service with operation
// context so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	Operation string // e.g. "get_next_card", "submit_answer"
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitAnswerError returns a new ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_answer", Message: message, Err: err}
}

// NewGetNextCardError returns a new ServiceError for the get_next_card operation.
func NewGetNextCardError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "get_next_card", Message: message, Err: err}
}

// NewPostponeCardError returns a new ServiceError for the postpone_card operation.
func NewPostponeCardError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "postpone_card", Message: message, Err: err}
}
