package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"aralin/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// CreateMultiple saves multiple cards to the store. This method must be
	// run within a transaction for atomicity; use WithTx together with
	// store.RunInTransaction. It only persists card entities and does not
	// create associated UserCardStats rows; the service layer coordinates
	// that.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	// The returned card has its Content field populated from JSONB.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// UpdateContent modifies an existing card's content field.
	// Returns ErrCardNotFound if the card does not exist.
	// Returns an error if the content is not valid JSON.
	UpdateContent(ctx context.Context, id uuid.UUID, content []byte) error

	// Delete removes a card from the store by its ID. Associated
	// UserCardStats rows are removed by the schema's ON DELETE CASCADE
	// constraint, not by application code.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetNextReviewCard retrieves the card with the earliest due
	// UserCardStats.NextReviewAt for the user.
	// Returns ErrCardNotFound if no cards are due for review.
	GetNextReviewCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction, allowing multiple operations to execute atomically.
	WithTx(tx *sql.Tx) CardStore
}
