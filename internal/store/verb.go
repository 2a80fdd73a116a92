package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"aralin/internal/domain"
)

// VerbStore defines the interface for verb data persistence.
type VerbStore interface {
	// Create saves a new verb to the store.
	// It handles domain validation internally.
	// Returns ErrVerbExists if the user already has a verb with the same root.
	Create(ctx context.Context, verb *domain.Verb) error

	// GetByID retrieves a verb by its unique ID.
	// Returns ErrVerbNotFound if the verb does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Verb, error)

	// Update saves changes to an existing verb.
	// Returns ErrVerbNotFound if the verb does not exist.
	Update(ctx context.Context, verb *domain.Verb) error

	// UpdateStatus updates the card-generation status of an existing verb.
	// Returns ErrVerbNotFound if the verb does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VerbStatus) error

	// FindVerbsByStatus retrieves all verbs with the specified status,
	// ordered by creation time. Returns an empty slice if none match.
	FindVerbsByStatus(ctx context.Context, status domain.VerbStatus, limit, offset int) ([]*domain.Verb, error)

	// WithTx returns a new VerbStore instance that uses the provided
	// transaction, allowing multiple operations to execute atomically.
	WithTx(tx *sql.Tx) VerbStore
}
