package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"aralin/internal/domain"
)

// UserCardStatsStore defines the interface for user card statistics
// data persistence.
type UserCardStatsStore interface {
	// Create saves a new user card statistics entry.
	// It handles domain validation internally.
	// Returns an error if the entry already exists.
	Create(ctx context.Context, stats *domain.UserCardStats) error

	// Get retrieves user card statistics by the combination of user ID and
	// card ID. It takes no row lock; do not use it when you plan to update
	// the row under concurrency.
	// Returns ErrUserCardStatsNotFound if the entry does not exist.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error)

	// GetForUpdate retrieves user card statistics with a row-level lock
	// using SELECT FOR UPDATE. Use within a transaction when the row will
	// be updated.
	// Returns ErrUserCardStatsNotFound if the entry does not exist.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error)

	// Update modifies an existing statistics entry, identified by the
	// UserID and CardID fields of the stats object.
	// Returns ErrUserCardStatsNotFound if the entry does not exist.
	Update(ctx context.Context, stats *domain.UserCardStats) error

	// Delete removes user card statistics by the combination of user ID and
	// card ID.
	// Returns ErrUserCardStatsNotFound if the entry does not exist.
	Delete(ctx context.Context, userID, cardID uuid.UUID) error

	// WithTx returns a new UserCardStatsStore instance that uses the
	// provided transaction, allowing multiple operations to execute
	// atomically.
	WithTx(tx *sql.Tx) UserCardStatsStore
}
