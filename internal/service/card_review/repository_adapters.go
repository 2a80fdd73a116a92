package card_review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/store"
)

// CardRepository defines the card data access the review service needs,
// including transaction support.
type CardRepository interface {
	// GetByID retrieves a card by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetNextReviewCard retrieves the next card due for review for a user.
	GetNextReviewCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardRepository

	// DB returns the underlying database connection for transaction management.
	DB() *sql.DB
}

// UserCardStatsRepository defines the stats data access the review service
// needs, including transaction support.
type UserCardStatsRepository interface {
	// Get retrieves stats by user ID and card ID without locking.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error)

	// GetForUpdate retrieves stats with a row-level lock for update.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error)

	// Create saves a new stats entry.
	Create(ctx context.Context, stats *domain.UserCardStats) error

	// Update modifies an existing stats entry.
	Update(ctx context.Context, stats *domain.UserCardStats) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserCardStatsRepository
}

// NewCardRepositoryAdapter allows a store.CardStore to be used where a
// CardRepository is expected.
func NewCardRepositoryAdapter(cardStore store.CardStore, db *sql.DB) CardRepository {
	return &cardRepositoryAdapter{
		cardStore: cardStore,
		db:        db,
	}
}

type cardRepositoryAdapter struct {
	cardStore store.CardStore
	db        *sql.DB
}

func (a *cardRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return a.cardStore.GetByID(ctx, id)
}

func (a *cardRepositoryAdapter) GetNextReviewCard(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Card, error) {
	return a.cardStore.GetNextReviewCard(ctx, userID)
}

func (a *cardRepositoryAdapter) WithTx(tx *sql.Tx) CardRepository {
	return &cardRepositoryAdapter{
		cardStore: a.cardStore.WithTx(tx),
		db:        a.db,
	}
}

func (a *cardRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewUserCardStatsRepositoryAdapter allows a store.UserCardStatsStore to be
// used where a UserCardStatsRepository is expected.
func NewUserCardStatsRepositoryAdapter(statsStore store.UserCardStatsStore) UserCardStatsRepository {
	return &userCardStatsRepositoryAdapter{
		statsStore: statsStore,
	}
}

type userCardStatsRepositoryAdapter struct {
	statsStore store.UserCardStatsStore
}

func (a *userCardStatsRepositoryAdapter) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.UserCardStats, error) {
	return a.statsStore.Get(ctx, userID, cardID)
}

func (a *userCardStatsRepositoryAdapter) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.UserCardStats, error) {
	return a.statsStore.GetForUpdate(ctx, userID, cardID)
}

func (a *userCardStatsRepositoryAdapter) Create(
	ctx context.Context,
	stats *domain.UserCardStats,
) error {
	return a.statsStore.Create(ctx, stats)
}

func (a *userCardStatsRepositoryAdapter) Update(
	ctx context.Context,
	stats *domain.UserCardStats,
) error {
	return a.statsStore.Update(ctx, stats)
}

func (a *userCardStatsRepositoryAdapter) WithTx(tx *sql.Tx) UserCardStatsRepository {
	return &userCardStatsRepositoryAdapter{
		statsStore: a.statsStore.WithTx(tx),
	}
}
