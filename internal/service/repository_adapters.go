package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/store"
)

// NewVerbRepositoryAdapter allows a store.VerbStore to be used where a
// VerbRepository is expected.
func NewVerbRepositoryAdapter(verbStore store.VerbStore, db *sql.DB) VerbRepository {
	return &verbRepositoryAdapter{
		verbStore: verbStore,
		db:        db,
	}
}

type verbRepositoryAdapter struct {
	verbStore store.VerbStore
	db        *sql.DB
}

func (a *verbRepositoryAdapter) Create(ctx context.Context, verb *domain.Verb) error {
	return a.verbStore.Create(ctx, verb)
}

func (a *verbRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Verb, error) {
	return a.verbStore.GetByID(ctx, id)
}

func (a *verbRepositoryAdapter) Update(ctx context.Context, verb *domain.Verb) error {
	return a.verbStore.Update(ctx, verb)
}

func (a *verbRepositoryAdapter) WithTx(tx *sql.Tx) VerbRepository {
	return &verbRepositoryAdapter{
		verbStore: a.verbStore.WithTx(tx),
		db:        a.db,
	}
}

func (a *verbRepositoryAdapter) DB() *sql.DB {
	return a.db
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

func (a *cardRepositoryAdapter) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	return a.cardStore.CreateMultiple(ctx, cards)
}

func (a *cardRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return a.cardStore.GetByID(ctx, id)
}

func (a *cardRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.cardStore.Delete(ctx, id)
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

// NewStatsRepositoryAdapter allows a store.UserCardStatsStore to be used
// where a StatsRepository is expected.
func NewStatsRepositoryAdapter(statsStore store.UserCardStatsStore) StatsRepository {
	return &statsRepositoryAdapter{
		statsStore: statsStore,
	}
}

type statsRepositoryAdapter struct {
	statsStore store.UserCardStatsStore
}

func (a *statsRepositoryAdapter) Create(ctx context.Context, stats *domain.UserCardStats) error {
	return a.statsStore.Create(ctx, stats)
}

func (a *statsRepositoryAdapter) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.UserCardStats, error) {
	return a.statsStore.Get(ctx, userID, cardID)
}

func (a *statsRepositoryAdapter) Update(ctx context.Context, stats *domain.UserCardStats) error {
	return a.statsStore.Update(ctx, stats)
}

func (a *statsRepositoryAdapter) WithTx(tx *sql.Tx) StatsRepository {
	return &statsRepositoryAdapter{
		statsStore: a.statsStore.WithTx(tx),
	}
}
