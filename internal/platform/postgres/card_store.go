package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/platform/logger"
	"aralin/internal/store"
)

// PostgresCardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend. Card content lives in a
// JSONB column.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. If logger is nil, the default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateMultiple implements store.CardStore.CreateMultiple
// Must run within a transaction; see store.RunInTransaction.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("card validation failed during create",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return err
		}
	}

	query := `
		INSERT INTO cards (id, user_id, verb_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		log.Error("failed to prepare card insert",
			slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close statement", slog.String("error", err.Error()))
		}
	}()

	for _, card := range cards {
		_, err := stmt.ExecContext(
			ctx,
			card.ID,
			card.UserID,
			card.VerbID,
			card.Content,
			card.CreatedAt,
			card.UpdatedAt,
		)
		if err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("foreign key violation during card creation",
					slog.String("error", err.Error()),
					slog.String("card_id", card.ID.String()))
				return fmt.Errorf("%w: referenced user or verb not found",
					store.ErrInvalidEntity)
			}
			log.Error("failed to insert card",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return err
		}
	}

	log.Info("cards created successfully",
		slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, verb_id, content, created_at, updated_at
		FROM cards
		WHERE id = $1
	`

	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.UserID,
		&card.VerbID,
		&card.Content,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, err
	}

	return &card, nil
}

// UpdateContent implements store.CardStore.UpdateContent
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) UpdateContent(ctx context.Context, id uuid.UUID, content []byte) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var js json.RawMessage
	if err := json.Unmarshal(content, &js); err != nil {
		log.Warn("invalid card content for update",
			slog.String("card_id", id.String()))
		return domain.ErrCardContentNotJSON
	}

	query := `
		UPDATE cards
		SET content = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, content, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update card content",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Info("card content updated successfully",
		slog.String("card_id", id.String()))
	return nil
}

// Delete implements store.CardStore.Delete
// Associated user_card_stats rows are removed by ON DELETE CASCADE.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Info("card deleted successfully",
		slog.String("card_id", id.String()))
	return nil
}

// GetNextReviewCard implements store.CardStore.GetNextReviewCard
// It picks the user's card with the earliest due next_review_at.
// Returns store.ErrCardNotFound if no cards are due.
func (s *PostgresCardStore) GetNextReviewCard(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id, c.user_id, c.verb_id, c.content, c.created_at, c.updated_at
		FROM cards c
		JOIN user_card_stats ucs ON ucs.card_id = c.id AND ucs.user_id = c.user_id
		WHERE c.user_id = $1 AND ucs.next_review_at <= $2
		ORDER BY ucs.next_review_at ASC
		LIMIT 1
	`

	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, userID, time.Now().UTC()).Scan(
		&card.ID,
		&card.UserID,
		&card.VerbID,
		&card.Content,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no cards due for review",
				slog.String("user_id", userID.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get next review card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	log.Debug("next review card retrieved",
		slog.String("card_id", card.ID.String()),
		slog.String("user_id", userID.String()))
	return &card, nil
}
