package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/platform/logger"
	"aralin/internal/store"
)

// PostgresUserCardStatsStore implements the store.UserCardStatsStore
// interface using a PostgreSQL database as the storage backend.
type PostgresUserCardStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserCardStatsStore creates a new PostgreSQL implementation of
// the UserCardStatsStore interface. If logger is nil, the default logger
// is used.
func NewPostgresUserCardStatsStore(db store.DBTX, logger *slog.Logger) *PostgresUserCardStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserCardStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresUserCardStatsStore implements store.UserCardStatsStore
var _ store.UserCardStatsStore = (*PostgresUserCardStatsStore)(nil)

// WithTx implements store.UserCardStatsStore.WithTx
func (s *PostgresUserCardStatsStore) WithTx(tx *sql.Tx) store.UserCardStatsStore {
	return &PostgresUserCardStatsStore{
		db:     tx,
		logger: s.logger,
	}
}

const statsColumns = `user_id, card_id, interval, ease_factor, consecutive_correct,
	last_reviewed_at, next_review_at, review_count, created_at, updated_at`

// Create implements store.UserCardStatsStore.Create
func (s *PostgresUserCardStatsStore) Create(ctx context.Context, stats *domain.UserCardStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := stats.Validate(); err != nil {
		log.Warn("stats validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", stats.CardID.String()))
		return err
	}

	query := `
		INSERT INTO user_card_stats (` + statsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	// LastReviewedAt is NULL until the first review.
	var lastReviewed sql.NullTime
	if !stats.LastReviewedAt.IsZero() {
		lastReviewed = sql.NullTime{Time: stats.LastReviewedAt, Valid: true}
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		stats.UserID,
		stats.CardID,
		stats.Interval,
		stats.EaseFactor,
		stats.ConsecutiveCorrect,
		lastReviewed,
		stats.NextReviewAt,
		stats.ReviewCount,
		stats.CreatedAt,
		stats.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("stats entry already exists",
				slog.String("user_id", stats.UserID.String()),
				slog.String("card_id", stats.CardID.String()))
			return store.ErrDuplicate
		}
		log.Error("failed to create stats",
			slog.String("error", err.Error()),
			slog.String("user_id", stats.UserID.String()),
			slog.String("card_id", stats.CardID.String()))
		return err
	}

	return nil
}

// Get implements store.UserCardStatsStore.Get
// Returns store.ErrUserCardStatsNotFound if the entry does not exist.
func (s *PostgresUserCardStatsStore) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.UserCardStats, error) {
	query := `
		SELECT ` + statsColumns + `
		FROM user_card_stats
		WHERE user_id = $1 AND card_id = $2
	`
	return s.queryRow(ctx, query, userID, cardID)
}

// GetForUpdate implements store.UserCardStatsStore.GetForUpdate
// Acquires a row-level lock; call within a transaction.
// Returns store.ErrUserCardStatsNotFound if the entry does not exist.
func (s *PostgresUserCardStatsStore) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.UserCardStats, error) {
	query := `
		SELECT ` + statsColumns + `
		FROM user_card_stats
		WHERE user_id = $1 AND card_id = $2
		FOR UPDATE
	`
	return s.queryRow(ctx, query, userID, cardID)
}

func (s *PostgresUserCardStatsStore) queryRow(
	ctx context.Context,
	query string,
	userID, cardID uuid.UUID,
) (*domain.UserCardStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var stats domain.UserCardStats
	var lastReviewed sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID, cardID).Scan(
		&stats.UserID,
		&stats.CardID,
		&stats.Interval,
		&stats.EaseFactor,
		&stats.ConsecutiveCorrect,
		&lastReviewed,
		&stats.NextReviewAt,
		&stats.ReviewCount,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("stats not found",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID.String()))
			return nil, store.ErrUserCardStatsNotFound
		}
		log.Error("failed to get stats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	if lastReviewed.Valid {
		stats.LastReviewedAt = lastReviewed.Time
	}

	return &stats, nil
}

// Update implements store.UserCardStatsStore.Update
// Returns store.ErrUserCardStatsNotFound if the entry does not exist.
func (s *PostgresUserCardStatsStore) Update(ctx context.Context, stats *domain.UserCardStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := stats.Validate(); err != nil {
		log.Warn("stats validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", stats.CardID.String()))
		return err
	}

	stats.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE user_card_stats
		SET interval = $1, ease_factor = $2, consecutive_correct = $3,
			last_reviewed_at = $4, next_review_at = $5, review_count = $6,
			updated_at = $7
		WHERE user_id = $8 AND card_id = $9
	`

	var lastReviewed sql.NullTime
	if !stats.LastReviewedAt.IsZero() {
		lastReviewed = sql.NullTime{Time: stats.LastReviewedAt, Valid: true}
	}

	result, err := s.db.ExecContext(
		ctx,
		query,
		stats.Interval,
		stats.EaseFactor,
		stats.ConsecutiveCorrect,
		lastReviewed,
		stats.NextReviewAt,
		stats.ReviewCount,
		stats.UpdatedAt,
		stats.UserID,
		stats.CardID,
	)
	if err != nil {
		log.Error("failed to update stats",
			slog.String("error", err.Error()),
			slog.String("user_id", stats.UserID.String()),
			slog.String("card_id", stats.CardID.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrUserCardStatsNotFound); err != nil {
		return err
	}

	log.Debug("stats updated successfully",
		slog.String("user_id", stats.UserID.String()),
		slog.String("card_id", stats.CardID.String()))
	return nil
}

// Delete implements store.UserCardStatsStore.Delete
// Returns store.ErrUserCardStatsNotFound if the entry does not exist.
func (s *PostgresUserCardStatsStore) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM user_card_stats WHERE user_id = $1 AND card_id = $2`

	result, err := s.db.ExecContext(ctx, query, userID, cardID)
	if err != nil {
		log.Error("failed to delete stats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrUserCardStatsNotFound); err != nil {
		return err
	}

	log.Info("stats deleted successfully",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))
	return nil
}
