package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/platform/logger"
	"aralin/internal/store"
)

// PostgresVerbStore implements the store.VerbStore interface using a
// PostgreSQL database as the storage backend.
type PostgresVerbStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVerbStore creates a new PostgreSQL implementation of the
// VerbStore interface. The database handle must be initialized and managed
// by the caller. If logger is nil, the default logger is used.
func NewPostgresVerbStore(db store.DBTX, logger *slog.Logger) *PostgresVerbStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVerbStore{
		db:     db,
		logger: logger.With(slog.String("component", "verb_store")),
	}
}

// Ensure PostgresVerbStore implements store.VerbStore
var _ store.VerbStore = (*PostgresVerbStore)(nil)

// WithTx implements store.VerbStore.WithTx
func (s *PostgresVerbStore) WithTx(tx *sql.Tx) store.VerbStore {
	return &PostgresVerbStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.VerbStore.Create
// Returns store.ErrVerbExists if the user already has a verb with the same
// root, and store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresVerbStore) Create(ctx context.Context, verb *domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := verb.Validate(); err != nil {
		log.Warn("verb validation failed during create",
			slog.String("error", err.Error()),
			slog.String("verb_id", verb.ID.String()))
		return err
	}

	query := `
		INSERT INTO verbs (id, user_id, root, gloss, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		verb.ID,
		verb.UserID,
		verb.Root,
		verb.Gloss,
		verb.Status,
		verb.CreatedAt,
		verb.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate verb root for user",
				slog.String("verb_id", verb.ID.String()),
				slog.String("user_id", verb.UserID.String()))
			return fmt.Errorf("%w: %q", store.ErrVerbExists, verb.Root)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during verb creation",
				slog.String("error", err.Error()),
				slog.String("verb_id", verb.ID.String()),
				slog.String("user_id", verb.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, verb.UserID)
		}

		log.Error("failed to create verb",
			slog.String("error", err.Error()),
			slog.String("verb_id", verb.ID.String()),
			slog.String("user_id", verb.UserID.String()))
		return err
	}

	log.Info("verb created successfully",
		slog.String("verb_id", verb.ID.String()),
		slog.String("user_id", verb.UserID.String()),
		slog.String("root", verb.Root))
	return nil
}

// GetByID implements store.VerbStore.GetByID
// Returns store.ErrVerbNotFound if the verb does not exist.
func (s *PostgresVerbStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, root, gloss, status, created_at, updated_at
		FROM verbs
		WHERE id = $1
	`

	var verb domain.Verb
	var status string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&verb.ID,
		&verb.UserID,
		&verb.Root,
		&verb.Gloss,
		&status,
		&verb.CreatedAt,
		&verb.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("verb not found", slog.String("verb_id", id.String()))
			return nil, store.ErrVerbNotFound
		}
		log.Error("failed to get verb by ID",
			slog.String("error", err.Error()),
			slog.String("verb_id", id.String()))
		return nil, err
	}

	verb.Status = domain.VerbStatus(status)
	return &verb, nil
}

// Update implements store.VerbStore.Update
// Returns store.ErrVerbNotFound if the verb does not exist.
func (s *PostgresVerbStore) Update(ctx context.Context, verb *domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := verb.Validate(); err != nil {
		log.Warn("verb validation failed during update",
			slog.String("error", err.Error()),
			slog.String("verb_id", verb.ID.String()))
		return err
	}

	query := `
		UPDATE verbs
		SET root = $1, gloss = $2, status = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		verb.Root,
		verb.Gloss,
		verb.Status,
		verb.UpdatedAt,
		verb.ID,
	)
	if err != nil {
		log.Error("failed to update verb",
			slog.String("error", err.Error()),
			slog.String("verb_id", verb.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrVerbNotFound); err != nil {
		return err
	}

	log.Info("verb updated successfully",
		slog.String("verb_id", verb.ID.String()),
		slog.String("status", string(verb.Status)))
	return nil
}

// UpdateStatus implements store.VerbStore.UpdateStatus
// Returns store.ErrVerbNotFound if the verb does not exist.
func (s *PostgresVerbStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.VerbStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	switch status {
	case domain.VerbStatusPending, domain.VerbStatusProcessing,
		domain.VerbStatusCompleted, domain.VerbStatusFailed:
	default:
		return domain.ErrInvalidVerbStatus
	}

	query := `
		UPDATE verbs
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update verb status",
			slog.String("error", err.Error()),
			slog.String("verb_id", id.String()),
			slog.String("status", string(status)))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrVerbNotFound); err != nil {
		log.Debug("verb not found for status update",
			slog.String("verb_id", id.String()))
		return err
	}

	log.Info("verb status updated successfully",
		slog.String("verb_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// FindVerbsByStatus implements store.VerbStore.FindVerbsByStatus
// Returns an empty slice if no verbs match.
func (s *PostgresVerbStore) FindVerbsByStatus(
	ctx context.Context,
	status domain.VerbStatus,
	limit, offset int,
) ([]*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, user_id, root, gloss, status, created_at, updated_at
		FROM verbs
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		log.Error("failed to query verbs by status",
			slog.String("error", err.Error()),
			slog.String("status", string(status)))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	verbs := []*domain.Verb{}
	for rows.Next() {
		var verb domain.Verb
		var statusStr string

		err := rows.Scan(
			&verb.ID,
			&verb.UserID,
			&verb.Root,
			&verb.Gloss,
			&statusStr,
			&verb.CreatedAt,
			&verb.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan verb row",
				slog.String("error", err.Error()))
			return nil, err
		}

		verb.Status = domain.VerbStatus(statusStr)
		verbs = append(verbs, &verb)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found verbs by status",
		slog.String("status", string(status)),
		slog.Int("count", len(verbs)))
	return verbs, nil
}
