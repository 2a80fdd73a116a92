package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/platform/logger"
	"aralin/internal/store"
)

// CardServiceError is a custom error type for card service errors.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ErrCardNotFound indicates that the card does not exist.
var ErrCardNotFound = errors.New("card not found")

// CardRepository defines the card data access the service layer needs.
type CardRepository interface {
	// CreateMultiple saves multiple cards to the store
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Delete removes a card from the store by its ID
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) CardRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// StatsRepository defines the stats data access the service layer needs.
type StatsRepository interface {
	// Create saves a new UserCardStats to the store
	Create(ctx context.Context, stats *domain.UserCardStats) error

	// Get retrieves user card statistics by user ID and card ID
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error)

	// Update modifies an existing statistics entry
	Update(ctx context.Context, stats *domain.UserCardStats) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) StatsRepository
}

// CardService provides card-related operations.
type CardService interface {
	// CreateCards creates multiple cards and their associated stats in a
	// single transaction.
	CreateCards(ctx context.Context, cards []*domain.Card) error

	// GetCard retrieves a card by its ID.
	GetCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, error)

	// DeleteCard removes a card owned by the given user. Returns
	// ErrCardNotFound if the card does not exist and ErrNotOwned if it
	// belongs to someone else.
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

// cardServiceImpl implements the CardService interface.
type cardServiceImpl struct {
	cardRepo  CardRepository
	statsRepo StatsRepository
	logger    *slog.Logger
	runTx     func(ctx context.Context, db *sql.DB, fn store.TxFn) error // Injectable for testing
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	cardRepo CardRepository,
	statsRepo StatsRepository,
	logger *slog.Logger,
) (CardService, error) {
	if cardRepo == nil {
		return nil, NewCardServiceError("create_service", "cardRepo cannot be nil", nil)
	}
	if statsRepo == nil {
		return nil, NewCardServiceError("create_service", "statsRepo cannot be nil", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardRepo:  cardRepo,
		statsRepo: statsRepo,
		logger:    logger.With(slog.String("component", "card_service")),
		runTx:     store.RunInTransaction,
	}, nil
}

// CreateCards implements CardService.CreateCards.
// Cards and their initial stats are written atomically: a failure on any
// stats row rolls back every card.
func (s *cardServiceImpl) CreateCards(ctx context.Context, cards []*domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		log.Debug("no cards to create")
		return nil
	}

	log.Debug("creating cards and stats in transaction",
		slog.Int("card_count", len(cards)))

	return s.runTx(ctx, s.cardRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txCardRepo := s.cardRepo.WithTx(tx)
		txStatsRepo := s.statsRepo.WithTx(tx)

		if err := txCardRepo.CreateMultiple(ctx, cards); err != nil {
			log.Error("failed to create cards in transaction",
				slog.String("error", err.Error()))
			return NewCardServiceError("create_cards", "failed to save cards", err)
		}

		for _, card := range cards {
			stats, err := domain.NewUserCardStats(card.UserID, card.ID)
			if err != nil {
				log.Error("failed to create user card stats object",
					slog.String("error", err.Error()),
					slog.String("card_id", card.ID.String()))
				return NewCardServiceError("create_cards", "failed to create stats object", err)
			}

			if err := txStatsRepo.Create(ctx, stats); err != nil {
				log.Error("failed to save user card stats in transaction",
					slog.String("error", err.Error()),
					slog.String("card_id", card.ID.String()))
				return NewCardServiceError("create_cards", "failed to save stats", err)
			}
		}

		log.Info("created cards and stats in transaction",
			slog.Int("card_count", len(cards)))
		return nil
	})
}

// GetCard implements CardService.GetCard.
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCardNotFound
		}
		log.Error("failed to retrieve card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewCardServiceError("get_card", "failed to retrieve card", err)
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrCardNotFound
		}
		return NewCardServiceError("delete_card", "failed to retrieve card", err)
	}

	if card.UserID != userID {
		log.Warn("user attempted to delete a card they do not own",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return ErrNotOwned
	}

	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		if store.IsNotFoundError(err) {
			return ErrCardNotFound
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return NewCardServiceError("delete_card", "failed to delete card", err)
	}

	log.Info("card deleted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))
	return nil
}
