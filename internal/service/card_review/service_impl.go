package card_review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/domain/srs"
	"aralin/internal/platform/logger"
	"aralin/internal/store"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	cardRepo   CardRepository
	statsRepo  UserCardStatsRepository
	srsService srs.Service
	logger     *slog.Logger
	runTx      func(ctx context.Context, db *sql.DB, fn store.TxFn) error // Injectable for testing
}

// NewCardReviewService creates a new CardReviewService implementation.
func NewCardReviewService(
	cardRepo CardRepository,
	statsRepo UserCardStatsRepository,
	srsService srs.Service,
	logger *slog.Logger,
) CardReviewService {
	if cardRepo == nil {
		panic("cardRepo cannot be nil")
	}
	if statsRepo == nil {
		panic("statsRepo cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardReviewServiceImpl{
		cardRepo:   cardRepo,
		statsRepo:  statsRepo,
		srsService: srsService,
		logger:     logger.With(slog.String("component", "card_review_service")),
		runTx:      store.RunInTransaction,
	}
}

// GetNextCard implements CardReviewService.GetNextCard.
func (s *cardReviewServiceImpl) GetNextCard(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving next review card", slog.String("user_id", userID.String()))

	card, err := s.cardRepo.GetNextReviewCard(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			log.Debug("no cards due for review", slog.String("user_id", userID.String()))
			return nil, ErrNoCardsDue
		}

		log.Error("failed to get next review card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewGetNextCardError("store lookup failed", err)
	}

	return card, nil
}

// SubmitAnswer implements CardReviewService.SubmitAnswer.
func (s *cardReviewServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	answer ReviewAnswer,
) (*domain.UserCardStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review answer",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("outcome", string(answer.Outcome)))

	if !answer.Outcome.IsValid() {
		log.Warn("invalid review outcome",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()),
			slog.String("outcome", string(answer.Outcome)))
		return nil, ErrInvalidAnswer
	}

	var updatedStats *domain.UserCardStats
	err := s.withStatsLocked(ctx, userID, cardID,
		func(ctx context.Context, statsRepo UserCardStatsRepository, stats *domain.UserCardStats, isNew bool) error {
			newStats, err := s.srsService.CalculateNextReview(stats, answer.Outcome, time.Now().UTC())
			if err != nil {
				log.Error("failed to calculate next review",
					slog.String("error", err.Error()),
					slog.String("user_id", userID.String()),
					slog.String("card_id", cardID.String()))
				return fmt.Errorf("failed to calculate next review: %w", err)
			}

			if isNew {
				if err := statsRepo.Create(ctx, newStats); err != nil {
					return fmt.Errorf("failed to create stats: %w", err)
				}
			} else {
				if err := statsRepo.Update(ctx, newStats); err != nil {
					return fmt.Errorf("failed to update stats: %w", err)
				}
			}

			updatedStats = newStats
			return nil
		})

	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrCardNotOwned) {
			return nil, err
		}

		log.Error("failed to submit answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, NewSubmitAnswerError("transaction failed", err)
	}

	log.Debug("review answer processed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("outcome", string(answer.Outcome)),
		slog.Float64("ease_factor", updatedStats.EaseFactor),
		slog.Int("interval", updatedStats.Interval),
		slog.Time("next_review_at", updatedStats.NextReviewAt))

	return updatedStats, nil
}

// PostponeCard implements CardReviewService.PostponeCard.
func (s *cardReviewServiceImpl) PostponeCard(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	days int,
) (*domain.UserCardStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("postponing card review",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("days", days))

	var updatedStats *domain.UserCardStats
	err := s.withStatsLocked(ctx, userID, cardID,
		func(ctx context.Context, statsRepo UserCardStatsRepository, stats *domain.UserCardStats, isNew bool) error {
			newStats, err := s.srsService.PostponeReview(stats, days, time.Now().UTC())
			if err != nil {
				return err
			}

			if isNew {
				if err := statsRepo.Create(ctx, newStats); err != nil {
					return fmt.Errorf("failed to create stats: %w", err)
				}
			} else {
				if err := statsRepo.Update(ctx, newStats); err != nil {
					return fmt.Errorf("failed to update stats: %w", err)
				}
			}

			updatedStats = newStats
			return nil
		})

	if err != nil {
		if errors.Is(err, ErrCardNotFound) ||
			errors.Is(err, ErrCardNotOwned) ||
			errors.Is(err, srs.ErrInvalidDays) {
			return nil, err
		}

		log.Error("failed to postpone card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, NewPostponeCardError("transaction failed", err)
	}

	return updatedStats, nil
}

// withStatsLocked runs fn inside a transaction after verifying the card
// exists and belongs to the user, handing it the locked stats row. Cards
// that have never been reviewed get fresh default stats with isNew set.
func (s *cardReviewServiceImpl) withStatsLocked(
	ctx context.Context,
	userID, cardID uuid.UUID,
	fn func(ctx context.Context, statsRepo UserCardStatsRepository, stats *domain.UserCardStats, isNew bool) error,
) error {
	return s.runTx(ctx, s.cardRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		cardRepo := s.cardRepo.WithTx(tx)
		statsRepo := s.statsRepo.WithTx(tx)

		card, err := cardRepo.GetByID(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		if card.UserID != userID {
			return ErrCardNotOwned
		}

		isNew := false
		stats, err := statsRepo.GetForUpdate(ctx, userID, cardID)
		if err != nil {
			if !errors.Is(err, store.ErrUserCardStatsNotFound) {
				return fmt.Errorf("failed to get stats: %w", err)
			}
			stats, err = domain.NewUserCardStats(userID, cardID)
			if err != nil {
				return fmt.Errorf("failed to create new stats: %w", err)
			}
			isNew = true
		}

		return fn(ctx, statsRepo, stats, isNew)
	})
}
