package card_review

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aralin/internal/domain"
	"aralin/internal/domain/srs"
	"aralin/internal/store"
)

// mockCardRepo is an in-memory CardRepository for unit tests.
type mockCardRepo struct {
	cards    map[uuid.UUID]*domain.Card
	nextCard *domain.Card
	nextErr  error
}

func newMockCardRepo() *mockCardRepo {
	return &mockCardRepo{cards: make(map[uuid.UUID]*domain.Card)}
}

func (m *mockCardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := m.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (m *mockCardRepo) GetNextReviewCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error) {
	if m.nextErr != nil {
		return nil, m.nextErr
	}
	return m.nextCard, nil
}

func (m *mockCardRepo) WithTx(tx *sql.Tx) CardRepository { return m }
func (m *mockCardRepo) DB() *sql.DB                      { return nil }

// mockStatsRepo is an in-memory UserCardStatsRepository for unit tests.
type mockStatsRepo struct {
	stats   map[uuid.UUID]*domain.UserCardStats // keyed by card ID
	created []*domain.UserCardStats
	updated []*domain.UserCardStats
}

func newMockStatsRepo() *mockStatsRepo {
	return &mockStatsRepo{stats: make(map[uuid.UUID]*domain.UserCardStats)}
}

func (m *mockStatsRepo) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error) {
	return m.GetForUpdate(ctx, userID, cardID)
}

func (m *mockStatsRepo) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.UserCardStats, error) {
	stats, ok := m.stats[cardID]
	if !ok {
		return nil, store.ErrUserCardStatsNotFound
	}
	return stats, nil
}

func (m *mockStatsRepo) Create(ctx context.Context, stats *domain.UserCardStats) error {
	m.created = append(m.created, stats)
	m.stats[stats.CardID] = stats
	return nil
}

func (m *mockStatsRepo) Update(ctx context.Context, stats *domain.UserCardStats) error {
	m.updated = append(m.updated, stats)
	m.stats[stats.CardID] = stats
	return nil
}

func (m *mockStatsRepo) WithTx(tx *sql.Tx) UserCardStatsRepository { return m }

func newTestService(cardRepo CardRepository, statsRepo UserCardStatsRepository) *cardReviewServiceImpl {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewCardReviewService(cardRepo, statsRepo, srs.NewService(), log).(*cardReviewServiceImpl)
	// Bypass real transactions in unit tests.
	svc.runTx = func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
		return fn(ctx, nil)
	}
	return svc
}

func testCard(userID uuid.UUID) *domain.Card {
	return &domain.Card{
		ID:        uuid.New(),
		UserID:    userID,
		VerbID:    uuid.New(),
		Content:   []byte(`{"front":"luto (mag, completed)","back":"nagluto"}`),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestGetNextCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardRepo := newMockCardRepo()
	card := testCard(userID)
	cardRepo.nextCard = card

	svc := newTestService(cardRepo, newMockStatsRepo())

	got, err := svc.GetNextCard(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)
}

func TestGetNextCardNoneDue(t *testing.T) {
	t.Parallel()

	cardRepo := newMockCardRepo()
	cardRepo.nextErr = store.ErrCardNotFound

	svc := newTestService(cardRepo, newMockStatsRepo())

	_, err := svc.GetNextCard(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoCardsDue)
}

func TestGetNextCardStoreFailure(t *testing.T) {
	t.Parallel()

	cardRepo := newMockCardRepo()
	cardRepo.nextErr = errors.New("connection lost")

	svc := newTestService(cardRepo, newMockStatsRepo())

	_, err := svc.GetNextCard(context.Background(), uuid.New())
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "get_next_card", svcErr.Operation)
}

func TestSubmitAnswerInvalidOutcome(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockCardRepo(), newMockStatsRepo())

	for _, outcome := range []domain.ReviewOutcome{"", "invalid", "GOOD", "maybe"} {
		_, err := svc.SubmitAnswer(
			context.Background(),
			uuid.New(),
			uuid.New(),
			ReviewAnswer{Outcome: outcome},
		)
		assert.ErrorIs(t, err, ErrInvalidAnswer, "outcome %q should be rejected", outcome)
	}
}

func TestSubmitAnswerCardNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockCardRepo(), newMockStatsRepo())

	_, err := svc.SubmitAnswer(
		context.Background(),
		uuid.New(),
		uuid.New(),
		ReviewAnswer{Outcome: domain.ReviewOutcomeGood},
	)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestSubmitAnswerCardNotOwned(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	cardRepo := newMockCardRepo()
	card := testCard(owner)
	cardRepo.cards[card.ID] = card

	svc := newTestService(cardRepo, newMockStatsRepo())

	_, err := svc.SubmitAnswer(
		context.Background(),
		uuid.New(), // different user
		card.ID,
		ReviewAnswer{Outcome: domain.ReviewOutcomeGood},
	)
	assert.ErrorIs(t, err, ErrCardNotOwned)
}

func TestSubmitAnswerFirstReviewCreatesStats(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardRepo := newMockCardRepo()
	card := testCard(userID)
	cardRepo.cards[card.ID] = card
	statsRepo := newMockStatsRepo()

	svc := newTestService(cardRepo, statsRepo)

	stats, err := svc.SubmitAnswer(
		context.Background(),
		userID,
		card.ID,
		ReviewAnswer{Outcome: domain.ReviewOutcomeGood},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ReviewCount)
	assert.Equal(t, 1, stats.ConsecutiveCorrect)
	assert.True(t, stats.NextReviewAt.After(time.Now().UTC()))

	// Never-reviewed cards get a Create, not an Update.
	assert.Len(t, statsRepo.created, 1)
	assert.Empty(t, statsRepo.updated)
}

func TestSubmitAnswerSubsequentReviewUpdatesStats(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardRepo := newMockCardRepo()
	card := testCard(userID)
	cardRepo.cards[card.ID] = card

	statsRepo := newMockStatsRepo()
	existing, err := domain.NewUserCardStats(userID, card.ID)
	require.NoError(t, err)
	existing.LastReviewedAt = time.Now().UTC().Add(-24 * time.Hour)
	existing.Interval = 1
	existing.ReviewCount = 1
	existing.ConsecutiveCorrect = 1
	statsRepo.stats[card.ID] = existing

	svc := newTestService(cardRepo, statsRepo)

	stats, err := svc.SubmitAnswer(
		context.Background(),
		userID,
		card.ID,
		ReviewAnswer{Outcome: domain.ReviewOutcomeGood},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ReviewCount)
	assert.Empty(t, statsRepo.created)
	assert.Len(t, statsRepo.updated, 1)

	// The stored stats object was not mutated in place.
	assert.Equal(t, 1, existing.ReviewCount)
}

func TestPostponeCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardRepo := newMockCardRepo()
	card := testCard(userID)
	cardRepo.cards[card.ID] = card

	statsRepo := newMockStatsRepo()
	existing, err := domain.NewUserCardStats(userID, card.ID)
	require.NoError(t, err)
	existing.LastReviewedAt = time.Now().UTC()
	due := existing.NextReviewAt
	statsRepo.stats[card.ID] = existing

	svc := newTestService(cardRepo, statsRepo)

	stats, err := svc.PostponeCard(context.Background(), userID, card.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, due.AddDate(0, 0, 3), stats.NextReviewAt)
}

func TestPostponeCardInvalidDays(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardRepo := newMockCardRepo()
	card := testCard(userID)
	cardRepo.cards[card.ID] = card

	statsRepo := newMockStatsRepo()
	existing, err := domain.NewUserCardStats(userID, card.ID)
	require.NoError(t, err)
	statsRepo.stats[card.ID] = existing

	svc := newTestService(cardRepo, statsRepo)

	_, err = svc.PostponeCard(context.Background(), userID, card.ID, 0)
	assert.ErrorIs(t, err, srs.ErrInvalidDays)
}

func TestPostponeCardNotOwned(t *testing.T) {
	t.Parallel()

	cardRepo := newMockCardRepo()
	card := testCard(uuid.New())
	cardRepo.cards[card.ID] = card

	svc := newTestService(cardRepo, newMockStatsRepo())

	_, err := svc.PostponeCard(context.Background(), uuid.New(), card.ID, 1)
	assert.ErrorIs(t, err, ErrCardNotOwned)
}
