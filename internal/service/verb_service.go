package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/events"
	"aralin/internal/store"
	"aralin/internal/task"
)

// VerbRepository defines the verb data access the service layer needs.
type VerbRepository interface {
	// Create saves a new verb to the store
	Create(ctx context.Context, verb *domain.Verb) error

	// GetByID retrieves a verb by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Verb, error)

	// Update saves changes to an existing verb
	Update(ctx context.Context, verb *domain.Verb) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) VerbRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// VerbService provides verb-related operations.
type VerbService interface {
	// CreateVerbAndEnqueueTask creates a new verb in pending status and
	// emits an event requesting drill-card generation for it.
	CreateVerbAndEnqueueTask(
		ctx context.Context,
		userID uuid.UUID,
		root, gloss string,
	) (*domain.Verb, error)

	// UpdateVerbStatus transitions a verb's card-generation status.
	UpdateVerbStatus(ctx context.Context, verbID uuid.UUID, status domain.VerbStatus) error

	// GetVerb retrieves a verb by its ID.
	GetVerb(ctx context.Context, verbID uuid.UUID) (*domain.Verb, error)
}

// Common sentinel errors for VerbService
var (
	// ErrVerbNotFound indicates that the verb does not exist.
	ErrVerbNotFound = errors.New("verb not found")

	// ErrDuplicateVerb indicates the user already has a verb with this root.
	ErrDuplicateVerb = errors.New("verb with this root already exists")
)

// VerbServiceError wraps errors from the verb service with context.
type VerbServiceError struct {
	Operation string // e.g. "create_verb", "update_verb_status"
	Message   string
	Err       error
}

// Error implements the error interface for VerbServiceError.
func (e *VerbServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verb service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("verb service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *VerbServiceError) Unwrap() error {
	return e.Err
}

// NewVerbServiceError wraps err with operation context. Known sentinel
// errors pass through unwrapped so callers can branch on them.
func NewVerbServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrVerbNotFound) || errors.Is(err, ErrDuplicateVerb) {
		return err
	}
	if errors.Is(err, store.ErrVerbNotFound) {
		return ErrVerbNotFound
	}
	if errors.Is(err, store.ErrVerbExists) {
		return ErrDuplicateVerb
	}

	return &VerbServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// verbServiceImpl implements the VerbService interface.
type verbServiceImpl struct {
	verbRepo     VerbRepository
	eventEmitter events.EventEmitter
	logger       *slog.Logger
	runTx        func(ctx context.Context, db *sql.DB, fn store.TxFn) error // Injectable for testing
}

// NewVerbService creates a new VerbService.
// It returns an error if any of the required dependencies are nil.
func NewVerbService(
	verbRepo VerbRepository,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (VerbService, error) {
	if verbRepo == nil {
		return nil, &VerbServiceError{
			Operation: "create_service",
			Message:   "verbRepo cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &VerbServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &verbServiceImpl{
		verbRepo:     verbRepo,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "verb_service"),
		runTx:        store.RunInTransaction,
	}, nil
}

// CreateVerbAndEnqueueTask implements VerbService.CreateVerbAndEnqueueTask.
// The verb is persisted in its own transaction before the generation event
// is emitted, so a failed emit leaves a pending verb that recovery can pick
// up rather than a dangling event.
func (s *verbServiceImpl) CreateVerbAndEnqueueTask(
	ctx context.Context,
	userID uuid.UUID,
	root, gloss string,
) (*domain.Verb, error) {
	verb, err := domain.NewVerb(userID, root, gloss)
	if err != nil {
		s.logger.Warn("failed to create verb object",
			"error", err,
			"user_id", userID)
		return nil, NewVerbServiceError("create_verb", "invalid verb data", err)
	}

	err = s.runTx(ctx, s.verbRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		if err := s.verbRepo.WithTx(tx).Create(ctx, verb); err != nil {
			s.logger.Error("failed to create verb in transaction",
				"error", err,
				"user_id", userID,
				"verb_id", verb.ID)
			return NewVerbServiceError("create_verb", "failed to save verb", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("verb created with pending status",
		"verb_id", verb.ID,
		"user_id", userID,
		"root", verb.Root)

	payload := struct {
		VerbID uuid.UUID `json:"verb_id"`
	}{VerbID: verb.ID}

	event, err := events.NewTaskRequestEvent(task.TaskTypeCardGeneration, payload)
	if err != nil {
		s.logger.Error("failed to create card generation event",
			"error", err,
			"verb_id", verb.ID)
		return nil, NewVerbServiceError("create_verb", "failed to create event", err)
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit card generation event",
			"error", err,
			"verb_id", verb.ID,
			"event_id", event.ID)
		return nil, NewVerbServiceError("create_verb", "failed to emit event", err)
	}

	s.logger.Info("card generation event emitted",
		"verb_id", verb.ID,
		"event_id", event.ID)

	return verb, nil
}

// GetVerb implements VerbService.GetVerb.
func (s *verbServiceImpl) GetVerb(ctx context.Context, verbID uuid.UUID) (*domain.Verb, error) {
	verb, err := s.verbRepo.GetByID(ctx, verbID)
	if err != nil {
		if errors.Is(err, store.ErrVerbNotFound) {
			return nil, ErrVerbNotFound
		}
		s.logger.Error("failed to retrieve verb",
			"error", err,
			"verb_id", verbID)
		return nil, NewVerbServiceError("get_verb", "failed to retrieve verb", err)
	}

	return verb, nil
}

// UpdateVerbStatus implements VerbService.UpdateVerbStatus. The read and
// write happen in one transaction so concurrent status transitions cannot
// interleave.
func (s *verbServiceImpl) UpdateVerbStatus(
	ctx context.Context,
	verbID uuid.UUID,
	status domain.VerbStatus,
) error {
	return s.runTx(ctx, s.verbRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.verbRepo.WithTx(tx)

		verb, err := txRepo.GetByID(ctx, verbID)
		if err != nil {
			if errors.Is(err, store.ErrVerbNotFound) {
				return ErrVerbNotFound
			}
			return NewVerbServiceError("update_verb_status", "failed to retrieve verb", err)
		}

		if err := verb.MarkStatus(status); err != nil {
			return NewVerbServiceError(
				"update_verb_status",
				fmt.Sprintf("failed to transition verb to %s", status),
				err,
			)
		}

		if err := txRepo.Update(ctx, verb); err != nil {
			return NewVerbServiceError(
				"update_verb_status",
				fmt.Sprintf("failed to save verb with status %s", status),
				err,
			)
		}

		s.logger.Info("verb status updated",
			"verb_id", verbID,
			"status", status)
		return nil
	})
}
