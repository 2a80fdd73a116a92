package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"aralin/internal/domain"
	"aralin/internal/domain/conjugation"
)

// Common errors
var (
	ErrNilVerbService = errors.New("verb service cannot be nil")
	ErrNilCardService = errors.New("card service cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrEmptyVerbID    = errors.New("verb ID cannot be empty")
)

// VerbService defines the verb operations the task needs.
type VerbService interface {
	// GetVerb retrieves a verb by its ID
	GetVerb(ctx context.Context, verbID uuid.UUID) (*domain.Verb, error)

	// UpdateVerbStatus updates a verb's card-generation status
	UpdateVerbStatus(ctx context.Context, verbID uuid.UUID, status domain.VerbStatus) error
}

// ExampleGenerator defines the optional LLM enrichment the task uses to put
// a usage sentence on each card.
type ExampleGenerator interface {
	// GenerateExamples produces one usage sentence per conjugated form,
	// keyed by surface form
	GenerateExamples(ctx context.Context, verb *domain.Verb, forms []string) (map[string]string, error)
}

// CardService defines the card operations the task needs.
type CardService interface {
	// CreateCards creates multiple cards and their associated stats in a
	// single transaction
	CreateCards(ctx context.Context, cards []*domain.Card) error
}

// cardGenerationPayload represents the serialized data stored in the task
type cardGenerationPayload struct {
	VerbID uuid.UUID `json:"verb_id"`
}

// CardGenerationTask implements the Task interface for generating a full
// drill deck from a verb: one card per focus/aspect pair, with an optional
// generated usage example on each.
type CardGenerationTask struct {
	id          uuid.UUID
	verbID      uuid.UUID
	verbService VerbService
	generator   ExampleGenerator
	cardService CardService
	logger      *slog.Logger
	status      TaskStatus
}

// NewCardGenerationTask creates a new card generation task. The generator is
// optional: when nil, cards carry no usage examples.
func NewCardGenerationTask(
	verbID uuid.UUID,
	verbService VerbService,
	generator ExampleGenerator,
	cardService CardService,
	logger *slog.Logger,
) (*CardGenerationTask, error) {
	if verbService == nil {
		return nil, ErrNilVerbService
	}
	if cardService == nil {
		return nil, ErrNilCardService
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if verbID == uuid.Nil {
		return nil, ErrEmptyVerbID
	}

	return &CardGenerationTask{
		id:          uuid.New(),
		verbID:      verbID,
		verbService: verbService,
		generator:   generator,
		cardService: cardService,
		logger:      logger.With("task_type", TaskTypeCardGeneration, "verb_id", verbID),
		status:      TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *CardGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *CardGenerationTask) Type() string {
	return TaskTypeCardGeneration
}

// Payload returns the task data as a byte slice
func (t *CardGenerationTask) Payload() []byte {
	data, err := json.Marshal(cardGenerationPayload{VerbID: t.verbID})
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *CardGenerationTask) Status() TaskStatus {
	return t.status
}

// Execute runs the card generation task: it fetches the verb, marks it
// processing, conjugates the full paradigm, optionally enriches the forms
// with usage examples, saves the cards, and marks the verb completed. Any
// failure marks the verb failed.
func (t *CardGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting card generation task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	verb, err := t.verbService.GetVerb(ctx, t.verbID)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to retrieve verb", "error", err)
		return fmt.Errorf("failed to retrieve verb: %w", err)
	}

	if err := t.verbService.UpdateVerbStatus(ctx, t.verbID, domain.VerbStatusProcessing); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to update verb status to processing", "error", err)
		return fmt.Errorf("failed to update verb status to processing: %w", err)
	}

	forms := paradigmForms(verb.Root)
	examples := t.generateExamples(ctx, verb, forms)

	cards, err := buildDrillCards(verb, examples)
	if err != nil {
		_ = t.verbService.UpdateVerbStatus(ctx, t.verbID, domain.VerbStatusFailed)
		t.status = TaskStatusFailed
		t.logger.Error("failed to build drill cards", "error", err)
		return fmt.Errorf("failed to build drill cards: %w", err)
	}

	t.logger.Info("cards generated", "count", len(cards), "examples", len(examples))

	if err := t.cardService.CreateCards(ctx, cards); err != nil {
		_ = t.verbService.UpdateVerbStatus(ctx, t.verbID, domain.VerbStatusFailed)
		t.status = TaskStatusFailed
		t.logger.Error("failed to save generated cards and stats", "error", err)
		return fmt.Errorf("failed to save generated cards and stats: %w", err)
	}

	if err := t.verbService.UpdateVerbStatus(ctx, t.verbID, domain.VerbStatusCompleted); err != nil {
		// The cards are saved; log the error but do not fail the task.
		t.logger.Error("failed to update verb final status, but cards were saved",
			"error", err,
			"cards_generated", len(cards))
	}

	t.status = TaskStatusCompleted
	t.logger.Info("card generation task completed successfully", "cards_generated", len(cards))
	return nil
}

// generateExamples asks the optional generator for usage sentences. Example
// generation is enrichment: any failure is logged and the deck is built
// without examples.
func (t *CardGenerationTask) generateExamples(
	ctx context.Context,
	verb *domain.Verb,
	forms []string,
) map[string]string {
	if t.generator == nil {
		return nil
	}

	examples, err := t.generator.GenerateExamples(ctx, verb, forms)
	if err != nil {
		t.logger.Warn("example generation failed, building deck without examples", "error", err)
		return nil
	}
	return examples
}

// paradigmForms conjugates the root across every focus/aspect pair, in the
// same stable order buildDrillCards uses.
func paradigmForms(root string) []string {
	forms := make([]string, 0, len(conjugation.Focuses())*len(conjugation.Aspects()))
	for _, focus := range conjugation.Focuses() {
		for _, aspect := range conjugation.Aspects() {
			// Conjugate only fails on invalid focus/aspect values, which
			// the enumerations here cannot produce.
			form, _ := conjugation.Conjugate(root, focus, aspect)
			forms = append(forms, form)
		}
	}
	return forms
}

// buildDrillCards produces one card per focus/aspect pair for the verb.
// The front asks for the conjugation, the back carries the surface form, and
// Example holds the generated sentence for that form when one exists.
func buildDrillCards(verb *domain.Verb, examples map[string]string) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0, len(conjugation.Focuses())*len(conjugation.Aspects()))
	for _, focus := range conjugation.Focuses() {
		for _, aspect := range conjugation.Aspects() {
			form, err := conjugation.Conjugate(verb.Root, focus, aspect)
			if err != nil {
				return nil, fmt.Errorf("conjugate %q %s/%s: %w", verb.Root, focus, aspect, err)
			}

			content := domain.CardContent{
				Front:   fmt.Sprintf("Conjugate %q (%s): %s focus, %s aspect", verb.Root, verb.Gloss, focus, aspect),
				Back:    form,
				Root:    verb.Root,
				Focus:   string(focus),
				Aspect:  string(aspect),
				Example: examples[form],
			}

			contentJSON, err := json.Marshal(content)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal card content: %w", err)
			}

			card, err := domain.NewCard(verb.UserID, verb.ID, contentJSON)
			if err != nil {
				return nil, fmt.Errorf("failed to create card: %w", err)
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}
