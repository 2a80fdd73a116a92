package task

import (
	"log/slog"

	"github.com/google/uuid"
)

// CardGenerationTaskFactory creates CardGenerationTask instances
type CardGenerationTaskFactory struct {
	verbService VerbService
	generator   ExampleGenerator
	cardService CardService
	logger      *slog.Logger
}

// NewCardGenerationTaskFactory creates a new factory for CardGenerationTasks.
// The generator may be nil when example enrichment is disabled.
func NewCardGenerationTaskFactory(
	verbService VerbService,
	generator ExampleGenerator,
	cardService CardService,
	logger *slog.Logger,
) *CardGenerationTaskFactory {
	return &CardGenerationTaskFactory{
		verbService: verbService,
		generator:   generator,
		cardService: cardService,
		logger:      logger.With("component", "card_generation_task_factory"),
	}
}

// CreateTask creates a new CardGenerationTask for the specified verb
func (f *CardGenerationTaskFactory) CreateTask(verbID uuid.UUID) (Task, error) {
	return NewCardGenerationTask(
		verbID,
		f.verbService,
		f.generator,
		f.cardService,
		f.logger,
	)
}
