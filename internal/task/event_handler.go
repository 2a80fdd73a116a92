package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"aralin/internal/events"
)

// TaskFactory creates tasks for a verb.
type TaskFactory interface {
	CreateTask(verbID uuid.UUID) (Task, error)
}

// TaskSubmitter accepts tasks for background execution.
type TaskSubmitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler implements the events.EventHandler interface,
// turning card generation request events into tasks and handing them to the
// runner.
type TaskFactoryEventHandler struct {
	taskFactory TaskFactory
	taskRunner  TaskSubmitter
	logger      *slog.Logger
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)

// NewTaskFactoryEventHandler creates a new event handler that uses the given
// task factory to create tasks and submits them to the provided runner.
func NewTaskFactoryEventHandler(
	taskFactory TaskFactory,
	taskRunner TaskSubmitter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		taskFactory: taskFactory,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent processes card generation events: it extracts the verb ID from
// the payload, creates the task, and submits it for execution. Events of any
// other type are ignored.
func (h *TaskFactoryEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != TaskTypeCardGeneration {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload struct {
		VerbID string `json:"verb_id"`
	}
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	verbID, err := uuid.Parse(payload.VerbID)
	if err != nil {
		h.logger.Error("invalid verb ID",
			"error", err,
			"verb_id", payload.VerbID,
			"event_id", event.ID)
		return fmt.Errorf("invalid verb ID: %w", err)
	}

	t, err := h.taskFactory.CreateTask(verbID)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"verb_id", verbID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.taskRunner.Submit(ctx, t); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", t.ID(),
			"verb_id", verbID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted",
		"task_id", t.ID(),
		"verb_id", verbID,
		"event_id", event.ID)
	return nil
}
