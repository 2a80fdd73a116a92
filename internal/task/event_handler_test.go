package task

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aralin/internal/events"
)

// stubTask is a minimal Task for handler tests.
type stubTask struct {
	id uuid.UUID
}

func (t *stubTask) ID() uuid.UUID                    { return t.id }
func (t *stubTask) Type() string                     { return TaskTypeCardGeneration }
func (t *stubTask) Payload() []byte                  { return nil }
func (t *stubTask) Status() TaskStatus               { return TaskStatusPending }
func (t *stubTask) Execute(ctx context.Context) error { return nil }

// mockTaskFactory records CreateTask calls.
type mockTaskFactory struct {
	createdFor []uuid.UUID
	task       Task
	err        error
}

func (m *mockTaskFactory) CreateTask(verbID uuid.UUID) (Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.createdFor = append(m.createdFor, verbID)
	return m.task, nil
}

// mockSubmitter records submitted tasks.
type mockSubmitter struct {
	submitted []Task
	err       error
}

func (m *mockSubmitter) Submit(ctx context.Context, task Task) error {
	if m.err != nil {
		return m.err
	}
	m.submitted = append(m.submitted, task)
	return nil
}

func newCardGenerationEvent(t *testing.T, verbID uuid.UUID) *events.TaskRequestEvent {
	t.Helper()

	event, err := events.NewTaskRequestEvent(TaskTypeCardGeneration, map[string]string{
		"verb_id": verbID.String(),
	})
	require.NoError(t, err)
	return event
}

func TestTaskFactoryEventHandler_HandleEvent(t *testing.T) {
	t.Parallel()

	t.Run("creates and submits a task", func(t *testing.T) {
		t.Parallel()

		verbID := uuid.New()
		factory := &mockTaskFactory{task: &stubTask{id: uuid.New()}}
		submitter := &mockSubmitter{}
		handler := NewTaskFactoryEventHandler(factory, submitter, slog.Default())

		err := handler.HandleEvent(context.Background(), newCardGenerationEvent(t, verbID))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{verbID}, factory.createdFor)
		require.Len(t, submitter.submitted, 1)
		assert.Equal(t, factory.task, submitter.submitted[0])
	})

	t.Run("ignores events of other types", func(t *testing.T) {
		t.Parallel()

		factory := &mockTaskFactory{task: &stubTask{id: uuid.New()}}
		submitter := &mockSubmitter{}
		handler := NewTaskFactoryEventHandler(factory, submitter, slog.Default())

		event, err := events.NewTaskRequestEvent("email_digest", map[string]string{"user_id": uuid.New().String()})
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(context.Background(), event))
		assert.Empty(t, factory.createdFor)
		assert.Empty(t, submitter.submitted)
	})

	t.Run("rejects a malformed payload", func(t *testing.T) {
		t.Parallel()

		handler := NewTaskFactoryEventHandler(&mockTaskFactory{}, &mockSubmitter{}, slog.Default())
		event := &events.TaskRequestEvent{
			ID:      uuid.New(),
			Type:    TaskTypeCardGeneration,
			Payload: json.RawMessage(`not json`),
		}

		err := handler.HandleEvent(context.Background(), event)
		assert.ErrorContains(t, err, "failed to unmarshal payload")
	})

	t.Run("rejects an invalid verb ID", func(t *testing.T) {
		t.Parallel()

		handler := NewTaskFactoryEventHandler(&mockTaskFactory{}, &mockSubmitter{}, slog.Default())
		event, err := events.NewTaskRequestEvent(TaskTypeCardGeneration, map[string]string{
			"verb_id": "not-a-uuid",
		})
		require.NoError(t, err)

		err = handler.HandleEvent(context.Background(), event)
		assert.ErrorContains(t, err, "invalid verb ID")
	})

	t.Run("propagates factory failure", func(t *testing.T) {
		t.Parallel()

		factory := &mockTaskFactory{err: errors.New("bad wiring")}
		handler := NewTaskFactoryEventHandler(factory, &mockSubmitter{}, slog.Default())

		err := handler.HandleEvent(context.Background(), newCardGenerationEvent(t, uuid.New()))
		assert.ErrorContains(t, err, "failed to create task")
	})

	t.Run("propagates submit failure", func(t *testing.T) {
		t.Parallel()

		factory := &mockTaskFactory{task: &stubTask{id: uuid.New()}}
		submitter := &mockSubmitter{err: errors.New("queue is full")}
		handler := NewTaskFactoryEventHandler(factory, submitter, slog.Default())

		err := handler.HandleEvent(context.Background(), newCardGenerationEvent(t, uuid.New()))
		assert.ErrorContains(t, err, "failed to submit task")
	})
}
