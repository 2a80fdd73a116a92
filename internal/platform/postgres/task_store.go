package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"aralin/internal/platform/logger"
	"aralin/internal/store"
	"aralin/internal/task"
)

// TaskHydrator rebuilds the execution logic for a task loaded from the
// database. It receives the stored type and payload and returns the function
// to run when the recovered task executes.
type TaskHydrator func(taskType string, payload []byte) (func(ctx context.Context) error, error)

// PostgresTaskStore implements the task.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db       store.DBTX
	logger   *slog.Logger
	hydrator TaskHydrator
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. The database handle must be initialized and managed
// by the caller. If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements task.TaskStore
var _ task.TaskStore = (*PostgresTaskStore)(nil)

// SetHydrator installs the function used to make recovered tasks executable.
// It must be set before Recover runs; tasks loaded without a hydrator fail
// on execution.
func (s *PostgresTaskStore) SetHydrator(hydrator TaskHydrator) {
	s.hydrator = hydrator
}

// WithTx implements task.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) task.TaskStore {
	return &PostgresTaskStore{
		db:       tx,
		logger:   s.logger,
		hydrator: s.hydrator,
	}
}

// SaveTask implements task.TaskStore.SaveTask
func (s *PostgresTaskStore) SaveTask(ctx context.Context, t task.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, query,
		t.ID(),
		t.Type(),
		t.Payload(),
		t.Status(),
		now,
		now,
	)
	if err != nil {
		log.Error("failed to save task",
			slog.String("task_id", t.ID().String()),
			slog.String("task_type", t.Type()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to save task: %w", err)
	}

	return nil
}

// UpdateTaskStatus implements task.TaskStore.UpdateTaskStatus.
// Updating a task that no longer exists is a no-op: the durable record is
// advisory and the work itself has already happened.
func (s *PostgresTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status task.TaskStatus,
	errorMsg string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4`

	result, err := s.db.ExecContext(ctx, query, status, errorMsg, time.Now().UTC(), taskID)
	if err != nil {
		log.Error("failed to update task status",
			slog.String("task_id", taskID.String()),
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update task status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Warn("no task found to update status", slog.String("task_id", taskID.String()))
	}

	return nil
}

// GetPendingTasks implements task.TaskStore.GetPendingTasks
func (s *PostgresTaskStore) GetPendingTasks(ctx context.Context) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusPending, 0)
}

// GetProcessingTasks implements task.TaskStore.GetProcessingTasks
func (s *PostgresTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusProcessing, olderThan)
}

func (s *PostgresTaskStore) getTasksByStatus(
	ctx context.Context,
	status task.TaskStatus,
	olderThan time.Duration,
) ([]task.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, type, payload, status, error_message, created_at, updated_at
		FROM tasks
		WHERE status = $1`
	args := []interface{}{status}

	if olderThan > 0 {
		query += ` AND updated_at < $2`
		args = append(args, time.Now().UTC().Add(-olderThan))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks by status",
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query tasks by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task
	for rows.Next() {
		t := &databaseTask{hydrator: s.hydrator}
		var errorMessage sql.NullString

		if err := rows.Scan(
			&t.id,
			&t.taskType,
			&t.payload,
			&t.status,
			&errorMessage,
			&t.createdAt,
			&t.updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		t.errorMessage = errorMessage.String

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// databaseTask implements the task.Task interface for tasks loaded from the
// database. Its execution logic is rebuilt lazily through the hydrator,
// since only the type and payload survive a restart.
type databaseTask struct {
	id           uuid.UUID
	taskType     string
	payload      []byte
	status       task.TaskStatus
	errorMessage string
	createdAt    time.Time
	updatedAt    time.Time
	hydrator     TaskHydrator
}

func (t *databaseTask) ID() uuid.UUID           { return t.id }
func (t *databaseTask) Type() string            { return t.taskType }
func (t *databaseTask) Payload() []byte         { return t.payload }
func (t *databaseTask) Status() task.TaskStatus { return t.status }

// Execute rebuilds the task's logic from its stored type and payload and
// runs it.
func (t *databaseTask) Execute(ctx context.Context) error {
	if t.hydrator == nil {
		return errors.New("no hydrator configured for recovered task")
	}

	execute, err := t.hydrator(t.taskType, t.payload)
	if err != nil {
		return fmt.Errorf("failed to hydrate recovered task: %w", err)
	}

	return execute(ctx)
}
