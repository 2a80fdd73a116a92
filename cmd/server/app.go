package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"aralin/internal/config"
	"aralin/internal/domain/srs"
	"aralin/internal/events"
	"aralin/internal/generation"
	"aralin/internal/platform/gemini"
	"aralin/internal/platform/postgres"
	"aralin/internal/service"
	"aralin/internal/service/auth"
	"aralin/internal/service/card_review"
	"aralin/internal/store"
	"aralin/internal/task"
)

// application holds the shared application dependencies so wiring happens in
// one place and cleanup can release everything on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore          store.UserStore
	verbStore          store.VerbStore
	cardStore          store.CardStore
	userCardStatsStore store.UserCardStatsStore
	taskStore          *postgres.PostgresTaskStore

	// Services
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	generator         generation.Generator
	srsService        srs.Service
	verbService       service.VerbService
	cardService       service.CardService
	cardReviewService card_review.CardReviewService

	// Event system and background processing
	eventEmitter events.EventEmitter
	taskRunner   *task.TaskRunner
}

// newApplication wires all dependencies together. The database connection is
// established by the caller; everything else is built here. On success the
// task runner is already started and owns recovery of interrupted tasks.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger, bcryptCost)
	app.verbStore = postgres.NewPostgresVerbStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.userCardStatsStore = postgres.NewPostgresUserCardStatsStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// The generator is optional: without an API key, cards carry only the
	// conjugated forms and no example sentences.
	if cfg.LLM.Enabled() {
		app.generator, err = gemini.NewGeminiGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize example generator: %w", err)
		}
		logger.Info("example sentence generator initialized", "model", cfg.LLM.ModelName)
	} else {
		logger.Info("example sentence generation disabled, no API key configured")
	}

	app.srsService = srs.NewService()
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	verbRepo := service.NewVerbRepositoryAdapter(app.verbStore, db)
	cardRepo := service.NewCardRepositoryAdapter(app.cardStore, db)
	statsRepo := service.NewStatsRepositoryAdapter(app.userCardStatsStore)

	app.verbService, err = service.NewVerbService(verbRepo, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create verb service: %w", err)
	}

	app.cardService, err = service.NewCardService(cardRepo, statsRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	reviewCardRepo := card_review.NewCardRepositoryAdapter(app.cardStore, db)
	reviewStatsRepo := card_review.NewUserCardStatsRepositoryAdapter(app.userCardStatsStore)
	app.cardReviewService = card_review.NewCardReviewService(
		reviewCardRepo,
		reviewStatsRepo,
		app.srsService,
		logger,
	)

	taskFactory := task.NewCardGenerationTaskFactory(
		app.verbService,
		app.generator,
		app.cardService,
		logger,
	)

	// Tasks loaded from the database carry only their type and payload; the
	// hydrator rebuilds the execution logic before Recover requeues them.
	app.taskStore.SetHydrator(hydrateTask(taskFactory))

	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to set up task runner: %w", err)
	}

	taskFactoryHandler := task.NewTaskFactoryEventHandler(taskFactory, app.taskRunner, logger)
	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(taskFactoryHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	logger.Info("application initialized")
	return app, nil
}

// hydrateTask builds the TaskHydrator for recovered card generation tasks.
func hydrateTask(factory *task.CardGenerationTaskFactory) postgres.TaskHydrator {
	return func(taskType string, payload []byte) (func(ctx context.Context) error, error) {
		if taskType != task.TaskTypeCardGeneration {
			return nil, fmt.Errorf("unknown task type: %q", taskType)
		}

		var p struct {
			VerbID string `json:"verb_id"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task payload: %w", err)
		}

		verbID, err := uuid.Parse(p.VerbID)
		if err != nil {
			return nil, fmt.Errorf("invalid verb ID in task payload: %w", err)
		}

		t, err := factory.CreateTask(verbID)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild task: %w", err)
		}
		return t.Execute, nil
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setupTaskRunner creates and starts the background task processor. Start
// also recovers tasks that were pending or processing when the previous
// process stopped.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	runnerConfig := task.DefaultTaskRunnerConfig()
	if app.config.Task.WorkerCount > 0 {
		runnerConfig.WorkerCount = app.config.Task.WorkerCount
	}
	if app.config.Task.QueueSize > 0 {
		runnerConfig.QueueSize = app.config.Task.QueueSize
	}
	if app.config.Task.StuckTaskAgeMinutes > 0 {
		runnerConfig.StuckTaskAge = time.Duration(app.config.Task.StuckTaskAgeMinutes) * time.Minute
	}

	taskRunner := task.NewTaskRunner(app.taskStore, runnerConfig, app.logger)
	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}
	return taskRunner, nil
}

// cleanup releases application resources in reverse dependency order.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
