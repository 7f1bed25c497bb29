// Package services implements the file-processing orchestrator: trigger
// validation, project and file resolution, categorized dispatch with per-file
// failure isolation, aggregation, and response shaping.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/workflows/executions/apiv1"
	"github.com/google/uuid"

	"github.com/constructpm/bidflow/internal/cache"
	"github.com/constructpm/bidflow/internal/config"
	"github.com/constructpm/bidflow/internal/gcp"
	"github.com/constructpm/bidflow/internal/handlers"
	"github.com/constructpm/bidflow/internal/models"
	"github.com/constructpm/bidflow/internal/store"
)

// Orchestrator drives one trigger message through validation, resolution,
// dispatch and aggregation. Its clients are constructed once per process and
// shared across invocations.
type Orchestrator struct {
	store      store.Store
	dispatcher *Dispatcher
}

// NewOrchestrator wires an orchestrator from explicit collaborators.
func NewOrchestrator(st store.Store, d *Dispatcher) *Orchestrator {
	return &Orchestrator{store: st, dispatcher: d}
}

// NewFromConfig constructs the production orchestrator: Firestore store,
// optional Redis cache, storage preflight, and the category handler registry.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Orchestrator, error) {
	firestoreClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID, cfg.Firestore.Database)
	if err != nil {
		return nil, err
	}
	st := store.NewFirestoreStore(firestoreClient, cfg.Firestore.ProjectsCollection, cfg.Firestore.FilesCollection)

	var ca cache.Cache = cache.Noop{}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis cache: %w", err)
		}
		ca = redisCache
	}

	checker, err := gcp.NewObjectChecker(ctx)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	registry := handlers.NewRegistry()
	registry.Register(models.CategoryQuote, handlers.NewHTTPHandler(cfg.Handlers.QuoteURL, httpClient))
	registry.Register(models.CategorySpec, handlers.NewHTTPHandler(cfg.Handlers.SpecURL, httpClient))
	if cfg.Handlers.DrawingWorkflowID != "" {
		executionsClient, err := executions.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create Workflows Executions client: %w", err)
		}
		registry.Register(models.CategoryDrawing, handlers.NewWorkflowHandler(
			executionsClient, cfg.ProjectID, cfg.Handlers.WorkflowLocation, cfg.Handlers.DrawingWorkflowID))
	} else {
		registry.Register(models.CategoryDrawing, handlers.NewHTTPHandler(cfg.Handlers.DrawingURL, httpClient))
	}

	dispatcher := NewDispatcher(st, ca, registry, checker, DispatcherOptions{
		WorkerLimit:     cfg.Dispatch.WorkerLimit,
		HandlerTimeout:  cfg.Handlers.Timeout,
		StaleClaimAfter: cfg.Dispatch.StaleClaimAfter,
	})

	slog.Info("orchestrator initialized",
		"projectsCollection", cfg.Firestore.ProjectsCollection,
		"filesCollection", cfg.Firestore.FilesCollection,
		"workerLimit", cfg.Dispatch.WorkerLimit)
	return NewOrchestrator(st, dispatcher), nil
}

// Handle processes one raw trigger payload end to end and always returns a
// structured response. Validation and not-found errors short-circuit before
// any dispatch; anything unexpected is caught here and mapped to a server
// error instead of propagating raw.
func (o *Orchestrator) Handle(ctx context.Context, payload []byte) (resp models.Response) {
	logCtx := slog.With("invocationId", uuid.NewString())

	var msg *models.TriggerMessage
	defer func() {
		if r := recover(); r != nil {
			logCtx.Error("panic during processing", "panic", r)
			resp = ErrorResponse(msg, fmt.Errorf("panic: %v", r))
		}
	}()

	parsed, err := ParseTriggerMessage(payload)
	if err != nil {
		logCtx.Warn("rejected trigger message", "error", err)
		return ErrorResponse(nil, err)
	}
	msg = parsed
	logCtx = logCtx.With("projectId", msg.ProjectID, "userId", msg.UserID)

	if _, err := o.store.GetProject(ctx, msg.ProjectID); err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			logCtx.Warn("project not found")
		} else {
			logCtx.Error("project lookup failed", "error", err)
		}
		return ErrorResponse(msg, err)
	}

	files, err := o.store.ListProjectFiles(ctx, msg.ProjectID, msg.UserID)
	if err != nil {
		logCtx.Error("file listing failed", "error", err)
		return ErrorResponse(msg, err)
	}
	if len(files) == 0 {
		logCtx.Warn("project has no files for user")
		return ErrorResponse(msg, &NoFilesError{ProjectID: msg.ProjectID, UserID: msg.UserID})
	}

	for _, f := range files {
		f.Category = Categorize(f)
	}

	logCtx.Info("dispatching files", "fileCount", len(files))
	results := o.dispatcher.Dispatch(ctx, files)
	outcome := Aggregate(msg.ProjectID, msg.UserID, results)

	if outcome.Status == models.BatchSuccess {
		if err := o.store.UpdateProjectStatus(ctx, msg.ProjectID, models.ProjectStatusCompleted); err != nil {
			logCtx.Error("failed to update project status", "error", err)
		}
	}

	logCtx.Info("batch complete",
		"status", string(outcome.Status),
		"fileCount", outcome.FileCount,
		"succeeded", outcome.SucceededCount,
		"failed", len(outcome.FailedResults))
	return BuildResponse(outcome)
}
