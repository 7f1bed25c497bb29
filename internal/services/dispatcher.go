package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/constructpm/bidflow/internal/cache"
	"github.com/constructpm/bidflow/internal/gcp"
	"github.com/constructpm/bidflow/internal/handlers"
	"github.com/constructpm/bidflow/internal/models"
	"github.com/constructpm/bidflow/internal/store"
)

// doneStatusTTL bounds how long a done status lives in the cache. The store
// keeps the durable truth; the cache only short-circuits redeliveries.
const doneStatusTTL = 24 * time.Hour

// ObjectChecker verifies that the storage object behind a locator exists.
type ObjectChecker interface {
	ObjectExists(ctx context.Context, bucket, object string) (bool, error)
}

// DispatcherOptions are the tunable resource limits of a dispatch.
type DispatcherOptions struct {
	WorkerLimit     int
	HandlerTimeout  time.Duration
	StaleClaimAfter time.Duration
}

// Dispatcher routes each categorized file to its registered handler and
// collects a per-file result. Files fail independently: one file's failure
// never aborts its siblings.
type Dispatcher struct {
	store    store.Store
	cache    cache.Cache
	registry *handlers.Registry
	storage  ObjectChecker // optional; nil skips the preflight
	opts     DispatcherOptions
}

func NewDispatcher(st store.Store, ca cache.Cache, reg *handlers.Registry, checker ObjectChecker, opts DispatcherOptions) *Dispatcher {
	if opts.WorkerLimit < 1 {
		opts.WorkerLimit = 1
	}
	if ca == nil {
		ca = cache.Noop{}
	}
	return &Dispatcher{
		store:    st,
		cache:    ca,
		registry: reg,
		storage:  checker,
		opts:     opts,
	}
}

// Dispatch fans the batch out on a bounded worker pool and returns one result
// per file, in input order.
func (d *Dispatcher) Dispatch(ctx context.Context, files []*models.FileRecord) []models.ProcessingResult {
	results := make([]models.ProcessingResult, len(files))

	eg := new(errgroup.Group)
	eg.SetLimit(d.opts.WorkerLimit)
	for i, f := range files {
		i, f := i, f
		eg.Go(func() error {
			results[i] = d.processFile(ctx, f)
			return nil
		})
	}
	// Workers record their failures in results and never return errors.
	_ = eg.Wait()

	return results
}

func (d *Dispatcher) processFile(ctx context.Context, f *models.FileRecord) models.ProcessingResult {
	logCtx := slog.With("fileId", f.FileID, "category", string(f.Category))

	// Fast path: a cached done status means a previous delivery finished
	// this file. Cache errors only cost us the shortcut.
	if cached, ok, err := d.cache.GetFileStatus(ctx, f.FileID); err != nil {
		logCtx.Warn("cache lookup failed, continuing", "error", err)
	} else if ok && cached == string(models.StatusDone) {
		logCtx.Info("skipping file already done (cache)")
		return models.ProcessingResult{FileID: f.FileID, Success: true, Skipped: true}
	}

	outcome, err := d.store.ClaimFile(ctx, f.FileID, d.opts.StaleClaimAfter)
	if err != nil {
		return d.failed(ctx, logCtx, f, &HandlerFailure{Kind: FailureStore, FileID: f.FileID, Err: err}, false)
	}
	switch outcome {
	case store.ClaimAlreadyDone:
		logCtx.Info("skipping file already done")
		if err := d.cache.SetFileStatus(ctx, f.FileID, string(models.StatusDone), doneStatusTTL); err != nil {
			logCtx.Warn("failed to cache done status", "error", err)
		}
		return models.ProcessingResult{FileID: f.FileID, Success: true, Skipped: true}
	case store.ClaimBusy:
		logCtx.Info("skipping file claimed by another worker")
		return models.ProcessingResult{FileID: f.FileID, Success: true, Skipped: true}
	}

	// Preflight: confirm the object is still there before paying for a
	// handler call. Metadata only, never content.
	if d.storage != nil {
		if bucket, object, ok := gcp.ParseGCSLocation(f.StorageLocation); ok {
			exists, err := d.storage.ObjectExists(ctx, bucket, object)
			if err != nil {
				logCtx.Warn("storage preflight failed, dispatching anyway", "error", err)
			} else if !exists {
				failure := &HandlerFailure{
					Kind:   FailureStorageMissing,
					FileID: f.FileID,
					Err:    fmt.Errorf("object %s does not exist", f.StorageLocation),
				}
				return d.failed(ctx, logCtx, f, failure, true)
			}
		}
	}

	handler := d.registry.Lookup(f.Category)
	callCtx, cancel := context.WithTimeout(ctx, d.opts.HandlerTimeout)
	defer cancel()

	err = invokeHandler(callCtx, handler, handlers.Request{
		FileID:          f.FileID,
		StorageLocation: f.StorageLocation,
		ProjectID:       f.ProjectID,
		UserID:          f.UserID,
		Category:        f.Category,
	})
	if err != nil {
		kind := FailureHandler
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			kind = FailureTimeout
		}
		return d.failed(ctx, logCtx, f, &HandlerFailure{Kind: kind, FileID: f.FileID, Err: err}, true)
	}

	if err := d.store.MarkFileDone(ctx, f.FileID); err != nil {
		// The handler finished; redelivery will re-claim this file, so the
		// handler contract has to tolerate a repeat call.
		logCtx.Error("failed to mark file done", "error", err)
	}
	if err := d.cache.SetFileStatus(ctx, f.FileID, string(models.StatusDone), doneStatusTTL); err != nil {
		logCtx.Warn("failed to cache done status", "error", err)
	}

	logCtx.Info("file processed")
	return models.ProcessingResult{FileID: f.FileID, Success: true}
}

func (d *Dispatcher) failed(ctx context.Context, logCtx *slog.Logger, f *models.FileRecord, failure *HandlerFailure, mark bool) models.ProcessingResult {
	logCtx.Error("file processing failed", "error", failure)
	if mark {
		if err := d.store.MarkFileFailed(ctx, f.FileID, failure.Error()); err != nil {
			logCtx.Error("failed to record failure status", "error", err)
		}
	}
	return models.ProcessingResult{FileID: f.FileID, ErrorDetail: failure.Error()}
}

// invokeHandler shields the batch from a panicking handler implementation.
func invokeHandler(ctx context.Context, h handlers.Handler, req handlers.Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Process(ctx, req)
}
