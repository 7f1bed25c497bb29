package store

import (
	"context"
	"errors"
	"time"

	"github.com/constructpm/bidflow/internal/models"
)

// ErrProjectNotFound is returned when no project matches the requested ID.
// "Project missing" and "project exists but has no files" are deliberately
// distinct situations; the latter is decided by the caller from an empty list.
var ErrProjectNotFound = errors.New("project not found")

// ClaimOutcome is the result of an atomic attempt to take ownership of a file.
type ClaimOutcome int

const (
	// ClaimAcquired means the file was pending, failed, or stale in_progress
	// and is now marked in_progress by this worker.
	ClaimAcquired ClaimOutcome = iota
	// ClaimAlreadyDone means a previous delivery finished this file.
	ClaimAlreadyDone
	// ClaimBusy means another worker holds a fresh in_progress claim.
	ClaimBusy
)

// Store is the document-store access interface. All reads and status
// transitions go through here. Status transitions are conditioned on the
// prior stored status so that at-least-once redelivery stays idempotent.
type Store interface {
	GetProject(ctx context.Context, projectID string) (*models.Project, error)
	ListProjectFiles(ctx context.Context, projectID, userID string) ([]*models.FileRecord, error)

	ClaimFile(ctx context.Context, fileID string, staleAfter time.Duration) (ClaimOutcome, error)
	MarkFileDone(ctx context.Context, fileID string) error
	MarkFileFailed(ctx context.Context, fileID, errorDetail string) error

	UpdateProjectStatus(ctx context.Context, projectID, status string) error
}
