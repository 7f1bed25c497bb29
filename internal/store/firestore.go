package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/constructpm/bidflow/internal/models"
)

// FirestoreStore implements Store on top of Firestore. Projects and files live
// in separate collections, both keyed by their external IDs.
type FirestoreStore struct {
	client   *firestore.Client
	projects string
	files    string
}

func NewFirestoreStore(client *firestore.Client, projectsCollection, filesCollection string) *FirestoreStore {
	return &FirestoreStore{
		client:   client,
		projects: projectsCollection,
		files:    filesCollection,
	}
}

func (s *FirestoreStore) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	snap, err := s.client.Collection(s.projects).Doc(projectID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", projectID, err)
	}

	var p models.Project
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", projectID, err)
	}
	p.ProjectID = snap.Ref.ID
	return &p, nil
}

// ListProjectFiles returns the project's file records visible to the user,
// ordered by creation time. Read-only.
func (s *FirestoreStore) ListProjectFiles(ctx context.Context, projectID, userID string) ([]*models.FileRecord, error) {
	iter := s.client.Collection(s.files).
		Where("projectId", "==", projectID).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var files []*models.FileRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list files for project %s: %w", projectID, err)
		}

		var f models.FileRecord
		if err := snap.DataTo(&f); err != nil {
			return nil, fmt.Errorf("failed to decode file %s: %w", snap.Ref.ID, err)
		}
		f.FileID = snap.Ref.ID
		files = append(files, &f)
	}
	return files, nil
}

// ClaimFile atomically moves a file to in_progress. The transition is a
// compare-and-set on the stored status: done files and fresh in_progress
// claims are left alone, everything else (including claims older than
// staleAfter, e.g. after a crashed worker) is re-claimable.
func (s *FirestoreStore) ClaimFile(ctx context.Context, fileID string, staleAfter time.Duration) (ClaimOutcome, error) {
	docRef := s.client.Collection(s.files).Doc(fileID)

	var outcome ClaimOutcome
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var f models.FileRecord
		if err := snap.DataTo(&f); err != nil {
			return fmt.Errorf("failed to decode file: %w", err)
		}

		outcome = claimDecision(f.ProcessingStatus, f.ProcessingStartedAt, time.Now(), staleAfter)
		if outcome != ClaimAcquired {
			return nil
		}

		now := time.Now()
		return tx.Update(docRef, []firestore.Update{
			{Path: "processingStatus", Value: models.StatusInProgress},
			{Path: "processingStartedAt", Value: now},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to claim file %s: %w", fileID, err)
	}
	return outcome, nil
}

// claimDecision is the pure claim rule shared by the transaction above.
func claimDecision(st models.ProcessingStatus, startedAt *time.Time, now time.Time, staleAfter time.Duration) ClaimOutcome {
	switch st {
	case models.StatusDone:
		return ClaimAlreadyDone
	case models.StatusInProgress:
		if startedAt == nil || now.Sub(*startedAt) > staleAfter {
			return ClaimAcquired
		}
		return ClaimBusy
	default:
		return ClaimAcquired
	}
}

func (s *FirestoreStore) MarkFileDone(ctx context.Context, fileID string) error {
	updates := []firestore.Update{
		{Path: "processingStatus", Value: models.StatusDone},
		{Path: "errorDetail", Value: firestore.Delete},
		{Path: "updatedAt", Value: time.Now()},
	}
	if _, err := s.client.Collection(s.files).Doc(fileID).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to mark file %s done: %w", fileID, err)
	}
	return nil
}

func (s *FirestoreStore) MarkFileFailed(ctx context.Context, fileID, errorDetail string) error {
	updates := []firestore.Update{
		{Path: "processingStatus", Value: models.StatusFailed},
		{Path: "errorDetail", Value: errorDetail},
		{Path: "updatedAt", Value: time.Now()},
	}
	if _, err := s.client.Collection(s.files).Doc(fileID).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to mark file %s failed: %w", fileID, err)
	}
	return nil
}

func (s *FirestoreStore) UpdateProjectStatus(ctx context.Context, projectID, newStatus string) error {
	updates := []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now()},
	}
	if _, err := s.client.Collection(s.projects).Doc(projectID).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to update status for project %s: %w", projectID, err)
	}
	return nil
}
