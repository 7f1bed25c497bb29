package services

import (
	"context"
	"sync"
	"time"

	"github.com/constructpm/bidflow/internal/handlers"
	"github.com/constructpm/bidflow/internal/models"
	"github.com/constructpm/bidflow/internal/store"
)

// fakeStore is an in-memory Store for orchestrator and dispatcher tests.
type fakeStore struct {
	mu sync.Mutex

	project    *models.Project
	projectErr error
	files      []*models.FileRecord
	listErr    error

	claims   map[string]store.ClaimOutcome
	claimErr error

	done          []string
	failedDetails map[string]string
	projectStatus string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		claims:        make(map[string]store.ClaimOutcome),
		failedDetails: make(map[string]string),
	}
}

func (s *fakeStore) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	if s.projectErr != nil {
		return nil, s.projectErr
	}
	if s.project != nil {
		return s.project, nil
	}
	return &models.Project{ProjectID: projectID}, nil
}

func (s *fakeStore) ListProjectFiles(ctx context.Context, projectID, userID string) ([]*models.FileRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.files, nil
}

func (s *fakeStore) ClaimFile(ctx context.Context, fileID string, staleAfter time.Duration) (store.ClaimOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimErr != nil {
		return 0, s.claimErr
	}
	return s.claims[fileID], nil // zero value is ClaimAcquired
}

func (s *fakeStore) MarkFileDone(ctx context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = append(s.done, fileID)
	return nil
}

func (s *fakeStore) MarkFileFailed(ctx context.Context, fileID, errorDetail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failedDetails[fileID] = errorDetail
	return nil
}

func (s *fakeStore) UpdateProjectStatus(ctx context.Context, projectID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectStatus = status
	return nil
}

func (s *fakeStore) markedDone() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.done...)
}

// fakeCache is a map-backed Cache.
type fakeCache struct {
	mu       sync.Mutex
	statuses map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{statuses: make(map[string]string)}
}

func (c *fakeCache) GetFileStatus(ctx context.Context, fileID string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status, ok := c.statuses[fileID]
	return status, ok, nil
}

func (c *fakeCache) SetFileStatus(ctx context.Context, fileID, status string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[fileID] = status
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

// fakeHandler counts invocations and delegates to fn.
type fakeHandler struct {
	mu    sync.Mutex
	calls []string
	fn    func(ctx context.Context, req handlers.Request) error
}

func (h *fakeHandler) Process(ctx context.Context, req handlers.Request) error {
	h.mu.Lock()
	h.calls = append(h.calls, req.FileID)
	h.mu.Unlock()
	if h.fn != nil {
		return h.fn(ctx, req)
	}
	return nil
}

func (h *fakeHandler) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.calls)
}

func testFile(id string, category models.Category) *models.FileRecord {
	return &models.FileRecord{
		FileID:          id,
		ProjectID:       "proj-1",
		UserID:          "user-1",
		FileName:        id + ".pdf",
		StorageLocation: "gs://bidflow-uploads/" + id + ".pdf",
		Category:        category,
	}
}
