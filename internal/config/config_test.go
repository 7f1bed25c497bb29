package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructpm/bidflow/internal/config"
)

// setEnv is a helper that sets environment variables for a test and restores them after.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
}

// validEnv returns the minimum set of valid environment variables.
func validEnv() map[string]string {
	return map[string]string{
		"GCP_PROJECT":         "bidflow-test",
		"QUOTE_HANDLER_URL":   "https://quote-processor.example.run.app",
		"SPEC_HANDLER_URL":    "https://spec-processor.example.run.app",
		"DRAWING_WORKFLOW_ID": "drawing-analysis",
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	setEnv(t, validEnv())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "bidflow-test", cfg.ProjectID)
	assert.Equal(t, "(default)", cfg.Firestore.Database)
	assert.Equal(t, "projects", cfg.Firestore.ProjectsCollection)
	assert.Equal(t, "uploaded_files", cfg.Firestore.FilesCollection)
	assert.Equal(t, "drawing-analysis", cfg.Handlers.DrawingWorkflowID)
	assert.Equal(t, "us-central1", cfg.Handlers.WorkflowLocation)
	assert.Equal(t, 2*time.Minute, cfg.Handlers.Timeout)
	assert.Equal(t, 4, cfg.Dispatch.WorkerLimit)
	assert.Equal(t, time.Hour, cfg.Dispatch.StaleClaimAfter)
	assert.Empty(t, cfg.Redis.URL)
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("FILES_COLLECTION", "bid_documents")
	t.Setenv("WORKER_LIMIT", "8")
	t.Setenv("HANDLER_TIMEOUT", "45s")
	t.Setenv("STALE_CLAIM_AFTER", "30m")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "bid_documents", cfg.Firestore.FilesCollection)
	assert.Equal(t, 8, cfg.Dispatch.WorkerLimit)
	assert.Equal(t, 45*time.Second, cfg.Handlers.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Dispatch.StaleClaimAfter)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
}

func TestLoad_MissingProject(t *testing.T) {
	env := validEnv()
	delete(env, "GCP_PROJECT")
	setEnv(t, env)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GCP_PROJECT")
}

func TestLoad_MissingQuoteHandler(t *testing.T) {
	env := validEnv()
	delete(env, "QUOTE_HANDLER_URL")
	setEnv(t, env)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUOTE_HANDLER_URL")
}

func TestLoad_DrawingNeedsWorkflowOrURL(t *testing.T) {
	env := validEnv()
	delete(env, "DRAWING_WORKFLOW_ID")
	setEnv(t, env)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DRAWING_WORKFLOW_ID")

	t.Setenv("DRAWING_HANDLER_URL", "https://drawing-processor.example.run.app")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://drawing-processor.example.run.app", cfg.Handlers.DrawingURL)
}

func TestLoad_RejectsNonHTTPHandlerURL(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("SPEC_HANDLER_URL", "ftp://spec-processor")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http")
}

func TestLoad_RejectsZeroWorkerLimit(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("WORKER_LIMIT", "0")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKER_LIMIT")
}
