package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the process-project-files function.
// Everything comes from environment variables, which is how Cloud Functions
// receive their settings.
type Config struct {
	ProjectID string
	Firestore FirestoreConfig
	Redis     RedisConfig
	Handlers  HandlerConfig
	Dispatch  DispatchConfig
}

type FirestoreConfig struct {
	Database           string
	ProjectsCollection string
	FilesCollection    string
}

// RedisConfig configures the optional status cache. An empty URL disables the
// fast path; the Firestore claim remains the source of truth either way.
type RedisConfig struct {
	URL string
}

type HandlerConfig struct {
	QuoteURL string
	SpecURL  string

	// Drawings hand off to a Cloud Workflow when DrawingWorkflowID is set;
	// otherwise DrawingURL must name a worker function.
	DrawingURL        string
	DrawingWorkflowID string
	WorkflowLocation  string

	Timeout time.Duration
}

type DispatchConfig struct {
	WorkerLimit     int
	StaleClaimAfter time.Duration
}

// Load reads configuration from environment variables and returns a validated
// Config. Returns an error naming the offending variable if any required value
// is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		ProjectID: os.Getenv("GCP_PROJECT"),
		Firestore: FirestoreConfig{
			Database:           envString("FIRESTORE_DATABASE", "(default)"),
			ProjectsCollection: envString("PROJECTS_COLLECTION", "projects"),
			FilesCollection:    envString("FILES_COLLECTION", "uploaded_files"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Handlers: HandlerConfig{
			QuoteURL:          os.Getenv("QUOTE_HANDLER_URL"),
			SpecURL:           os.Getenv("SPEC_HANDLER_URL"),
			DrawingURL:        os.Getenv("DRAWING_HANDLER_URL"),
			DrawingWorkflowID: os.Getenv("DRAWING_WORKFLOW_ID"),
			WorkflowLocation:  envString("WORKFLOW_LOCATION", "us-central1"),
			Timeout:           envDuration("HANDLER_TIMEOUT", 2*time.Minute),
		},
		Dispatch: DispatchConfig{
			WorkerLimit:     envInt("WORKER_LIMIT", 4),
			StaleClaimAfter: envDuration("STALE_CLAIM_AFTER", time.Hour),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("GCP_PROJECT is required")
	}

	if c.Handlers.QuoteURL == "" {
		return fmt.Errorf("QUOTE_HANDLER_URL is required")
	}
	if c.Handlers.SpecURL == "" {
		return fmt.Errorf("SPEC_HANDLER_URL is required")
	}
	if c.Handlers.DrawingWorkflowID == "" && c.Handlers.DrawingURL == "" {
		return fmt.Errorf("one of DRAWING_WORKFLOW_ID or DRAWING_HANDLER_URL is required")
	}
	for _, u := range []string{c.Handlers.QuoteURL, c.Handlers.SpecURL, c.Handlers.DrawingURL} {
		if u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("handler URLs must start with http:// or https://, got %q", u)
		}
	}

	if c.Dispatch.WorkerLimit < 1 {
		return fmt.Errorf("WORKER_LIMIT must be at least 1")
	}
	if c.Handlers.Timeout <= 0 {
		return fmt.Errorf("HANDLER_TIMEOUT must be positive")
	}
	if c.Dispatch.StaleClaimAfter <= 0 {
		return fmt.Errorf("STALE_CLAIM_AFTER must be positive")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
