// Package handlers defines the uniform contract between the orchestrator and
// the external collaborators that do the actual content processing, plus the
// transport adapters that reach them. The orchestrator never knows what a
// handler does internally, only whether it succeeded.
package handlers

import (
	"context"
	"log/slog"

	"github.com/constructpm/bidflow/internal/models"
)

// Request carries everything a handler may rely on for one file.
type Request struct {
	FileID          string
	StorageLocation string
	ProjectID       string
	UserID          string
	Category        models.Category
}

// Handler processes a single file. Implementations must honor ctx
// cancellation; the dispatcher bounds every call with a timeout.
type Handler interface {
	Process(ctx context.Context, req Request) error
}

// Registry maps categories to handlers. Categories without a registration
// fall through to a pass-through handler so an unknown file never aborts
// its batch.
type Registry struct {
	byCategory map[models.Category]Handler
	fallback   Handler
}

func NewRegistry() *Registry {
	return &Registry{
		byCategory: make(map[models.Category]Handler),
		fallback:   Noop{},
	}
}

func (r *Registry) Register(category models.Category, h Handler) {
	r.byCategory[category] = h
}

func (r *Registry) Lookup(category models.Category) Handler {
	if h, ok := r.byCategory[category]; ok {
		return h
	}
	return r.fallback
}

// Noop is the pass-through handler for files no pipeline wants.
type Noop struct{}

func (Noop) Process(ctx context.Context, req Request) error {
	slog.Info("no handler registered for category, passing through",
		"fileId", req.FileID, "category", string(req.Category))
	return nil
}
