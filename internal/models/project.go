package models

import "time"

const (
	ProjectStatusCreated    = "created"
	ProjectStatusProcessing = "processing"
	ProjectStatusCompleted  = "completed"
	ProjectStatusArchived   = "archived"
)

// Project is a project document in the projects collection, keyed by its
// project ID. The orchestrator reads it to confirm the project exists and
// writes only its status.
type Project struct {
	ProjectID   string    `firestore:"-"`
	UserID      string    `firestore:"userId,omitempty"`
	Name        string    `firestore:"name,omitempty"`
	Description string    `firestore:"description,omitempty"`
	Status      string    `firestore:"status,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt,omitempty"`
	UpdatedAt   time.Time `firestore:"updatedAt,omitempty"`
}
