package models

import "time"

// Category is the coarse classification that decides which handler a file
// is routed to. It is derived from static record metadata and never stored.
type Category string

const (
	CategoryQuote   Category = "quote"
	CategoryDrawing Category = "drawing"
	CategorySpec    Category = "spec"
	CategoryUnknown Category = "unknown"
)

// ProcessingStatus is the persisted lifecycle state of a file record.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusInProgress ProcessingStatus = "in_progress"
	StatusDone       ProcessingStatus = "done"
	StatusFailed     ProcessingStatus = "failed"
)

// FileRecord is a file document in the files collection. It is created by the
// ingestion stage; the orchestrator only ever mutates processingStatus,
// errorDetail and the claim timestamp.
type FileRecord struct {
	FileID              string           `firestore:"-"`
	ProjectID           string           `firestore:"projectId,omitempty"`
	UserID              string           `firestore:"userId,omitempty"`
	FileName            string           `firestore:"fileName,omitempty"`
	DeclaredCategory    string           `firestore:"declaredCategory,omitempty"`
	StorageLocation     string           `firestore:"storageLocation,omitempty"`
	ProcessingStatus    ProcessingStatus `firestore:"processingStatus,omitempty"`
	ErrorDetail         string           `firestore:"errorDetail,omitempty"`
	ProcessingStartedAt *time.Time       `firestore:"processingStartedAt,omitempty"`
	CreatedAt           time.Time        `firestore:"createdAt,omitempty"`
	UpdatedAt           time.Time        `firestore:"updatedAt,omitempty"`

	// Category is computed by the categorizer for the current invocation.
	Category Category `firestore:"-"`
}
