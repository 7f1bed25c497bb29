package services

import "fmt"

// ValidationError reports a missing or malformed field in the trigger
// payload. Never retried; the caller must resend a corrected message.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or malformed field %q in trigger message", e.Field)
}

// NoFilesError means the project exists but owns no files visible to the
// user. Kept distinct from store.ErrProjectNotFound because the two need
// different operator-facing diagnostics, even though both map to 404.
type NoFilesError struct {
	ProjectID string
	UserID    string
}

func (e *NoFilesError) Error() string {
	return fmt.Sprintf("no files found for project %s and user %s", e.ProjectID, e.UserID)
}

// FailureKind tags a per-file failure for the record's error detail.
type FailureKind string

const (
	FailureHandler        FailureKind = "handler_error"
	FailureTimeout        FailureKind = "timeout"
	FailureStorageMissing FailureKind = "storage_missing"
	FailureStore          FailureKind = "store_error"
)

// HandlerFailure is one file's failure inside a batch. It never aborts
// sibling files; the dispatcher records it and moves on.
type HandlerFailure struct {
	Kind   FailureKind
	FileID string
	Err    error
}

func (e *HandlerFailure) Error() string {
	return fmt.Sprintf("%s: file %s: %v", e.Kind, e.FileID, e.Err)
}

func (e *HandlerFailure) Unwrap() error { return e.Err }
