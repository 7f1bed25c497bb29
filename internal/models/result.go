package models

// ProcessingResult is the outcome of dispatching a single file. Skipped marks
// an idempotent no-op: the file was already done, or another worker holds the
// claim. Skipped results count as successes.
type ProcessingResult struct {
	FileID      string `json:"file_id"`
	Success     bool   `json:"success"`
	Skipped     bool   `json:"skipped,omitempty"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

// BatchStatus classifies a whole batch.
type BatchStatus string

const (
	BatchSuccess        BatchStatus = "success"
	BatchPartialFailure BatchStatus = "partial_failure"
	BatchFailure        BatchStatus = "failure"
)

// AggregateOutcome is the batch-level summary of all per-file results for one
// trigger message. FileCount always equals the number of files attempted.
type AggregateOutcome struct {
	ProjectID      string
	UserID         string
	FileCount      int
	SucceededCount int
	FailedResults  []ProcessingResult
	Status         BatchStatus
}
