package models

// These structs define the JSON payloads exchanged with the category worker
// functions and the response envelope returned to the triggering transport.

// FileProcessRequest is the payload a category handler receives for one file.
// Handlers only ever see this contract; what they do with the storage location
// (OCR, vision, scope extraction) is their own business.
type FileProcessRequest struct {
	FileID          string `json:"fileId"`
	StorageLocation string `json:"storageLocation"`
	ProjectID       string `json:"projectId"`
	UserID          string `json:"userId"`
	Category        string `json:"category"`
}

// FileProcessResponse is what an HTTP worker function reports back.
type FileProcessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Response is the structured outcome of one invocation.
type Response struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// SuccessBody is the 200 response body. FailedResults is populated only on
// partial failure so callers can see which files need attention.
type SuccessBody struct {
	Status        string             `json:"status"`
	Message       string             `json:"message"`
	ProjectID     string             `json:"project_id"`
	UserID        string             `json:"user_id"`
	FileCount     int                `json:"file_count"`
	FailedResults []ProcessingResult `json:"failed_results,omitempty"`
}

// ErrorBody is the 4xx/5xx response body. Validation and not-found errors use
// Error; processing failures use Status + Message.
type ErrorBody struct {
	Error     string `json:"error,omitempty"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}
