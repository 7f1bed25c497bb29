package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/constructpm/bidflow/internal/models"
	"github.com/constructpm/bidflow/internal/store"
)

// BuildResponse maps a batch outcome to the response envelope. Full and
// partial successes are success-class; a batch where every file failed is a
// processing failure.
func BuildResponse(outcome *models.AggregateOutcome) models.Response {
	if outcome.Status == models.BatchFailure {
		return models.Response{
			StatusCode: http.StatusInternalServerError,
			Body: models.ErrorBody{
				Status:    "error",
				Message:   fmt.Sprintf("Failed to process files for project %s", outcome.ProjectID),
				ProjectID: outcome.ProjectID,
				UserID:    outcome.UserID,
			},
		}
	}

	return models.Response{
		StatusCode: http.StatusOK,
		Body: models.SuccessBody{
			Status:        string(outcome.Status),
			Message:       fmt.Sprintf("Successfully processed %d files for project %s", outcome.FileCount, outcome.ProjectID),
			ProjectID:     outcome.ProjectID,
			UserID:        outcome.UserID,
			FileCount:     outcome.FileCount,
			FailedResults: outcome.FailedResults,
		},
	}
}

// ErrorResponse maps an earlier-stage error to the response envelope. msg is
// nil when validation itself failed.
func ErrorResponse(msg *models.TriggerMessage, err error) models.Response {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		detail := fmt.Sprintf("Missing %s in the message", vErr.Field)
		if vErr.Field == "payload" {
			detail = "Malformed message payload"
		}
		return models.Response{
			StatusCode: http.StatusBadRequest,
			Body:       models.ErrorBody{Error: detail},
		}
	}

	if errors.Is(err, store.ErrProjectNotFound) {
		return models.Response{
			StatusCode: http.StatusNotFound,
			Body: models.ErrorBody{
				Error:     fmt.Sprintf("Project with ID %s not found", msg.ProjectID),
				ProjectID: msg.ProjectID,
			},
		}
	}

	var nfErr *NoFilesError
	if errors.As(err, &nfErr) {
		return models.Response{
			StatusCode: http.StatusNotFound,
			Body: models.ErrorBody{
				Error:     fmt.Sprintf("No files found for project %s and user %s", nfErr.ProjectID, nfErr.UserID),
				ProjectID: nfErr.ProjectID,
				UserID:    nfErr.UserID,
			},
		}
	}

	body := models.ErrorBody{Error: fmt.Sprintf("Internal server error: %v", err)}
	if msg != nil {
		body.ProjectID = msg.ProjectID
		body.UserID = msg.UserID
	}
	return models.Response{StatusCode: http.StatusInternalServerError, Body: body}
}
