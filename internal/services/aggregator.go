package services

import "github.com/constructpm/bidflow/internal/models"

// Aggregate folds per-file results into a batch outcome. success means every
// file succeeded, failure means every file failed (so a lone failed file is
// failure, not partial_failure), anything in between is partial_failure.
// Skipped results are successes: a fully-done batch redelivered is a success.
func Aggregate(projectID, userID string, results []models.ProcessingResult) *models.AggregateOutcome {
	outcome := &models.AggregateOutcome{
		ProjectID: projectID,
		UserID:    userID,
		FileCount: len(results),
	}

	for _, r := range results {
		if r.Success {
			outcome.SucceededCount++
		} else {
			outcome.FailedResults = append(outcome.FailedResults, r)
		}
	}

	switch {
	case len(outcome.FailedResults) == 0:
		outcome.Status = models.BatchSuccess
	case outcome.SucceededCount == 0:
		outcome.Status = models.BatchFailure
	default:
		outcome.Status = models.BatchPartialFailure
	}

	return outcome
}
