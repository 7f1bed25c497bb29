package services

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/constructpm/bidflow/internal/models"
)

// triggerPayload is the wire form of an inbound trigger message.
type triggerPayload struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

var allowedActions = map[string]bool{
	models.ActionProcess: true,
}

// ParseTriggerMessage validates a raw trigger payload. project_id and user_id
// are required; an unrecognized action is accepted and logged rather than
// rejected, and a missing or unparsable timestamp defaults to the current
// time. No side effects beyond logging.
func ParseTriggerMessage(data []byte) (*models.TriggerMessage, error) {
	var p triggerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &ValidationError{Field: "payload"}
	}

	if strings.TrimSpace(p.ProjectID) == "" {
		return nil, &ValidationError{Field: "project_id"}
	}
	if strings.TrimSpace(p.UserID) == "" {
		return nil, &ValidationError{Field: "user_id"}
	}

	if p.Action != "" && !allowedActions[p.Action] {
		slog.Warn("unrecognized action in trigger message, continuing",
			"action", p.Action, "projectId", p.ProjectID)
	}

	timestamp := time.Now().UTC()
	if p.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			slog.Warn("could not parse trigger timestamp, using current time",
				"timestamp", p.Timestamp, "projectId", p.ProjectID)
		} else {
			timestamp = parsed
		}
	}

	return &models.TriggerMessage{
		ProjectID: p.ProjectID,
		UserID:    p.UserID,
		Action:    p.Action,
		Timestamp: timestamp,
	}, nil
}
