package models

import "time"

// ActionProcess is the only action the orchestrator currently understands.
// Unrecognized actions are accepted and logged for forward compatibility.
const ActionProcess = "process"

// TriggerMessage is a validated unit of work: process all files owned by
// ProjectID and visible to UserID.
type TriggerMessage struct {
	ProjectID string
	UserID    string
	Action    string
	Timestamp time.Time
}
