package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/workflows/executions/apiv1"
	"cloud.google.com/go/workflows/executions/apiv1/executionspb"
)

// WorkflowHandler hands a file off to a Cloud Workflow execution. A
// successful hand-off counts as processed; status transitions past that
// point belong to the workflow, not the orchestrator.
type WorkflowHandler struct {
	client     *executions.Client
	projectID  string
	location   string
	workflowID string
}

func NewWorkflowHandler(client *executions.Client, projectID, location, workflowID string) *WorkflowHandler {
	return &WorkflowHandler{
		client:     client,
		projectID:  projectID,
		location:   location,
		workflowID: workflowID,
	}
}

func (h *WorkflowHandler) Process(ctx context.Context, req Request) error {
	argument := map[string]any{
		"fileId":          req.FileID,
		"storageLocation": req.StorageLocation,
		"projectId":       req.ProjectID,
		"userId":          req.UserID,
		"category":        string(req.Category),
	}
	payload, err := json.Marshal(argument)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow argument: %w", err)
	}

	execReq := &executionspb.CreateExecutionRequest{
		Parent: fmt.Sprintf("projects/%s/locations/%s/workflows/%s", h.projectID, h.location, h.workflowID),
		Execution: &executionspb.Execution{
			Argument: string(payload),
		},
	}
	if _, err := h.client.CreateExecution(ctx, execReq); err != nil {
		return fmt.Errorf("failed to trigger workflow execution: %w", err)
	}
	return nil
}
