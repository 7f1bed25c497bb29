package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/constructpm/bidflow/internal/models"
)

// HTTPHandler reaches a category worker function over JSON-over-HTTP. The
// worker owns the content processing; a 2xx response with status "success"
// is the only success marker.
type HTTPHandler struct {
	url    string
	client *http.Client
}

// NewHTTPHandler creates a handler posting to the given worker URL. A nil
// client falls back to http.DefaultClient; per-call deadlines come from ctx.
func NewHTTPHandler(url string, client *http.Client) *HTTPHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPHandler{url: url, client: client}
}

func (h *HTTPHandler) Process(ctx context.Context, req Request) error {
	payload := models.FileProcessRequest{
		FileID:          req.FileID,
		StorageLocation: req.StorageLocation,
		ProjectID:       req.ProjectID,
		UserID:          req.UserID,
		Category:        string(req.Category),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal worker payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build worker request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("worker call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("worker returned status %d", resp.StatusCode)
	}

	var workerResp models.FileProcessResponse
	if err := json.NewDecoder(resp.Body).Decode(&workerResp); err != nil {
		return fmt.Errorf("failed to decode worker response: %w", err)
	}
	if workerResp.Status != "success" {
		return fmt.Errorf("worker reported status %q: %s", workerResp.Status, workerResp.Message)
	}
	return nil
}
