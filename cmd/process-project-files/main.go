package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/constructpm/bidflow/internal/config"
	"github.com/constructpm/bidflow/internal/services"
)

var (
	orchestratorInstance *services.Orchestrator
	once                 sync.Once
	initErr              error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function. The framework routes the event here.
	functions.CloudEvent("ProcessProjectFiles", processProjectFiles)
}

// main is required by the Go Functions Framework.
func main() {}

// pubSubEnvelope mirrors the data payload of a Pub/Sub CloudEvent. The inner
// Data field is base64 on the wire and holds the trigger message JSON.
type pubSubEnvelope struct {
	Message struct {
		Data []byte `json:"data"`
	} `json:"message"`
}

// processProjectFiles is the Cloud Function entry point.
func processProjectFiles(ctx context.Context, e cloudevents.Event) error {
	// One-time initialization of clients across warm invocations.
	once.Do(func() {
		var cfg *config.Config
		cfg, initErr = config.Load()
		if initErr != nil {
			return
		}
		orchestratorInstance, initErr = services.NewFromConfig(context.Background(), cfg)
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	// Pub/Sub wraps the trigger message; direct invocations carry it as the
	// event data itself.
	payload := e.Data()
	var envelope pubSubEnvelope
	if err := json.Unmarshal(e.Data(), &envelope); err == nil && len(envelope.Message.Data) > 0 {
		payload = envelope.Message.Data
	}

	resp := orchestratorInstance.Handle(ctx, payload)
	slog.Info("invocation complete", "statusCode", resp.StatusCode)

	// Only server errors are worth a redelivery; validation and not-found
	// outcomes are terminal for this message.
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("processing failed with status %d", resp.StatusCode)
	}
	return nil
}
