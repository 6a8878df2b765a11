package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-repo-activity/core"
)

// IngestionService is the pipeline contract the ingest command drives.
type IngestionService interface {
	Process(ctx context.Context, req core.InboundRequest) (core.InboundResult, error)
}

type IngestWebhookCommand struct {
	service IngestionService
}

func NewIngestWebhookCommand(service IngestionService) *IngestWebhookCommand {
	return &IngestWebhookCommand{service: service}
}

func (c *IngestWebhookCommand) Execute(ctx context.Context, msg IngestWebhookMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: ingestion service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.Process(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
