// Package command exposes the mutating operations of the activity feed as
// go-command messages and handlers.
package command

import (
	"github.com/goliatone/go-repo-activity/core"
)

const TypeIngestWebhook = "activity.command.webhook.ingest"

type IngestWebhookMessage struct {
	Request core.InboundRequest
}

func (IngestWebhookMessage) Type() string { return TypeIngestWebhook }

func (m IngestWebhookMessage) Validate() error {
	if len(m.Request.Body) == 0 {
		return commandValidationError("body", "webhook body is required")
	}
	return nil
}
