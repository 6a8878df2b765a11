package webhooks

import (
	"context"
	"net/http"

	"github.com/goliatone/go-repo-activity/core"
)

// Processor drives one webhook delivery end to end: verify, classify,
// format, append. Store writes happen on the single success path only;
// rejected or ignored deliveries never touch storage.
type Processor struct {
	Verifier core.SignatureVerifier
	Store    core.ActivityStore
	Logger   core.Logger
}

func NewProcessor(verifier core.SignatureVerifier, store core.ActivityStore, logger core.Logger) *Processor {
	return &Processor{
		Verifier: verifier,
		Store:    store,
		Logger:   logger,
	}
}

func (p *Processor) Process(ctx context.Context, req core.InboundRequest) (core.InboundResult, error) {
	if p == nil || p.Store == nil {
		return core.InboundResult{}, storeUnavailableError(nil, "webhooks: processor is not configured")
	}
	req = req.Normalized()

	if p.Verifier != nil {
		if err := p.Verifier.Verify(ctx, req.Body, req.SignatureHeader); err != nil {
			p.logOutcome(ctx, req, "rejected", err)
			return core.InboundResult{}, err
		}
	}

	event, err := Classify(req.EventType, req.Body)
	if err != nil {
		p.logOutcome(ctx, req, "rejected", err)
		return core.InboundResult{}, err
	}

	formatted, actionable, err := FormatEvent(event)
	if err != nil {
		p.logOutcome(ctx, req, "rejected", err)
		return core.InboundResult{}, err
	}
	if !actionable {
		p.logOutcome(ctx, req, core.OutcomeIgnored, nil)
		return core.InboundResult{
			Outcome:    core.OutcomeIgnored,
			StatusCode: http.StatusOK,
		}, nil
	}

	entry, err := p.Store.Append(ctx, formatted)
	if err != nil {
		p.logOutcome(ctx, req, "rejected", err)
		return core.InboundResult{}, storeUnavailableError(err, "webhooks: append activity entry")
	}

	p.logOutcome(ctx, req, core.OutcomeStored, nil)
	return core.InboundResult{
		Outcome:    core.OutcomeStored,
		StatusCode: http.StatusCreated,
		Entry:      &entry,
	}, nil
}

func (p *Processor) logOutcome(ctx context.Context, req core.InboundRequest, outcome string, cause error) {
	if p == nil || p.Logger == nil {
		return
	}
	logger := p.Logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	args := []any{
		"event_type", req.EventType,
		"delivery_id", req.DeliveryID,
		"outcome", outcome,
	}
	if cause != nil {
		args = append(args, "error", cause.Error())
		logger.Error("webhook delivery rejected", args...)
		return
	}
	logger.Info("webhook delivery processed", args...)
}
