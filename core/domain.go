package core

import (
	"strings"
	"time"
)

// Event is the classification result for one inbound webhook delivery. It is
// a sealed union: exactly one of PushEvent, PullRequestOpenedEvent,
// PullRequestMergedEvent, or IgnoredEvent. Consumers switch exhaustively on
// the concrete type; the unexported marker keeps foreign variants out.
type Event interface {
	isEvent()
}

// PushEvent captures a branch push.
type PushEvent struct {
	PusherName      string
	RefName         string
	CommitTimestamp string
}

func (PushEvent) isEvent() {}

// PullRequestOpenedEvent captures a newly opened pull request.
type PullRequestOpenedEvent struct {
	AuthorLogin string
	HeadRef     string
	BaseRef     string
	CreatedAt   string
}

func (PullRequestOpenedEvent) isEvent() {}

// PullRequestMergedEvent captures a pull request closed by merging.
type PullRequestMergedEvent struct {
	AuthorLogin string
	HeadRef     string
	BaseRef     string
	MergedAt    string
}

func (PullRequestMergedEvent) isEvent() {}

// IgnoredEvent marks a recognized-but-inapplicable delivery: an event type
// this service does not handle, or a pull_request action that is neither
// "opened" nor a merged close.
type IgnoredEvent struct {
	EventType string
	Action    string
}

func (IgnoredEvent) isEvent() {}

// ActivityEntry is the only persisted entity: one formatted summary plus the
// insertion timestamp assigned by the store. Entries are append-only and
// never mutated.
type ActivityEntry struct {
	ID         string
	Formatted  string
	InsertedAt time.Time
}

// InboundRequest carries the raw material of one webhook delivery from the
// transport into the ingestion pipeline.
type InboundRequest struct {
	EventType       string
	SignatureHeader string
	DeliveryID      string
	Body            []byte
}

func (r InboundRequest) Normalized() InboundRequest {
	r.EventType = strings.TrimSpace(r.EventType)
	r.SignatureHeader = strings.TrimSpace(r.SignatureHeader)
	r.DeliveryID = strings.TrimSpace(r.DeliveryID)
	return r
}

// Terminal pipeline outcomes. Every successfully handled delivery ends in
// exactly one of these; rejections surface as errors instead.
const (
	OutcomeStored  = "stored"
	OutcomeIgnored = "ignored"
)

// InboundResult is the terminal outcome of one ingestion pass.
type InboundResult struct {
	Outcome    string
	StatusCode int
	Entry      *ActivityEntry
}
