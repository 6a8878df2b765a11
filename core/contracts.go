package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// ActivityStore is the append-only persistence contract for formatted event
// summaries.
type ActivityStore interface {
	// Append assigns the insertion timestamp and durably persists the
	// summary. The write is atomic: either the full entry becomes visible
	// or nothing does.
	Append(ctx context.Context, formatted string) (ActivityEntry, error)

	// Recent returns up to limit formatted summaries, most recent first,
	// ties broken by reverse insertion order. limit 0 yields an empty
	// slice; negative limits are rejected.
	Recent(ctx context.Context, limit int) ([]string, error)
}

// SignatureVerifier authenticates a raw webhook body against its signature
// header. Implementations are pure functions of their inputs.
type SignatureVerifier interface {
	Verify(ctx context.Context, body []byte, signatureHeader string) error
}
