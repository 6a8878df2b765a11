package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-repo-activity/command"
	"github.com/goliatone/go-repo-activity/core"
	"github.com/goliatone/go-repo-activity/query"
)

const (
	headerEvent     = "X-GitHub-Event"
	headerSignature = "X-Hub-Signature"
	headerDelivery  = "X-GitHub-Delivery"
)

// GitHub caps webhook payloads at 25 MB; deliveries above that never carry a
// valid signature, so anything larger is rejected outright rather than read
// partially.
const defaultMaxBodyBytes int64 = 25 << 20

type statusResponse struct {
	Status string `json:"status"`
}

// Handlers adapts the command and query buses to HTTP. The webhook route
// collects the pipeline outcome through the go-command result collector.
type Handlers struct {
	Ingest       gocmd.Commander[command.IngestWebhookMessage]
	RecentFeed   gocmd.Querier[query.RecentActivityMessage, []string]
	Logger       core.Logger
	RecentLimit  int
	MaxBodyBytes int64
}

func (h *Handlers) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.Ingest == nil {
		writeError(w, h.Logger, goerrors.New(
			"transport: ingest command is not configured",
			goerrors.CategoryInternal,
		).WithCode(http.StatusInternalServerError).WithTextCode(core.ErrorCodeInternal))
		return
	}

	maxBytes := h.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, h.Logger, goerrors.New(
				fmt.Sprintf("transport: webhook body exceeds %d bytes", tooLarge.Limit),
				goerrors.CategoryBadInput,
			).WithCode(http.StatusRequestEntityTooLarge).WithTextCode(core.ErrorCodeBadInput))
			return
		}
		writeError(w, h.Logger, goerrors.Wrap(
			err,
			goerrors.CategoryBadInput,
			"transport: read webhook body",
		).WithCode(http.StatusBadRequest).WithTextCode(core.ErrorCodeBadInput))
		return
	}

	msg := command.IngestWebhookMessage{
		Request: core.InboundRequest{
			EventType:       r.Header.Get(headerEvent),
			SignatureHeader: r.Header.Get(headerSignature),
			DeliveryID:      r.Header.Get(headerDelivery),
			Body:            body,
		},
	}

	collector := gocmd.NewResult[core.InboundResult]()
	ctx := gocmd.ContextWithResult(r.Context(), collector)
	if err := h.Ingest.Execute(ctx, msg); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	result, ok := collector.Load()
	if !ok {
		writeError(w, h.Logger, goerrors.New(
			"transport: ingestion produced no result",
			goerrors.CategoryInternal,
		).WithCode(http.StatusInternalServerError).WithTextCode(core.ErrorCodeInternal))
		return
	}

	status := result.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	writeJSON(w, status, statusResponse{Status: result.Outcome})
}

func (h *Handlers) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.RecentFeed == nil {
		writeError(w, h.Logger, goerrors.New(
			"transport: recent feed query is not configured",
			goerrors.CategoryInternal,
		).WithCode(http.StatusInternalServerError).WithTextCode(core.ErrorCodeInternal))
		return
	}

	entries, err := h.RecentFeed.Query(r.Context(), query.RecentActivityMessage{Limit: h.RecentLimit})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if entries == nil {
		entries = []string{}
	}
	writeJSON(w, http.StatusOK, entries)
}
