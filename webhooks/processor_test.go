package webhooks

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repo-activity/core"
)

type memoryActivityStore struct {
	entries []core.ActivityEntry
	failure error
}

func (s *memoryActivityStore) Append(_ context.Context, formatted string) (core.ActivityEntry, error) {
	if s.failure != nil {
		return core.ActivityEntry{}, s.failure
	}
	entry := core.ActivityEntry{
		Formatted:  formatted,
		InsertedAt: time.Now().UTC(),
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *memoryActivityStore) Recent(_ context.Context, limit int) ([]string, error) {
	out := []string{}
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i].Formatted)
	}
	return out, nil
}

type stubVerifier struct {
	err error
}

func (v stubVerifier) Verify(context.Context, []byte, string) error {
	return v.err
}

func TestProcessor_StoresActionableDelivery(t *testing.T) {
	store := &memoryActivityStore{}
	processor := NewProcessor(stubVerifier{}, store, nil)

	result, err := processor.Process(context.Background(), core.InboundRequest{
		EventType: "push",
		Body:      []byte(pushPayload),
	})
	if err != nil {
		t.Fatalf("process push: %v", err)
	}
	if result.Outcome != core.OutcomeStored || result.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(store.entries) != 1 {
		t.Fatalf("expected one stored entry, got %d", len(store.entries))
	}
	want := `"alice" pushed to "main" on 1st April 2021 - 09:30 PM UTC`
	if store.entries[0].Formatted != want {
		t.Fatalf("stored %q, want %q", store.entries[0].Formatted, want)
	}
}

func TestProcessor_IgnoredDeliveryLeavesStoreUntouched(t *testing.T) {
	store := &memoryActivityStore{}
	processor := NewProcessor(stubVerifier{}, store, nil)

	result, err := processor.Process(context.Background(), core.InboundRequest{
		EventType: "pull_request",
		Body:      []byte(pullRequestPayload("closed", false)),
	})
	if err != nil {
		t.Fatalf("process ignored delivery: %v", err)
	}
	if result.Outcome != core.OutcomeIgnored || result.StatusCode != http.StatusOK {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(store.entries) != 0 {
		t.Fatalf("expected no store writes, got %d", len(store.entries))
	}
}

func TestProcessor_BadSignatureNeverReachesStore(t *testing.T) {
	store := &memoryActivityStore{}
	verifier := stubVerifier{err: badSignatureError("webhooks: signature verification failed")}
	processor := NewProcessor(verifier, store, nil)

	_, err := processor.Process(context.Background(), core.InboundRequest{
		EventType: "push",
		Body:      []byte(pushPayload),
	})
	if err == nil {
		t.Fatalf("expected signature rejection")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Code != http.StatusForbidden {
		t.Fatalf("expected 403 envelope, got %v", err)
	}
	if len(store.entries) != 0 {
		t.Fatalf("expected no store writes after rejection")
	}
}

func TestProcessor_MalformedPayloadIsRejected(t *testing.T) {
	store := &memoryActivityStore{}
	processor := NewProcessor(stubVerifier{}, store, nil)

	_, err := processor.Process(context.Background(), core.InboundRequest{
		EventType: "push",
		Body:      []byte(`{"ref": "refs/heads/main"}`),
	})
	if err == nil {
		t.Fatalf("expected malformed payload rejection")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 envelope, got %v", err)
	}
	if len(store.entries) != 0 {
		t.Fatalf("expected no store writes after rejection")
	}
}

func TestProcessor_StoreFailureSurfacesAsUnavailable(t *testing.T) {
	store := &memoryActivityStore{failure: errors.New("connection refused")}
	processor := NewProcessor(stubVerifier{}, store, nil)

	_, err := processor.Process(context.Background(), core.InboundRequest{
		EventType: "push",
		Body:      []byte(pushPayload),
	})
	if err == nil {
		t.Fatalf("expected store failure to surface")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 envelope, got %v", err)
	}
}
