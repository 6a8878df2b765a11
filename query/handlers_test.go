package query

import (
	"context"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-repo-activity/core"
)

type stubActivityReader struct {
	entries   []string
	err       error
	lastLimit int
}

func (s *stubActivityReader) Recent(_ context.Context, limit int) ([]string, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func TestRecentActivityMessage_ValidateRejectsNegativeLimit(t *testing.T) {
	err := (RecentActivityMessage{Limit: -1}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rich.Code)
	}
}

func TestRecentActivityQuery_ZeroLimitUsesDefault(t *testing.T) {
	reader := &stubActivityReader{entries: []string{"a", "b"}}
	q := NewRecentActivityQuery(reader)

	entries, err := q.Query(context.Background(), RecentActivityMessage{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if reader.lastLimit != core.DefaultRecentLimit {
		t.Fatalf("expected default limit %d, got %d", core.DefaultRecentLimit, reader.lastLimit)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestRecentActivityQuery_ExplicitLimitPassedThrough(t *testing.T) {
	reader := &stubActivityReader{}
	q := NewRecentActivityQuery(reader)

	if _, err := q.Query(context.Background(), RecentActivityMessage{Limit: 7}); err != nil {
		t.Fatalf("query: %v", err)
	}
	if reader.lastLimit != 7 {
		t.Fatalf("expected limit 7, got %d", reader.lastLimit)
	}
}

func TestRecentActivityQuery_NilEntriesBecomeEmptySlice(t *testing.T) {
	q := NewRecentActivityQuery(&stubActivityReader{entries: nil})

	entries, err := q.Query(context.Background(), RecentActivityMessage{Limit: 3})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if entries == nil {
		t.Fatalf("expected non-nil slice")
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty slice, got %v", entries)
	}
}

func TestRecentActivityQuery_NilReaderReturnsRichError(t *testing.T) {
	var q *RecentActivityQuery
	_, err := q.Query(context.Background(), RecentActivityMessage{})
	if err == nil {
		t.Fatalf("expected dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}
