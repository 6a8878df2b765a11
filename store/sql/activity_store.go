package sqlstore

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-repo-activity/core"
)

// ActivityStore persists formatted event summaries append-only in the
// repo_events table.
type ActivityStore struct {
	repo repository.Repository[*repoEventRecord]
	now  func() time.Time
}

func NewActivityStore(db *bun.DB) (*ActivityStore, error) {
	if db == nil {
		return nil, storeConfigError("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*repoEventRecord](db, repoEventHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, storeUnavailable(err, "sqlstore: invalid repo event repository wiring")
		}
	}
	return &ActivityStore{
		repo: repo,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

// NewActivityStoreFromPersistence builds the store from a persistence client
// or anything else resolveBunDB accepts.
func NewActivityStoreFromPersistence(client any) (*ActivityStore, error) {
	db, err := resolveBunDB(client)
	if err != nil {
		return nil, err
	}
	return NewActivityStore(db)
}

func (s *ActivityStore) Append(ctx context.Context, formatted string) (core.ActivityEntry, error) {
	if s == nil || s.repo == nil {
		return core.ActivityEntry{}, storeConfigError("sqlstore: activity store is not configured")
	}
	if strings.TrimSpace(formatted) == "" {
		return core.ActivityEntry{}, goerrors.New(
			"sqlstore: formatted summary is required",
			goerrors.CategoryBadInput,
		).WithTextCode(core.ErrorCodeBadInput)
	}

	record := &repoEventRecord{
		ID:         uuid.NewString(),
		Formatted:  formatted,
		InsertedAt: s.now(),
	}
	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.ActivityEntry{}, storeUnavailable(err, "sqlstore: append repo event")
	}
	return repoEventToDomain(stored), nil
}

func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]string, error) {
	if s == nil || s.repo == nil {
		return nil, storeConfigError("sqlstore: activity store is not configured")
	}
	if limit < 0 {
		return nil, goerrors.New(
			"sqlstore: recent limit must not be negative",
			goerrors.CategoryBadInput,
		).WithTextCode(core.ErrorCodeBadInput)
	}
	if limit == 0 {
		return []string{}, nil
	}

	records, _, err := s.repo.List(ctx,
		repository.OrderBy("inserted_at DESC"),
		repository.OrderBy("seq DESC"),
		repository.SelectPaginate(limit, 0),
	)
	if err != nil {
		return nil, storeUnavailable(err, "sqlstore: list recent repo events")
	}

	summaries := make([]string, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		summaries = append(summaries, record.Formatted)
	}
	return summaries, nil
}

func repoEventToDomain(record *repoEventRecord) core.ActivityEntry {
	if record == nil {
		return core.ActivityEntry{}
	}
	return core.ActivityEntry{
		ID:         strings.TrimSpace(record.ID),
		Formatted:  record.Formatted,
		InsertedAt: record.InsertedAt.UTC(),
	}
}
