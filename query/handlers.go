package query

import (
	"context"
)

// ActivityReader is the read contract the feed query drives. Both the SQL
// store and its cached wrapper satisfy it.
type ActivityReader interface {
	Recent(ctx context.Context, limit int) ([]string, error)
}

type RecentActivityQuery struct {
	reader ActivityReader
}

func NewRecentActivityQuery(reader ActivityReader) *RecentActivityQuery {
	return &RecentActivityQuery{reader: reader}
}

func (q *RecentActivityQuery) Query(ctx context.Context, msg RecentActivityMessage) ([]string, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: activity reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	entries, err := q.reader.Recent(ctx, msg.EffectiveLimit())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []string{}
	}
	return entries, nil
}
