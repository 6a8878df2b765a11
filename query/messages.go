// Package query exposes the read side of the activity feed as go-command
// messages and handlers.
package query

import (
	"github.com/goliatone/go-repo-activity/core"
)

const TypeRecentActivity = "activity.query.feed.recent"

// RecentActivityMessage asks for the newest formatted entries. A zero limit
// falls back to core.DefaultRecentLimit.
type RecentActivityMessage struct {
	Limit int
}

func (RecentActivityMessage) Type() string { return TypeRecentActivity }

func (m RecentActivityMessage) Validate() error {
	if m.Limit < 0 {
		return queryValidationError("limit", "limit must be >= 0")
	}
	return nil
}

// EffectiveLimit resolves the zero-value default.
func (m RecentActivityMessage) EffectiveLimit() int {
	if m.Limit == 0 {
		return core.DefaultRecentLimit
	}
	return m.Limit
}
