package sqlstore

import "github.com/goliatone/go-repo-activity/core"

var (
	_ core.ActivityStore = (*ActivityStore)(nil)
	_ core.ActivityStore = (*CachedActivityFeed)(nil)
)
