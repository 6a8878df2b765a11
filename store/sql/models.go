package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

// repoEventRecord is the persisted activity entry. seq is assigned by the
// database on insert and encodes arrival order; it breaks inserted_at ties so
// later inserts always sort first. Records are append-only: no update or
// delete path exists anywhere in this package.
type repoEventRecord struct {
	bun.BaseModel `bun:"table:repo_events,alias:re"`

	ID         string    `bun:"id,pk"`
	Seq        int64     `bun:"seq,scanonly"`
	Formatted  string    `bun:"formatted,notnull"`
	InsertedAt time.Time `bun:"inserted_at,notnull"`
}
