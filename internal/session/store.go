// Package session keeps per-user short-lived state linking the last
// submitted URL to its resolved metadata.
package session

import (
	"context"
	"time"

	"github.com/clipfetch/clipfetch/internal/extractor"
)

// Session is the per-user record. ActiveURL and Meta are always written
// as a pair from the same resolution, never stale-paired.
type Session struct {
	ActiveURL     string             `json:"active_url" db:"active_url"`
	Meta          extractor.Metadata `json:"meta" db:"-"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
	LastTouchedAt time.Time          `json:"last_touched_at" db:"last_touched_at"`
}

// Store is a keyed session service. Writes for the same user are
// last-write-wins; a missing record reads back as absent, not an error.
type Store interface {
	Put(ctx context.Context, userID int64, url string, meta extractor.Metadata) error
	Get(ctx context.Context, userID int64) (Session, bool, error)
	Delete(ctx context.Context, userID int64) error
	// Count reports the number of live sessions, for diagnostics.
	Count(ctx context.Context) (int, error)
}
