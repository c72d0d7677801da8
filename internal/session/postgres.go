package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clipfetch/clipfetch/internal/extractor"
)

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore constructs a Store backed by the sessions table, for
// deployments where sessions must outlive a single process.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

type sessionRow struct {
	ActiveURL     string    `db:"active_url"`
	Meta          []byte    `db:"meta"`
	CreatedAt     time.Time `db:"created_at"`
	LastTouchedAt time.Time `db:"last_touched_at"`
}

func (p *postgresStore) Put(ctx context.Context, userID int64, url string, meta extractor.Metadata) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("session: marshal metadata: %w", err)
	}

	const q = `
		INSERT INTO sessions (user_id, active_url, meta, created_at, last_touched_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET active_url = EXCLUDED.active_url,
		    meta = EXCLUDED.meta,
		    last_touched_at = NOW()`
	if _, err := p.db.ExecContext(ctx, q, userID, url, raw); err != nil {
		return fmt.Errorf("session: put: %w", err)
	}
	return nil
}

func (p *postgresStore) Get(ctx context.Context, userID int64) (Session, bool, error) {
	var row sessionRow
	const q = `SELECT active_url, meta, created_at, last_touched_at FROM sessions WHERE user_id = $1`
	if err := p.db.GetContext(ctx, &row, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("session: get: %w", err)
	}

	var meta extractor.Metadata
	if len(row.Meta) > 0 {
		if err := json.Unmarshal(row.Meta, &meta); err != nil {
			return Session{}, false, fmt.Errorf("session: unmarshal metadata: %w", err)
		}
	}
	return Session{
		ActiveURL:     row.ActiveURL,
		Meta:          meta,
		CreatedAt:     row.CreatedAt,
		LastTouchedAt: row.LastTouchedAt,
	}, true, nil
}

func (p *postgresStore) Delete(ctx context.Context, userID int64) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

func (p *postgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sessions`); err != nil {
		return 0, fmt.Errorf("session: count: %w", err)
	}
	return n, nil
}
