package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clipfetch/clipfetch/internal/extractor"
)

const redisKeyPrefix = "session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore constructs a Store backed by Redis for horizontally
// scaled deployments. A positive ttl makes session expiry explicit;
// zero keeps sessions until overwritten.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl, now: time.Now}
}

func (r *redisStore) Put(ctx context.Context, userID int64, url string, meta extractor.Metadata) error {
	now := r.now()
	created := now
	if prev, ok, err := r.Get(ctx, userID); err == nil && ok {
		created = prev.CreatedAt
	}

	raw, err := json.Marshal(Session{
		ActiveURL:     url,
		Meta:          meta,
		CreatedAt:     created,
		LastTouchedAt: now,
	})
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(userID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("session: put: %w", err)
	}
	return nil
}

func (r *redisStore) Get(ctx context.Context, userID int64) (Session, bool, error) {
	raw, err := r.client.Get(ctx, redisKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("session: get: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, false, fmt.Errorf("session: unmarshal: %w", err)
	}
	return s, true, nil
}

func (r *redisStore) Delete(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, redisKey(userID)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

func (r *redisStore) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("session: count: %w", err)
		}
		total += len(keys)
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}

func redisKey(userID int64) string {
	return fmt.Sprintf("%s%d", redisKeyPrefix, userID)
}
