// Package flash carries one-shot status messages across a redirect
// boundary. Messages are keyed by the caller's session token in Redis and
// are removed the first time they are read, so a flash set during a
// redirect is visible on exactly the next rendered page.
package flash

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefixes under the session token. Success and error are stored as
// separate keys so either can be set without touching the other.
const (
	successKeyPrefix = "flash:success:"
	errorKeyPrefix   = "flash:error:"
)

// flashTTL bounds how long an unread flash survives. A flash is normally
// consumed by the very next request; the TTL only cleans up after
// abandoned redirects.
const flashTTL = 5 * time.Minute

// Messages holds the drained flash state for one render.
type Messages struct {
	Success string
	Error   string
}

// Store reads and writes flash messages in Redis.
type Store struct {
	redis *redis.Client
}

// NewStore creates a flash store on the shared Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{redis: rdb}
}

// SetSuccess stores a one-shot success message for the given session token.
func (s *Store) SetSuccess(ctx context.Context, token, msg string) error {
	if err := s.redis.Set(ctx, successKeyPrefix+token, msg, flashTTL).Err(); err != nil {
		return fmt.Errorf("storing success flash: %w", err)
	}
	return nil
}

// SetError stores a one-shot error message for the given session token.
func (s *Store) SetError(ctx context.Context, token, msg string) error {
	if err := s.redis.Set(ctx, errorKeyPrefix+token, msg, flashTTL).Err(); err != nil {
		return fmt.Errorf("storing error flash: %w", err)
	}
	return nil
}

// Pop returns and clears both flash fields for the given session token.
// GETDEL makes read-and-clear a single atomic operation per field, so a
// message is returned at most once even under concurrent renders.
func (s *Store) Pop(ctx context.Context, token string) (Messages, error) {
	var msgs Messages

	success, err := s.redis.GetDel(ctx, successKeyPrefix+token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return msgs, fmt.Errorf("draining success flash: %w", err)
	}
	msgs.Success = success

	errMsg, err := s.redis.GetDel(ctx, errorKeyPrefix+token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return msgs, fmt.Errorf("draining error flash: %w", err)
	}
	msgs.Error = errMsg

	return msgs, nil
}
