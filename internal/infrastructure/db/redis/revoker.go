package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker invalidates outstanding bearer tokens via Redis.
// Key format: revoked:<user_id>, value the unix second of the revocation.
// Tokens issued at or before that second are refused; tokens issued later
// (a fresh login) pass. The entry expires once every token issued before
// the revocation has itself expired.
type TokenRevoker struct {
	client *redis.Client
}

// NewTokenRevoker creates a TokenRevoker wrapping the given Redis client.
func NewTokenRevoker(client *redis.Client) *TokenRevoker {
	return &TokenRevoker{client: client}
}

// Revoke marks every token issued to userID up to now as invalid for ttl.
func (t *TokenRevoker) Revoke(ctx context.Context, userID string, ttl time.Duration) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	return t.client.Set(ctx, t.key(userID), now, ttl).Err()
}

// RevokedAt returns the revocation cut-off for userID, or the zero time
// when none is stored.
func (t *TokenRevoker) RevokedAt(ctx context.Context, userID string) (time.Time, error) {
	val, err := t.client.Get(ctx, t.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("revocation check: %w", err)
	}

	sec, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("revocation check: malformed entry for %s: %w", userID, err)
	}
	return time.Unix(sec, 0), nil
}

func (t *TokenRevoker) key(userID string) string {
	return "revoked:" + userID
}
