package ports

import (
	"context"
	"time"
)

// TokenRevoker invalidates tokens issued before a cut-off, e.g. after
// account deletion or logout. Tokens issued after the cut-off stay valid,
// so a user can log back in right away. Implementations only need to keep
// the cut-off visible for as long as a token issued before it could still
// be alive.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID string, ttl time.Duration) error
	// RevokedAt returns the revocation cut-off for userID, or the zero
	// time when no revocation is in effect.
	RevokedAt(ctx context.Context, userID string) (time.Time, error)
}
