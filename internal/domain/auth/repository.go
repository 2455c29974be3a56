package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository tracks issued refresh tokens so logout can revoke
// them server-side
type RefreshTokenRepository interface {
	Create(ctx context.Context, token, userID string, expiresAt time.Time) error
	// IsRevoked reports whether the token was revoked or was never issued
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	// DeleteExpired prunes tokens whose expiry is in the past
	DeleteExpired(ctx context.Context) error
}
