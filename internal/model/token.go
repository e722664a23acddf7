package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates signed session tokens.
type TokenManager interface {
	Generate(publicID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}

// RevokedTokenStore persists the token blacklist. Revoke is idempotent:
// revoking an already-revoked token is a no-op.
type RevokedTokenStore interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
