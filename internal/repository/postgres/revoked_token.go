package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/vpopov/authgate/internal/model"
)

var _ model.RevokedTokenStore = (*RevokedTokenRepository)(nil)

type RevokedTokenRepository struct {
	db *Connection
}

func NewRevokedTokenRepository(db *Connection) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

// Revoke inserts a token into the blacklist. Re-revoking is a no-op.
func (r *RevokedTokenRepository) Revoke(ctx context.Context, token string) error {
	const query = `INSERT INTO revoked_tokens (token) VALUES ($1) ON CONFLICT (token) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)`

	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&revoked); err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}

// DeleteExpiredBefore prunes blacklist entries older than cutoff. Entries for
// tokens past their natural expiry are dead weight; correctness never
// depends on this running.
func (r *RevokedTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM revoked_tokens WHERE revoked_at < $1`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune revoked tokens: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
