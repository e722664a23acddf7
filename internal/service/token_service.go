package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vpopov/authgate/internal/logger"
	"github.com/vpopov/authgate/internal/model"
)

// TokenService provides high-level operations over a token's lifecycle.
// It composes the TokenManager with the revocation blacklist and the user
// store: the manager alone only checks signature and expiry.
type TokenService struct {
	manager model.TokenManager
	revoked model.RevokedTokenStore
	users   model.UserStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, revoked model.RevokedTokenStore, users model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, revoked: revoked, users: users, logger: logger}
}

// Issue creates a session token bound to publicID.
func (s *TokenService) Issue(ctx context.Context, publicID uuid.UUID) (string, error) {
	tokenString, err := s.manager.Generate(publicID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tokenString, nil
}

// Authorize validates a presented token end to end: presence, signature and
// expiry, revocation, and subject resolution, in that order. The internal
// failure reason is logged but callers surface a uniform unauthorized result.
func (s *TokenService) Authorize(ctx context.Context, tokenString string) (model.User, error) {
	if tokenString == "" {
		return model.User{}, model.ErrMissingToken
	}

	publicID, err := s.manager.Parse(tokenString)
	if err != nil {
		s.logger.Info("Token service: token rejected",
			"reason", err.Error())
		return model.User{}, model.ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, tokenString)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		s.logger.Info("Token service: token rejected",
			"reason", "revoked",
			"public_id", publicID)
		return model.User{}, model.ErrTokenRevoked
	}

	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Info("Token service: token rejected",
				"reason", "subject does not resolve",
				"public_id", publicID)
			return model.User{}, model.ErrInvalidToken
		}
		return model.User{}, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	return user, nil
}

// Revoke places a token on the blacklist, permanently ending its session
// regardless of remaining TTL. Revoking twice is a no-op.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	if err := s.revoked.Revoke(ctx, tokenString); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.logger.Info("Token service: token revoked")
	return nil
}

// PruneBefore drops blacklist entries revoked before cutoff. Entries older
// than the token TTL are provably dead weight; skipping the sweep entirely
// is safe.
func (s *TokenService) PruneBefore(ctx context.Context, cutoff time.Time) error {
	pruned, err := s.revoked.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune revoked tokens: %w", err)
	}

	if pruned > 0 {
		s.logger.Info("Token service: pruned dead blacklist entries",
			"count", pruned)
	}
	return nil
}
