package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vpopov/authgate/internal/logger"
	"github.com/vpopov/authgate/internal/model"
)

// PasswordHasher hashes and verifies password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Auth implements registration, login and role promotion.
type Auth struct {
	users        model.UserStore
	hasher       PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(users model.UserStore, hasher PasswordHasher, tokenService *TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		users:        users,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates a new non-admin user. Duplicate usernames fail with
// model.ErrConflict; the store's unique index makes the check-then-insert
// atomic under concurrent registrations.
func (a *Auth) Register(ctx context.Context, username, password string) (model.User, error) {
	if username == "" || password == "" {
		return model.User{}, model.ErrInvalidInput
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		PublicID:     uuid.New(),
		Username:     username,
		PasswordHash: digest,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			a.logger.Info("Auth service: username already taken",
				"username", username)
			return model.User{}, model.ErrConflict
		}
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username,
		"public_id", user.PublicID)

	return user, nil
}

// Login verifies credentials and issues a session token bound to the user's
// public ID. The user-absent and password-mismatch cases stay distinct here
// for the contractual status codes; response bodies keep generic wording.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: login for unknown user",
				"username", username)
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: password mismatch",
			"username", username)
		return "", model.ErrInvalidCredentials
	}

	tokenString, err := a.tokenService.Issue(ctx, user.PublicID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login succeeded",
		"username", username,
		"public_id", user.PublicID)

	return tokenString, nil
}

// Promote grants the admin role to the target user. Only admins may promote;
// promoting an already-admin target succeeds and changes nothing.
func (a *Auth) Promote(ctx context.Context, caller model.User, targetPublicID uuid.UUID) error {
	if !caller.IsAdmin {
		a.logger.Info("Auth service: promotion denied",
			"caller", caller.PublicID,
			"target", targetPublicID)
		return model.ErrPermissionDenied
	}

	if err := a.users.SetAdmin(ctx, targetPublicID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to set admin flag: %w", err)
	}

	a.logger.Info("Auth service: user promoted",
		"caller", caller.PublicID,
		"target", targetPublicID)

	return nil
}
