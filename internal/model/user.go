package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (User, error)
	SetAdmin(ctx context.Context, publicID uuid.UUID) error
}

// User represents a stored user with authentication material.
// ID is the store-assigned key and never leaves the persistence layer;
// PublicID is the client-facing identifier carried inside tokens.
type User struct {
	ID           int64
	PublicID     uuid.UUID
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
