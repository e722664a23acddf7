package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vpopov/authgate/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// uniqueViolation is the postgres error code for unique constraint failures.
const uniqueViolation = "23505"

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new user. The unique index on username resolves
// concurrent check-then-insert races: the loser gets model.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (public_id, username, password_hash, is_admin)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, public_id, username, password_hash, is_admin, created_at, updated_at`

	var savedUser model.User
	err := r.db.QueryRowContext(ctx, query,
		user.PublicID, user.Username, user.PasswordHash, user.IsAdmin,
	).Scan(
		&savedUser.ID, &savedUser.PublicID, &savedUser.Username, &savedUser.PasswordHash,
		&savedUser.IsAdmin, &savedUser.CreatedAt, &savedUser.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	query := `SELECT id, public_id, username, password_hash, is_admin, created_at, updated_at
			  FROM users WHERE username = $1`

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.PublicID, &user.Username, &user.PasswordHash,
		&user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, public_id, username, password_hash, is_admin, created_at, updated_at
			  FROM users WHERE public_id = $1`

	err := r.db.QueryRowContext(ctx, query, publicID).Scan(
		&user.ID, &user.PublicID, &user.Username, &user.PasswordHash,
		&user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by public id: %w", err)
	}

	return user, nil
}

// SetAdmin grants the admin role. Idempotent: promoting an already-admin
// user matches the row and changes nothing.
func (r *UserRepository) SetAdmin(ctx context.Context, publicID uuid.UUID) error {
	query := `UPDATE users SET is_admin = TRUE, updated_at = NOW() WHERE public_id = $1`

	res, err := r.db.ExecContext(ctx, query, publicID)
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}
