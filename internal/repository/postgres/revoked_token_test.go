package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRevokedTokenRepository(t *testing.T) {
	db := &Connection{}
	repo := NewRevokedTokenRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestRevokedTokenRepository_Revoke(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewRevokedTokenRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO revoked_tokens")).
		WithArgs("token-a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Revoke(context.Background(), "token-a"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokedTokenRepository_Revoke_Duplicate(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewRevokedTokenRepository(conn)

	// ON CONFLICT DO NOTHING reports zero affected rows, not an error.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO revoked_tokens")).
		WithArgs("token-a").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Revoke(context.Background(), "token-a"))
}

func TestRevokedTokenRepository_IsRevoked(t *testing.T) {
	tests := []struct {
		name    string
		revoked bool
	}{
		{name: "revoked token", revoked: true},
		{name: "unknown token", revoked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			repo := NewRevokedTokenRepository(conn)

			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
				WithArgs("token-a").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.revoked))

			revoked, err := repo.IsRevoked(context.Background(), "token-a")
			require.NoError(t, err)
			assert.Equal(t, tt.revoked, revoked)
		})
	}
}

func TestRevokedTokenRepository_DeleteExpiredBefore(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewRevokedTokenRepository(conn)

	cutoff := time.Now().Add(-time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM revoked_tokens WHERE revoked_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	pruned, err := repo.DeleteExpiredBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pruned)
}
