package actiontoken

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Consume(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(sqlx.NewDb(db, "postgres"))
	expires := time.Date(2025, 10, 15, 12, 15, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO used_action_tokens \(jti,expires_at\) VALUES \(\$1,\$2\) ON CONFLICT \(jti\) DO NOTHING`).
		WithArgs("jti-1", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO used_action_tokens`).
		WithArgs("jti-1", expires).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Consume(context.Background(), "jti-1", expires))
	assert.ErrorIs(t, repo.Consume(context.Background(), "jti-1", expires), ErrAlreadyUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(sqlx.NewDb(db, "postgres"))
	now := time.Date(2025, 10, 15, 3, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM used_action_tokens WHERE expires_at < \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 5))

	deleted, err := repo.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}
