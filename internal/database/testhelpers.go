package database

import (
	"context"
	"testing"

	"github.com/aaron7/pomodoro/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestUser creates a user with a default password for testing.
func CreateTestUser(t *testing.T, pool *pgxpool.Pool, name string) *domain.User {
	t.Helper()

	repo := NewUserRepo(pool)
	user, err := repo.Create(context.Background(), name, "secret")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	return user
}

// CreateTestEntry inserts an entry and optionally closes it. Pass a nil end
// to leave it open.
func CreateTestEntry(t *testing.T, pool *pgxpool.Pool, userID, start int64, end *int64, typeID int64) int64 {
	t.Helper()

	repo := NewEntryRepo(pool)
	ctx := context.Background()

	id, err := repo.Insert(ctx, userID, start, typeID)
	require.NoError(t, err)

	if end != nil {
		rows, err := repo.SetEnd(ctx, id, userID, *end)
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)
	}

	return id
}

func int64Ptr(v int64) *int64 { return &v }
