package db

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/roasbeef/modqueue/internal/db/sqlc"
	"github.com/stretchr/testify/require"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	sqliteStore, err := NewSqliteStore(&SqliteConfig{
		DatabaseFileName: dbPath,
	}, log)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqliteStore.Close()
	})

	return sqliteStore.Store
}

// insertReviewable creates a reviewable directly through the query layer.
func insertReviewable(t *testing.T, store *Store, payload string,
	status int64) sqlc.Reviewable {

	t.Helper()

	rev, err := store.Queries().CreateReviewable(
		context.Background(), sqlc.CreateReviewableParams{
			Type:                  "reviewable_user",
			Status:                status,
			CreatedByID:           1,
			ReviewableByModerator: 1,
			Payload: sql.NullString{
				String: payload,
				Valid:  payload != "",
			},
		})
	require.NoError(t, err)

	return rev
}

// TestMigrationsApply verifies a fresh database migrates to the latest
// version and seeds the system user.
func TestMigrationsApply(t *testing.T) {
	store := testDB(t)

	system, err := store.Queries().GetUserByUsername(
		context.Background(), "system",
	)
	require.NoError(t, err)
	require.EqualValues(t, 1, system.Admin)
}

// TestQueriesRoundTrip exercises the generated query layer directly.
func TestQueriesRoundTrip(t *testing.T) {
	store := testDB(t)
	ctx := context.Background()

	rev := insertReviewable(t, store, `{"note":"spam"}`, 0)
	require.NotZero(t, rev.ID)
	require.Equal(t, int64(0), rev.Status)

	got, err := store.Queries().GetReviewable(ctx, rev.ID)
	require.NoError(t, err)
	require.Equal(t, rev.Payload, got.Payload)

	err = store.Queries().UpdateReviewableStatus(
		ctx, sqlc.UpdateReviewableStatusParams{
			Status:    1,
			UpdatedAt: got.UpdatedAt,
			ID:        rev.ID,
		})
	require.NoError(t, err)

	count, err := store.Queries().CountReviewablesByStatus(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

// TestWithTx verifies the transaction helper commits and rolls back.
func TestWithTx(t *testing.T) {
	store := testDB(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(ctx context.Context,
		q *sqlc.Queries) error {
		_, err := q.CreateReviewable(ctx, sqlc.CreateReviewableParams{
			Type:                  "reviewable_user",
			CreatedByID:           1,
			ReviewableByModerator: 1,
		})
		return err
	})
	require.NoError(t, err)

	count, err := store.Queries().CountReviewablesByStatus(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
