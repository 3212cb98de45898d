package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSearchReviewables verifies FTS matching over payloads.
func TestSearchReviewables(t *testing.T) {
	store := testDB(t)
	ctx := context.Background()

	spam := insertReviewable(t, store,
		`{"note":"account looks like spam bot"}`, 0)
	insertReviewable(t, store, `{"note":"legitimate signup"}`, 0)

	results, err := store.SearchReviewables(ctx, "spam", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, spam.ID, results[0].ID)

	results, err = store.SearchReviewables(ctx, "signup OR spam", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = store.SearchReviewables(ctx, "bandersnatch", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}

// TestSearchReviewablesByStatus verifies the status filter.
func TestSearchReviewablesByStatus(t *testing.T) {
	store := testDB(t)
	ctx := context.Background()

	insertReviewable(t, store, `{"note":"spam pending"}`, 0)
	approved := insertReviewable(t, store, `{"note":"spam approved"}`, 1)

	results, err := store.SearchReviewablesByStatus(ctx, "spam", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, approved.ID, results[0].ID)
}

// TestSearchIndexFollowsUpdates verifies the FTS triggers keep the index in
// sync across updates and deletes.
func TestSearchIndexFollowsUpdates(t *testing.T) {
	store := testDB(t)
	ctx := context.Background()

	rev := insertReviewable(t, store, `{"note":"original wording"}`, 0)

	results, err := store.SearchReviewables(ctx, "original", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = store.DB().ExecContext(ctx,
		`UPDATE reviewables SET payload = ? WHERE id = ?`,
		`{"note":"revised wording"}`, rev.ID)
	require.NoError(t, err)

	results, err = store.SearchReviewables(ctx, "original", 10)
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = store.SearchReviewables(ctx, "revised", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = store.DB().ExecContext(ctx,
		`DELETE FROM reviewables WHERE id = ?`, rev.ID)
	require.NoError(t, err)

	results, err = store.SearchReviewables(ctx, "revised", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}
