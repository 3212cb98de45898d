package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roasbeef/modqueue/internal/db/sqlc"
)

// SearchResult represents a reviewable search hit with its FTS rank.
type SearchResult struct {
	sqlc.Reviewable
	Rank float64
}

// SearchReviewables performs a full-text search across reviewable payloads
// using FTS5. The query uses FTS5 query syntax (e.g., "word1 word2" for
// AND, "word1 OR word2" for OR).
func SearchReviewables(ctx context.Context, dbConn *sql.DB, query string,
	limit int) ([]SearchResult, error) {

	rows, err := dbConn.QueryContext(ctx, `
		SELECT r.id, r.type, r.status, r.created_by_id,
		       r.reviewable_by_moderator, r.reviewable_by_group_id,
		       r.claimed_by_id, r.category_id, r.target_id,
		       r.target_type, r.payload, r.created_at, r.updated_at,
		       fts.rank
		FROM reviewables r
		JOIN reviewables_fts fts ON r.id = fts.rowid
		WHERE reviewables_fts MATCH ?
		ORDER BY fts.rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search reviewables: %w", err)
	}
	defer rows.Close()

	return scanSearchResults(rows)
}

// SearchReviewablesByStatus performs a full-text search restricted to
// reviewables at the given status.
func SearchReviewablesByStatus(ctx context.Context, dbConn *sql.DB,
	query string, status int64, limit int) ([]SearchResult, error) {

	rows, err := dbConn.QueryContext(ctx, `
		SELECT r.id, r.type, r.status, r.created_by_id,
		       r.reviewable_by_moderator, r.reviewable_by_group_id,
		       r.claimed_by_id, r.category_id, r.target_id,
		       r.target_type, r.payload, r.created_at, r.updated_at,
		       fts.rank
		FROM reviewables r
		JOIN reviewables_fts fts ON r.id = fts.rowid
		WHERE reviewables_fts MATCH ? AND r.status = ?
		ORDER BY fts.rank
		LIMIT ?
	`, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search reviewables by "+
			"status: %w", err)
	}
	defer rows.Close()

	return scanSearchResults(rows)
}

// SearchReviewables performs a full-text search across reviewable payloads
// using FTS5.
func (s *Store) SearchReviewables(ctx context.Context, query string,
	limit int) ([]SearchResult, error) {

	return SearchReviewables(ctx, s.db, query, limit)
}

// SearchReviewablesByStatus performs a full-text search restricted to
// reviewables at the given status.
func (s *Store) SearchReviewablesByStatus(ctx context.Context, query string,
	status int64, limit int) ([]SearchResult, error) {

	return SearchReviewablesByStatus(ctx, s.db, query, status, limit)
}

// scanSearchResults drains a search query's rows.
func scanSearchResults(rows *sql.Rows) ([]SearchResult, error) {

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		err := rows.Scan(
			&r.ID, &r.Type, &r.Status, &r.CreatedByID,
			&r.ReviewableByModerator, &r.ReviewableByGroupID,
			&r.ClaimedByID, &r.CategoryID, &r.TargetID,
			&r.TargetType, &r.Payload, &r.CreatedAt, &r.UpdatedAt,
			&r.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search "+
				"result: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w",
			err)
	}

	return results, nil
}
