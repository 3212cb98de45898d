package store

import (
	"context"
	"time"

	"github.com/roasbeef/modqueue/internal/db/sqlc"
)

// =============================================================================
// ReviewableStore implementation for SqlcStore
// =============================================================================

// CreateReviewable creates a new reviewable in the pending status.
func (s *SqlcStore) CreateReviewable(ctx context.Context,
	params CreateReviewableParams,
) (Reviewable, error) {
	return createReviewable(ctx, s.queries, params)
}

// GetReviewable retrieves a reviewable by its ID.
func (s *SqlcStore) GetReviewable(ctx context.Context,
	id int64,
) (Reviewable, error) {
	row, err := s.queries.GetReviewable(ctx, id)
	if err != nil {
		return Reviewable{}, err
	}

	return ReviewableFromSqlc(row)
}

// ListReviewablesByStatus lists all reviewables at the given status.
func (s *SqlcStore) ListReviewablesByStatus(ctx context.Context,
	status int64,
) ([]Reviewable, error) {
	rows, err := s.queries.ListReviewablesByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	return reviewablesFromSqlc(rows)
}

// ListReviewablesByStatusForModerator lists reviewables at the given status
// that carry the reviewable_by_moderator flag.
func (s *SqlcStore) ListReviewablesByStatusForModerator(ctx context.Context,
	status int64,
) ([]Reviewable, error) {
	rows, err := s.queries.ListReviewablesByStatusForModerator(ctx, status)
	if err != nil {
		return nil, err
	}

	return reviewablesFromSqlc(rows)
}

// ListReviewablesByStatusForGroup lists reviewables at the given status
// reviewable by the given group.
func (s *SqlcStore) ListReviewablesByStatusForGroup(ctx context.Context,
	status int64, groupID int64,
) ([]Reviewable, error) {
	rows, err := s.queries.ListReviewablesByStatusForGroup(
		ctx, sqlc.ListReviewablesByStatusForGroupParams{
			Status:              status,
			ReviewableByGroupID: ToSqlcNullInt64(&groupID),
		},
	)
	if err != nil {
		return nil, err
	}

	return reviewablesFromSqlc(rows)
}

// UpdateReviewableStatus sets the status of a reviewable.
func (s *SqlcStore) UpdateReviewableStatus(ctx context.Context,
	id int64, status int64,
) error {
	return s.queries.UpdateReviewableStatus(
		ctx, sqlc.UpdateReviewableStatusParams{
			Status:    status,
			UpdatedAt: time.Now().Unix(),
			ID:        id,
		},
	)
}

// CountReviewablesByStatus counts reviewables at the given status.
func (s *SqlcStore) CountReviewablesByStatus(ctx context.Context,
	status int64,
) (int64, error) {
	return s.queries.CountReviewablesByStatus(ctx, status)
}

// =============================================================================
// ReviewableStore implementation for txSqlcStore
// =============================================================================

// CreateReviewable creates a new reviewable within a transaction.
func (s *txSqlcStore) CreateReviewable(ctx context.Context,
	params CreateReviewableParams,
) (Reviewable, error) {
	return createReviewable(ctx, s.queries, params)
}

// GetReviewable retrieves a reviewable by its ID within a transaction.
func (s *txSqlcStore) GetReviewable(ctx context.Context,
	id int64,
) (Reviewable, error) {
	row, err := s.queries.GetReviewable(ctx, id)
	if err != nil {
		return Reviewable{}, err
	}

	return ReviewableFromSqlc(row)
}

// ListReviewablesByStatus lists reviewables within a transaction.
func (s *txSqlcStore) ListReviewablesByStatus(ctx context.Context,
	status int64,
) ([]Reviewable, error) {
	rows, err := s.queries.ListReviewablesByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	return reviewablesFromSqlc(rows)
}

// ListReviewablesByStatusForModerator lists moderator-reviewable items
// within a transaction.
func (s *txSqlcStore) ListReviewablesByStatusForModerator(ctx context.Context,
	status int64,
) ([]Reviewable, error) {
	rows, err := s.queries.ListReviewablesByStatusForModerator(ctx, status)
	if err != nil {
		return nil, err
	}

	return reviewablesFromSqlc(rows)
}

// ListReviewablesByStatusForGroup lists group-reviewable items within a
// transaction.
func (s *txSqlcStore) ListReviewablesByStatusForGroup(ctx context.Context,
	status int64, groupID int64,
) ([]Reviewable, error) {
	rows, err := s.queries.ListReviewablesByStatusForGroup(
		ctx, sqlc.ListReviewablesByStatusForGroupParams{
			Status:              status,
			ReviewableByGroupID: ToSqlcNullInt64(&groupID),
		},
	)
	if err != nil {
		return nil, err
	}

	return reviewablesFromSqlc(rows)
}

// UpdateReviewableStatus sets the status of a reviewable within a
// transaction.
func (s *txSqlcStore) UpdateReviewableStatus(ctx context.Context,
	id int64, status int64,
) error {
	return s.queries.UpdateReviewableStatus(
		ctx, sqlc.UpdateReviewableStatusParams{
			Status:    status,
			UpdatedAt: time.Now().Unix(),
			ID:        id,
		},
	)
}

// CountReviewablesByStatus counts reviewables within a transaction.
func (s *txSqlcStore) CountReviewablesByStatus(ctx context.Context,
	status int64,
) (int64, error) {
	return s.queries.CountReviewablesByStatus(ctx, status)
}

// createReviewable is the shared insert path for both store variants.
func createReviewable(ctx context.Context, q *sqlc.Queries,
	params CreateReviewableParams,
) (Reviewable, error) {
	payload, err := payloadToJSON(params.Payload)
	if err != nil {
		return Reviewable{}, err
	}

	now := time.Now().Unix()

	row, err := q.CreateReviewable(ctx, sqlc.CreateReviewableParams{
		Type:                  params.Type,
		Status:                0,
		CreatedByID:           params.CreatedByID,
		ReviewableByModerator: boolToInt64(params.ReviewableByModerator),
		ReviewableByGroupID:   ToSqlcNullInt64(params.ReviewableByGroupID),
		CategoryID:            ToSqlcNullInt64(params.CategoryID),
		TargetID:              ToSqlcNullInt64(params.TargetID),
		TargetType:            ToSqlcNullString(params.TargetType),
		Payload:               payload,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		return Reviewable{}, err
	}

	return ReviewableFromSqlc(row)
}

// reviewablesFromSqlc converts a slice of sqlc rows.
func reviewablesFromSqlc(rows []sqlc.Reviewable) ([]Reviewable, error) {
	reviewables := make([]Reviewable, len(rows))
	for i, row := range rows {
		rev, err := ReviewableFromSqlc(row)
		if err != nil {
			return nil, err
		}
		reviewables[i] = rev
	}
	return reviewables, nil
}
