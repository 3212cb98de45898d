package store

import (
	"context"
	"time"

	"github.com/roasbeef/modqueue/internal/db/sqlc"
)

// =============================================================================
// UserStore implementation for SqlcStore
// =============================================================================

// CreateUser creates a new user.
func (s *SqlcStore) CreateUser(ctx context.Context,
	params CreateUserParams,
) (User, error) {
	return createUser(ctx, s.queries, params)
}

// GetUser retrieves a user by its ID.
func (s *SqlcStore) GetUser(ctx context.Context, id int64) (User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	return UserFromSqlc(row), nil
}

// GetUserByUsername retrieves a user by its unique username.
func (s *SqlcStore) GetUserByUsername(ctx context.Context,
	username string,
) (User, error) {
	row, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	return UserFromSqlc(row), nil
}

// GetUserByAPIKey retrieves a user by its API key.
func (s *SqlcStore) GetUserByAPIKey(ctx context.Context,
	apiKey string,
) (User, error) {
	row, err := s.queries.GetUserByApiKey(ctx, ToSqlcNullString(apiKey))
	if err != nil {
		return User{}, err
	}
	return UserFromSqlc(row), nil
}

// UpdateUserApproval updates the approval fields of a user.
func (s *SqlcStore) UpdateUserApproval(ctx context.Context,
	params UpdateUserApprovalParams,
) error {
	return s.queries.UpdateUserApproval(
		ctx, sqlc.UpdateUserApprovalParams{
			Approved:     boolToInt64(params.Approved),
			ApprovedByID: ToSqlcNullInt64(params.ApprovedByID),
			ApprovedAt:   ToSqlcNullTime(params.ApprovedAt),
			ID:           params.ID,
		},
	)
}

// DeleteUser deletes a user row.
func (s *SqlcStore) DeleteUser(ctx context.Context, id int64) error {
	return s.queries.DeleteUser(ctx, id)
}

// CreatePost creates a dependent record owned by a user.
func (s *SqlcStore) CreatePost(ctx context.Context, userID int64,
	raw string,
) (Post, error) {
	row, err := s.queries.CreatePost(ctx, sqlc.CreatePostParams{
		UserID:    userID,
		Raw:       raw,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return Post{}, err
	}
	return PostFromSqlc(row), nil
}

// CountPostsByUser counts dependent records owned by a user.
func (s *SqlcStore) CountPostsByUser(ctx context.Context,
	userID int64,
) (int64, error) {
	return s.queries.CountPostsByUser(ctx, userID)
}

// =============================================================================
// GroupStore implementation for SqlcStore
// =============================================================================

// CreateGroup creates a new group.
func (s *SqlcStore) CreateGroup(ctx context.Context,
	name string,
) (Group, error) {
	row, err := s.queries.CreateGroup(ctx, sqlc.CreateGroupParams{
		Name:      name,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return Group{}, err
	}
	return GroupFromSqlc(row), nil
}

// AddGroupUser adds a user to a group.
func (s *SqlcStore) AddGroupUser(ctx context.Context,
	groupID, userID int64,
) error {
	err := s.queries.AddGroupUser(ctx, sqlc.AddGroupUserParams{
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
	})
	return err
}

// RemoveGroupUser removes a user from a group.
func (s *SqlcStore) RemoveGroupUser(ctx context.Context,
	groupID, userID int64,
) error {
	return s.queries.RemoveGroupUser(ctx, sqlc.RemoveGroupUserParams{
		GroupID: groupID,
		UserID:  userID,
	})
}

// ListGroupIDsForUser lists the IDs of all groups the user belongs to.
func (s *SqlcStore) ListGroupIDsForUser(ctx context.Context,
	userID int64,
) ([]int64, error) {
	return s.queries.ListGroupIDsForUser(ctx, userID)
}

// DeleteGroupUsersByUser removes a user from all groups.
func (s *SqlcStore) DeleteGroupUsersByUser(ctx context.Context,
	userID int64,
) error {
	return s.queries.DeleteGroupUsersByUser(ctx, userID)
}

// =============================================================================
// UserStore implementation for txSqlcStore
// =============================================================================

// CreateUser creates a new user within a transaction.
func (s *txSqlcStore) CreateUser(ctx context.Context,
	params CreateUserParams,
) (User, error) {
	return createUser(ctx, s.queries, params)
}

// GetUser retrieves a user by its ID within a transaction.
func (s *txSqlcStore) GetUser(ctx context.Context, id int64) (User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	return UserFromSqlc(row), nil
}

// GetUserByUsername retrieves a user by username within a transaction.
func (s *txSqlcStore) GetUserByUsername(ctx context.Context,
	username string,
) (User, error) {
	row, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	return UserFromSqlc(row), nil
}

// GetUserByAPIKey retrieves a user by its API key within a transaction.
func (s *txSqlcStore) GetUserByAPIKey(ctx context.Context,
	apiKey string,
) (User, error) {
	row, err := s.queries.GetUserByApiKey(ctx, ToSqlcNullString(apiKey))
	if err != nil {
		return User{}, err
	}
	return UserFromSqlc(row), nil
}

// UpdateUserApproval updates a user's approval fields within a transaction.
func (s *txSqlcStore) UpdateUserApproval(ctx context.Context,
	params UpdateUserApprovalParams,
) error {
	return s.queries.UpdateUserApproval(
		ctx, sqlc.UpdateUserApprovalParams{
			Approved:     boolToInt64(params.Approved),
			ApprovedByID: ToSqlcNullInt64(params.ApprovedByID),
			ApprovedAt:   ToSqlcNullTime(params.ApprovedAt),
			ID:           params.ID,
		},
	)
}

// DeleteUser deletes a user row within a transaction.
func (s *txSqlcStore) DeleteUser(ctx context.Context, id int64) error {
	return s.queries.DeleteUser(ctx, id)
}

// CreatePost creates a dependent record within a transaction.
func (s *txSqlcStore) CreatePost(ctx context.Context, userID int64,
	raw string,
) (Post, error) {
	row, err := s.queries.CreatePost(ctx, sqlc.CreatePostParams{
		UserID:    userID,
		Raw:       raw,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return Post{}, err
	}
	return PostFromSqlc(row), nil
}

// CountPostsByUser counts dependent records within a transaction.
func (s *txSqlcStore) CountPostsByUser(ctx context.Context,
	userID int64,
) (int64, error) {
	return s.queries.CountPostsByUser(ctx, userID)
}

// =============================================================================
// GroupStore implementation for txSqlcStore
// =============================================================================

// CreateGroup creates a new group within a transaction.
func (s *txSqlcStore) CreateGroup(ctx context.Context,
	name string,
) (Group, error) {
	row, err := s.queries.CreateGroup(ctx, sqlc.CreateGroupParams{
		Name:      name,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return Group{}, err
	}
	return GroupFromSqlc(row), nil
}

// AddGroupUser adds a user to a group within a transaction.
func (s *txSqlcStore) AddGroupUser(ctx context.Context,
	groupID, userID int64,
) error {
	err := s.queries.AddGroupUser(ctx, sqlc.AddGroupUserParams{
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
	})
	return err
}

// RemoveGroupUser removes a user from a group within a transaction.
func (s *txSqlcStore) RemoveGroupUser(ctx context.Context,
	groupID, userID int64,
) error {
	return s.queries.RemoveGroupUser(ctx, sqlc.RemoveGroupUserParams{
		GroupID: groupID,
		UserID:  userID,
	})
}

// ListGroupIDsForUser lists group memberships within a transaction.
func (s *txSqlcStore) ListGroupIDsForUser(ctx context.Context,
	userID int64,
) ([]int64, error) {
	return s.queries.ListGroupIDsForUser(ctx, userID)
}

// DeleteGroupUsersByUser removes all memberships within a transaction.
func (s *txSqlcStore) DeleteGroupUsersByUser(ctx context.Context,
	userID int64,
) error {
	return s.queries.DeleteGroupUsersByUser(ctx, userID)
}

// createUser is the shared insert path for both store variants.
func createUser(ctx context.Context, q *sqlc.Queries,
	params CreateUserParams,
) (User, error) {
	row, err := q.CreateUser(ctx, sqlc.CreateUserParams{
		Username:  params.Username,
		Email:     params.Email,
		Name:      params.Name,
		ApiKey:    ToSqlcNullString(params.APIKey),
		Admin:     boolToInt64(params.Admin),
		Moderator: boolToInt64(params.Moderator),
		Approved:  boolToInt64(params.Approved),
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return User{}, err
	}

	return UserFromSqlc(row), nil
}
