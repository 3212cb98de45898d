package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockStore is an in-memory implementation of Storage for testing. All
// operations are safe for concurrent use. WithTx runs the callback against
// the same store without rollback support; tests that need real transaction
// semantics use a SQLite-backed store instead.
type MockStore struct {
	mu sync.RWMutex

	reviewables map[int64]Reviewable
	users       map[int64]User
	groups      map[int64]Group
	groupUsers  map[int64][]int64 // userID -> groupIDs
	posts       map[int64][]Post  // userID -> posts

	nextReviewableID int64
	nextUserID       int64
	nextGroupID      int64
	nextPostID       int64
}

// NewMockStore creates a new empty MockStore. Like the init migration, it
// seeds the system user.
func NewMockStore() *MockStore {
	s := &MockStore{
		reviewables: make(map[int64]Reviewable),
		users:       make(map[int64]User),
		groups:      make(map[int64]Group),
		groupUsers:  make(map[int64][]int64),
		posts:       make(map[int64][]Post),
	}

	_, _ = s.CreateUser(context.Background(), CreateUserParams{
		Username: "system",
		Admin:    true,
		Approved: true,
	})

	return s
}

// WithTx runs the callback against the mock store itself.
func (s *MockStore) WithTx(ctx context.Context,
	fn func(ctx context.Context, tx Storage) error) error {

	return fn(ctx, s)
}

// Close is a no-op for the mock store.
func (s *MockStore) Close() error {
	return nil
}

// CreateReviewable creates a new pending reviewable.
func (s *MockStore) CreateReviewable(ctx context.Context,
	params CreateReviewableParams,
) (Reviewable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextReviewableID++
	now := time.Now()

	rev := Reviewable{
		ID:                    s.nextReviewableID,
		Type:                  params.Type,
		Status:                0,
		CreatedByID:           params.CreatedByID,
		ReviewableByModerator: params.ReviewableByModerator,
		ReviewableByGroupID:   copyInt64Ptr(params.ReviewableByGroupID),
		CategoryID:            copyInt64Ptr(params.CategoryID),
		TargetType:            params.TargetType,
		TargetID:              copyInt64Ptr(params.TargetID),
		Payload:               copyPayload(params.Payload),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	s.reviewables[rev.ID] = rev
	return copyReviewable(rev), nil
}

// GetReviewable retrieves a reviewable by its ID.
func (s *MockStore) GetReviewable(ctx context.Context,
	id int64,
) (Reviewable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rev, ok := s.reviewables[id]
	if !ok {
		return Reviewable{}, sql.ErrNoRows
	}
	return copyReviewable(rev), nil
}

// ListReviewablesByStatus lists all reviewables at the given status.
func (s *MockStore) ListReviewablesByStatus(ctx context.Context,
	status int64,
) ([]Reviewable, error) {
	return s.listWhere(func(r Reviewable) bool {
		return r.Status == status
	}), nil
}

// ListReviewablesByStatusForModerator lists moderator-reviewable items.
func (s *MockStore) ListReviewablesByStatusForModerator(ctx context.Context,
	status int64,
) ([]Reviewable, error) {
	return s.listWhere(func(r Reviewable) bool {
		return r.Status == status && r.ReviewableByModerator
	}), nil
}

// ListReviewablesByStatusForGroup lists group-reviewable items.
func (s *MockStore) ListReviewablesByStatusForGroup(ctx context.Context,
	status int64, groupID int64,
) ([]Reviewable, error) {
	return s.listWhere(func(r Reviewable) bool {
		return r.Status == status &&
			r.ReviewableByGroupID != nil &&
			*r.ReviewableByGroupID == groupID
	}), nil
}

// UpdateReviewableStatus sets the status of a reviewable.
func (s *MockStore) UpdateReviewableStatus(ctx context.Context,
	id int64, status int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rev, ok := s.reviewables[id]
	if !ok {
		return sql.ErrNoRows
	}

	rev.Status = status
	rev.UpdatedAt = time.Now()
	s.reviewables[id] = rev
	return nil
}

// CountReviewablesByStatus counts reviewables at the given status.
func (s *MockStore) CountReviewablesByStatus(ctx context.Context,
	status int64,
) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, r := range s.reviewables {
		if r.Status == status {
			count++
		}
	}
	return count, nil
}

// CreateUser creates a new user.
func (s *MockStore) CreateUser(ctx context.Context,
	params CreateUserParams,
) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == params.Username {
			return User{}, fmt.Errorf("username %q already taken",
				params.Username)
		}
	}

	s.nextUserID++
	user := User{
		ID:        s.nextUserID,
		Username:  params.Username,
		Email:     params.Email,
		Name:      params.Name,
		APIKey:    params.APIKey,
		Admin:     params.Admin,
		Moderator: params.Moderator,
		Approved:  params.Approved,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	return user, nil
}

// GetUser retrieves a user by its ID.
func (s *MockStore) GetUser(ctx context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, sql.ErrNoRows
	}
	return user, nil
}

// GetUserByUsername retrieves a user by its unique username.
func (s *MockStore) GetUserByUsername(ctx context.Context,
	username string,
) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, sql.ErrNoRows
}

// GetUserByAPIKey retrieves a user by its API key.
func (s *MockStore) GetUserByAPIKey(ctx context.Context,
	apiKey string,
) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.APIKey != "" && u.APIKey == apiKey {
			return u, nil
		}
	}
	return User{}, sql.ErrNoRows
}

// UpdateUserApproval updates the approval fields of a user.
func (s *MockStore) UpdateUserApproval(ctx context.Context,
	params UpdateUserApprovalParams,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[params.ID]
	if !ok {
		return sql.ErrNoRows
	}

	user.Approved = params.Approved
	user.ApprovedByID = copyInt64Ptr(params.ApprovedByID)
	if params.ApprovedAt != nil {
		t := *params.ApprovedAt
		user.ApprovedAt = &t
	} else {
		user.ApprovedAt = nil
	}
	s.users[params.ID] = user
	return nil
}

// DeleteUser deletes a user row.
func (s *MockStore) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.users, id)
	return nil
}

// CreatePost creates a dependent record owned by a user.
func (s *MockStore) CreatePost(ctx context.Context, userID int64,
	raw string,
) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPostID++
	post := Post{
		ID:        s.nextPostID,
		UserID:    userID,
		Raw:       raw,
		CreatedAt: time.Now(),
	}
	s.posts[userID] = append(s.posts[userID], post)
	return post, nil
}

// CountPostsByUser counts dependent records owned by a user.
func (s *MockStore) CountPostsByUser(ctx context.Context,
	userID int64,
) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.posts[userID])), nil
}

// CreateGroup creates a new group.
func (s *MockStore) CreateGroup(ctx context.Context,
	name string,
) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGroupID++
	group := Group{
		ID:        s.nextGroupID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.groups[group.ID] = group
	return group, nil
}

// AddGroupUser adds a user to a group.
func (s *MockStore) AddGroupUser(ctx context.Context,
	groupID, userID int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.groupUsers[userID] {
		if id == groupID {
			return nil
		}
	}
	s.groupUsers[userID] = append(s.groupUsers[userID], groupID)
	return nil
}

// RemoveGroupUser removes a user from a group.
func (s *MockStore) RemoveGroupUser(ctx context.Context,
	groupID, userID int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.groupUsers[userID]
	for i, id := range ids {
		if id == groupID {
			s.groupUsers[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListGroupIDsForUser lists the IDs of all groups the user belongs to.
func (s *MockStore) ListGroupIDsForUser(ctx context.Context,
	userID int64,
) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, len(s.groupUsers[userID]))
	copy(ids, s.groupUsers[userID])
	return ids, nil
}

// DeleteGroupUsersByUser removes a user from all groups.
func (s *MockStore) DeleteGroupUsersByUser(ctx context.Context,
	userID int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.groupUsers, userID)
	return nil
}

// SearchReviewablesByStatus approximates the FTS index with case
// insensitive token matching over payload values and the target type.
func (s *MockStore) SearchReviewablesByStatus(ctx context.Context,
	query string, status int64, limit int,
) ([]Reviewable, error) {
	terms := strings.Fields(strings.ToLower(query))

	matches := s.listWhere(func(r Reviewable) bool {
		if r.Status != status {
			return false
		}

		haystack := strings.ToLower(r.TargetType)
		for _, v := range r.Payload {
			if sv, ok := v.(string); ok {
				haystack += " " + strings.ToLower(sv)
			}
		}

		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				return false
			}
		}
		return len(terms) > 0
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// listWhere returns copies of all reviewables matching the predicate, in ID
// order.
func (s *MockStore) listWhere(pred func(Reviewable) bool) []Reviewable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Reviewable
	for id := int64(1); id <= s.nextReviewableID; id++ {
		rev, ok := s.reviewables[id]
		if ok && pred(rev) {
			out = append(out, copyReviewable(rev))
		}
	}
	return out
}

func copyReviewable(r Reviewable) Reviewable {
	r.ReviewableByGroupID = copyInt64Ptr(r.ReviewableByGroupID)
	r.ClaimedByID = copyInt64Ptr(r.ClaimedByID)
	r.CategoryID = copyInt64Ptr(r.CategoryID)
	r.TargetID = copyInt64Ptr(r.TargetID)
	r.Payload = copyPayload(r.Payload)
	return r
}

func copyInt64Ptr(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyPayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}

// Compile-time checks that MockStore implements Storage and search.
var (
	_ Storage  = (*MockStore)(nil)
	_ Searcher = (*MockStore)(nil)
)
