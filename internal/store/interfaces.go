package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roasbeef/modqueue/internal/db/sqlc"
)

// ReviewableStore handles persistence of queued review items.
type ReviewableStore interface {
	// CreateReviewable creates a new reviewable in the pending status.
	CreateReviewable(ctx context.Context,
		params CreateReviewableParams) (Reviewable, error)

	// GetReviewable retrieves a reviewable by its ID. Returns
	// sql.ErrNoRows if no such row exists.
	GetReviewable(ctx context.Context, id int64) (Reviewable, error)

	// ListReviewablesByStatus lists all reviewables at the given status,
	// ordered by ID.
	ListReviewablesByStatus(ctx context.Context,
		status int64) ([]Reviewable, error)

	// ListReviewablesByStatusForModerator lists reviewables at the given
	// status that carry the reviewable_by_moderator flag.
	ListReviewablesByStatusForModerator(ctx context.Context,
		status int64) ([]Reviewable, error)

	// ListReviewablesByStatusForGroup lists reviewables at the given
	// status reviewable by the given group.
	ListReviewablesByStatusForGroup(ctx context.Context, status int64,
		groupID int64) ([]Reviewable, error)

	// UpdateReviewableStatus sets the status of a reviewable.
	UpdateReviewableStatus(ctx context.Context, id int64,
		status int64) error

	// CountReviewablesByStatus counts reviewables at the given status.
	CountReviewablesByStatus(ctx context.Context, status int64) (int64,
		error)
}

// UserStore handles persistence of reviewer and subject accounts.
type UserStore interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)

	// GetUser retrieves a user by its ID.
	GetUser(ctx context.Context, id int64) (User, error)

	// GetUserByUsername retrieves a user by its unique username.
	GetUserByUsername(ctx context.Context, username string) (User, error)

	// GetUserByAPIKey retrieves a user by its API key.
	GetUserByAPIKey(ctx context.Context, apiKey string) (User, error)

	// UpdateUserApproval updates the approval fields of a user.
	UpdateUserApproval(ctx context.Context,
		params UpdateUserApprovalParams) error

	// DeleteUser deletes a user row.
	DeleteUser(ctx context.Context, id int64) error

	// CreatePost creates a dependent record owned by a user.
	CreatePost(ctx context.Context, userID int64, raw string) (Post,
		error)

	// CountPostsByUser counts dependent records owned by a user.
	CountPostsByUser(ctx context.Context, userID int64) (int64, error)
}

// GroupStore handles persistence of groups and group membership.
type GroupStore interface {
	// CreateGroup creates a new group.
	CreateGroup(ctx context.Context, name string) (Group, error)

	// AddGroupUser adds a user to a group.
	AddGroupUser(ctx context.Context, groupID, userID int64) error

	// RemoveGroupUser removes a user from a group.
	RemoveGroupUser(ctx context.Context, groupID, userID int64) error

	// ListGroupIDsForUser lists the IDs of all groups the user belongs
	// to.
	ListGroupIDsForUser(ctx context.Context, userID int64) ([]int64,
		error)

	// DeleteGroupUsersByUser removes a user from all groups.
	DeleteGroupUsersByUser(ctx context.Context, userID int64) error
}

// Searcher is implemented by stores that maintain a full-text index over
// reviewable payloads. Search runs outside transactions, against the
// owning connection only.
type Searcher interface {
	// SearchReviewablesByStatus returns reviewables at the given status
	// whose payload or target type matches the query, best match first.
	SearchReviewablesByStatus(ctx context.Context, query string,
		status int64, limit int) ([]Reviewable, error)
}

// Storage is the full set of persistence operations the review queue needs,
// plus the ability to run a callback atomically.
type Storage interface {
	ReviewableStore
	UserStore
	GroupStore

	// WithTx executes the given function within a single database
	// transaction. The callback receives a Storage bound to that
	// transaction; any error rolls back everything the callback wrote.
	WithTx(ctx context.Context,
		fn func(ctx context.Context, tx Storage) error) error

	// Close releases the underlying storage resources.
	Close() error
}

// Reviewable is a queued item awaiting a moderation decision.
type Reviewable struct {
	ID   int64
	Type string

	// Status is the raw status enum value. The review package owns the
	// enum semantics.
	Status int64

	CreatedByID int64

	ReviewableByModerator bool
	ReviewableByGroupID   *int64

	ClaimedByID *int64
	CategoryID  *int64

	// TargetType and TargetID name the polymorphic subject under
	// review. TargetType is empty when the item has no subject.
	TargetType string
	TargetID   *int64

	// Payload holds arbitrary item specific data. Never nil on read.
	Payload map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is a reviewer or review subject account.
type User struct {
	ID       int64
	Username string
	Email    string
	Name     string
	APIKey   string

	Admin     bool
	Moderator bool

	Approved     bool
	ApprovedByID *int64
	ApprovedAt   *time.Time

	CreatedAt time.Time
}

// Staff reports whether the user holds a staff (admin or moderator) role.
func (u User) Staff() bool {
	return u.Admin || u.Moderator
}

// Group is a named set of users that can be granted review rights.
type Group struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Post is a minimal dependent record owned by a user. A user with posts
// cannot be removed.
type Post struct {
	ID        int64
	UserID    int64
	Raw       string
	CreatedAt time.Time
}

// CreateReviewableParams contains parameters for creating a reviewable.
type CreateReviewableParams struct {
	Type        string
	CreatedByID int64

	ReviewableByModerator bool
	ReviewableByGroupID   *int64

	CategoryID *int64

	TargetType string
	TargetID   *int64

	Payload map[string]any
}

// CreateUserParams contains parameters for creating a user.
type CreateUserParams struct {
	Username  string
	Email     string
	Name      string
	APIKey    string
	Admin     bool
	Moderator bool
	Approved  bool
}

// UpdateUserApprovalParams contains parameters for updating a user's
// approval fields.
type UpdateUserApprovalParams struct {
	ID           int64
	Approved     bool
	ApprovedByID *int64
	ApprovedAt   *time.Time
}

// ReviewableFromSqlc converts a sqlc.Reviewable to a store.Reviewable.
func ReviewableFromSqlc(r sqlc.Reviewable) (Reviewable, error) {
	payload, err := payloadFromJSON(r.Payload)
	if err != nil {
		return Reviewable{}, fmt.Errorf("reviewable %d: %w", r.ID, err)
	}

	rev := Reviewable{
		ID:                    r.ID,
		Type:                  r.Type,
		Status:                r.Status,
		CreatedByID:           r.CreatedByID,
		ReviewableByModerator: r.ReviewableByModerator != 0,
		TargetType:            r.TargetType.String,
		Payload:               payload,
		CreatedAt:             time.Unix(r.CreatedAt, 0),
		UpdatedAt:             time.Unix(r.UpdatedAt, 0),
	}
	if r.ReviewableByGroupID.Valid {
		v := r.ReviewableByGroupID.Int64
		rev.ReviewableByGroupID = &v
	}
	if r.ClaimedByID.Valid {
		v := r.ClaimedByID.Int64
		rev.ClaimedByID = &v
	}
	if r.CategoryID.Valid {
		v := r.CategoryID.Int64
		rev.CategoryID = &v
	}
	if r.TargetID.Valid {
		v := r.TargetID.Int64
		rev.TargetID = &v
	}
	return rev, nil
}

// UserFromSqlc converts a sqlc.User to a store.User.
func UserFromSqlc(u sqlc.User) User {
	user := User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		APIKey:    u.ApiKey.String,
		Admin:     u.Admin != 0,
		Moderator: u.Moderator != 0,
		Approved:  u.Approved != 0,
		CreatedAt: time.Unix(u.CreatedAt, 0),
	}
	if u.ApprovedByID.Valid {
		v := u.ApprovedByID.Int64
		user.ApprovedByID = &v
	}
	if u.ApprovedAt.Valid {
		t := time.Unix(u.ApprovedAt.Int64, 0)
		user.ApprovedAt = &t
	}
	return user
}

// GroupFromSqlc converts a sqlc.Group to a store.Group.
func GroupFromSqlc(g sqlc.Group) Group {
	return Group{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: time.Unix(g.CreatedAt, 0),
	}
}

// PostFromSqlc converts a sqlc.Post to a store.Post.
func PostFromSqlc(p sqlc.Post) Post {
	return Post{
		ID:        p.ID,
		UserID:    p.UserID,
		Raw:       p.Raw,
		CreatedAt: time.Unix(p.CreatedAt, 0),
	}
}

// payloadFromJSON decodes a payload column. A NULL or empty column decodes
// to an empty map so callers never see nil.
func payloadFromJSON(s sql.NullString) (map[string]any, error) {
	if !s.Valid || s.String == "" {
		return map[string]any{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(s.String), &payload); err != nil {
		return nil, fmt.Errorf("invalid payload json: %w", err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

// payloadToJSON encodes a payload for storage. Empty payloads persist as
// NULL.
func payloadToJSON(payload map[string]any) (sql.NullString, error) {
	if len(payload) == 0 {
		return sql.NullString{}, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return sql.NullString{}, fmt.Errorf(
			"unable to encode payload: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// ToSqlcNullString converts a string to sql.NullString, mapping the empty
// string to NULL.
func ToSqlcNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ToSqlcNullInt64 converts an int64 pointer to sql.NullInt64.
func ToSqlcNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// ToSqlcNullTime converts a time pointer to a unix-seconds sql.NullInt64.
func ToSqlcNullTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

// boolToInt64 converts a bool to the 0/1 representation used by the schema.
func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
