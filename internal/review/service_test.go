package review

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/roasbeef/modqueue/internal/db"
	"github.com/roasbeef/modqueue/internal/store"
	"github.com/stretchr/testify/require"
)

// newTestService creates a review service backed by a fresh mock store and
// returns both for pre-populating test data.
func newTestService(t *testing.T) (*Service, *store.MockStore) {
	t.Helper()

	ms := store.NewMockStore()
	svc := NewService(ServiceConfig{Store: ms}, nil)

	return svc, ms
}

// createUser is a helper that creates a user with the given capabilities.
func createUser(t *testing.T, ms *store.MockStore, username string,
	admin, moderator bool) store.User {

	t.Helper()

	user, err := ms.CreateUser(context.Background(), store.CreateUserParams{
		Username:  username,
		Email:     username + "@example.com",
		Admin:     admin,
		Moderator: moderator,
	})
	require.NoError(t, err)

	return user
}

// createSignupReviewable creates a user and a pending signup reviewable
// targeting them.
func createSignupReviewable(t *testing.T, svc *Service,
	ms *store.MockStore, username string) (store.User, store.Reviewable) {

	t.Helper()

	target := createUser(t, ms, username, false, false)
	rev, err := svc.CreateForUser(context.Background(), target.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPending, Status(rev.Status))

	return target, rev
}

// TestListForAnonymous verifies that an anonymous caller sees nothing.
func TestListForAnonymous(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	createSignupReviewable(t, svc, ms, "newbie")

	rows, err := svc.ListFor(ctx, nil, StatusPending)
	require.NoError(t, err)
	require.Empty(t, rows)
}

// TestListForVisibility verifies the visibility rule across admin,
// moderator, group member, and plain users.
func TestListForVisibility(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	admin := createUser(t, ms, "admin", true, false)
	mod := createUser(t, ms, "mod", false, true)
	member := createUser(t, ms, "member", false, false)
	nobody := createUser(t, ms, "nobody", false, false)

	group, err := ms.CreateGroup(ctx, "reviewers")
	require.NoError(t, err)
	require.NoError(t, ms.AddGroupUser(ctx, group.ID, member.ID))

	// One moderator-visible item and one group-visible item.
	_, modRev := createSignupReviewable(t, svc, ms, "signup1")

	target2 := createUser(t, ms, "signup2", false, false)
	groupRev, err := ms.CreateReviewable(ctx, store.CreateReviewableParams{
		Type:                KindReviewableUser,
		CreatedByID:         admin.ID,
		ReviewableByGroupID: &group.ID,
		TargetType:          SubjectKindUser,
		TargetID:            &target2.ID,
		Payload:             map[string]any{},
	})
	require.NoError(t, err)

	ids := func(rows []store.Reviewable) []int64 {
		out := make([]int64, len(rows))
		for i, r := range rows {
			out[i] = r.ID
		}
		return out
	}

	rows, err := svc.ListFor(ctx, &admin, StatusPending)
	require.NoError(t, err)
	require.Equal(t, []int64{modRev.ID, groupRev.ID}, ids(rows))

	rows, err = svc.ListFor(ctx, &mod, StatusPending)
	require.NoError(t, err)
	require.Equal(t, []int64{modRev.ID}, ids(rows))

	rows, err = svc.ListFor(ctx, &member, StatusPending)
	require.NoError(t, err)
	require.Equal(t, []int64{groupRev.ID}, ids(rows))

	rows, err = svc.ListFor(ctx, &nobody, StatusPending)
	require.NoError(t, err)
	require.Empty(t, rows)
}

// TestActionsForPending verifies the pending-state action offers.
func TestActionsForPending(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	nobody := createUser(t, ms, "nobody", false, false)
	_, rev := createSignupReviewable(t, svc, ms, "newbie")

	list, err := svc.ActionsFor(ctx, mod, &rev)
	require.NoError(t, err)
	require.True(t, list.Has("approve"))
	require.True(t, list.Has("reject"))

	list, err = svc.ActionsFor(ctx, nobody, &rev)
	require.NoError(t, err)
	require.Empty(t, list.ToList())
}

// TestActionsForAdminTarget verifies that reject is withheld when the
// target is an admin account.
func TestActionsForAdminTarget(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	target := createUser(t, ms, "boss", true, false)

	rev, err := svc.CreateForUser(ctx, target.ID)
	require.NoError(t, err)

	list, err := svc.ActionsFor(ctx, mod, &rev)
	require.NoError(t, err)
	require.True(t, list.Has("approve"))
	require.False(t, list.Has("reject"))
}

// TestPerformApprove walks the full approval path: the target is marked
// approved with the acting moderator recorded, the reviewable transitions,
// and a repeat approve is denied.
func TestPerformApprove(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	target, rev := createSignupReviewable(t, svc, ms, "newbie")

	result, err := svc.Perform(ctx, mod, rev.ID, "approve")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, StatusApproved,
		result.TransitionTo.UnwrapOr(Status(-1)))

	updated, err := ms.GetReviewable(ctx, rev.ID)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, Status(updated.Status))

	approved, err := ms.GetUser(ctx, target.ID)
	require.NoError(t, err)
	require.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedByID)
	require.Equal(t, mod.ID, *approved.ApprovedByID)
	require.NotNil(t, approved.ApprovedAt)

	// Approve is no longer offered, so a second attempt is an
	// authorization failure rather than a silent re-execution.
	_, err = svc.Perform(ctx, mod, rev.ID, "approve")
	require.Error(t, err)

	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "approve", authErr.Action)
}

// TestPerformApprovePreservesApprover verifies that an approver already
// recorded on the target is not overwritten.
func TestPerformApprovePreservesApprover(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	earlier := createUser(t, ms, "earlier", false, true)
	target, rev := createSignupReviewable(t, svc, ms, "newbie")

	err := ms.UpdateUserApproval(ctx, store.UpdateUserApprovalParams{
		ID:           target.ID,
		Approved:     false,
		ApprovedByID: &earlier.ID,
	})
	require.NoError(t, err)

	_, err = svc.Perform(ctx, mod, rev.ID, "approve")
	require.NoError(t, err)

	approved, err := ms.GetUser(ctx, target.ID)
	require.NoError(t, err)
	require.True(t, approved.Approved)
	require.Equal(t, earlier.ID, *approved.ApprovedByID)
	require.NotNil(t, approved.ApprovedAt)
}

// TestPerformReject verifies that rejection removes the target user and
// their memberships.
func TestPerformReject(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	target, rev := createSignupReviewable(t, svc, ms, "newbie")

	group, err := ms.CreateGroup(ctx, "newcomers")
	require.NoError(t, err)
	require.NoError(t, ms.AddGroupUser(ctx, group.ID, target.ID))

	result, err := svc.Perform(ctx, mod, rev.ID, "reject")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, StatusRejected,
		result.TransitionTo.UnwrapOr(Status(-1)))

	updated, err := ms.GetReviewable(ctx, rev.ID)
	require.NoError(t, err)
	require.Equal(t, StatusRejected, Status(updated.Status))

	_, err = ms.GetUser(ctx, target.ID)
	require.Error(t, err)

	groupIDs, err := ms.ListGroupIDsForUser(ctx, target.ID)
	require.NoError(t, err)
	require.Empty(t, groupIDs)
}

// TestPerformRejectBlockedByPosts verifies the business-rule failure path:
// the removal is refused, the result is a failure, and the reviewable stays
// pending.
func TestPerformRejectBlockedByPosts(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	target, rev := createSignupReviewable(t, svc, ms, "newbie")

	_, err := ms.CreatePost(ctx, target.ID, "first post")
	require.NoError(t, err)

	result, err := svc.Perform(ctx, mod, rev.ID, "reject")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.True(t, result.TransitionTo.IsNone())

	updated, err := ms.GetReviewable(ctx, rev.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPending, Status(updated.Status))

	_, err = ms.GetUser(ctx, target.ID)
	require.NoError(t, err)
}

// TestPerformNotFound verifies that missing and invisible reviewables are
// indistinguishable.
func TestPerformNotFound(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	nobody := createUser(t, ms, "nobody", false, false)
	_, rev := createSignupReviewable(t, svc, ms, "newbie")

	_, err := svc.Perform(ctx, mod, rev.ID+100, "approve")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Perform(ctx, nobody, rev.ID, "approve")
	require.ErrorIs(t, err, ErrNotFound)
}

// TestPerformUnofferedAction verifies that an action outside the current
// offer set is an authorization failure.
func TestPerformUnofferedAction(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	_, rev := createSignupReviewable(t, svc, ms, "newbie")

	_, err := svc.Perform(ctx, mod, rev.ID, "delete")
	require.Error(t, err)

	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

// brokenItemType offers an action its handler table does not implement.
type brokenItemType struct{}

func (brokenItemType) Kind() string { return "broken" }

func (brokenItemType) BuildActions(ctx context.Context, s store.Storage,
	rev *store.Reviewable, reviewer store.User, list *ActionList) error {

	list.Add("frob")
	return nil
}

func (brokenItemType) Handlers() map[string]HandlerFunc {
	return nil
}

// TestPerformUnsupportedAction verifies that an offered action with no
// handler surfaces as UnsupportedActionError.
func TestPerformUnsupportedAction(t *testing.T) {
	ms := store.NewMockStore()
	svc := NewService(ServiceConfig{
		Store: ms,
		Types: NewTypeRegistry(brokenItemType{}),
	}, nil)
	ctx := context.Background()

	admin := createUser(t, ms, "admin", true, false)
	rev, err := ms.CreateReviewable(ctx, store.CreateReviewableParams{
		Type:                  "broken",
		CreatedByID:           admin.ID,
		ReviewableByModerator: true,
		Payload:               map[string]any{},
	})
	require.NoError(t, err)

	_, err = svc.Perform(ctx, admin, rev.ID, "frob")
	require.Error(t, err)

	var unsupported *UnsupportedActionError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "broken", unsupported.Kind)
	require.Equal(t, "frob", unsupported.Action)
}

// newSqliteService creates a review service over a real SQLite store, for
// tests that depend on actual transaction semantics. The mock store runs
// transaction callbacks in place and cannot roll anything back.
func newSqliteService(t *testing.T) (*Service, store.Storage) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	sqliteStore, err := db.NewSqliteStore(&db.SqliteConfig{
		DatabaseFileName: dbPath,
	}, log)
	require.NoError(t, err)

	storage := store.FromDB(sqliteStore.DB())
	t.Cleanup(func() {
		storage.Close()
	})

	svc := NewService(ServiceConfig{
		Store: storage,
		Types: NewTypeRegistry(faultyItemType{}),
	}, nil)

	return svc, storage
}

// errIndexRefresh is the failure faultyItemType injects after its handler
// has already written to the subject.
var errIndexRefresh = errors.New("index refresh failed")

// faultyItemType approves its target and then fails, leaving a write in
// the transaction that must not survive the rollback.
type faultyItemType struct{}

func (faultyItemType) Kind() string { return KindReviewableUser }

func (faultyItemType) BuildActions(ctx context.Context, s store.Storage,
	rev *store.Reviewable, reviewer store.User, list *ActionList) error {

	if Status(rev.Status).Pending() && reviewer.Staff() {
		list.Add("approve")
	}
	return nil
}

func (faultyItemType) Handlers() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"approve": func(ctx context.Context, tx store.Storage,
			rev *store.Reviewable, actor store.User,
		) (PerformResult, error) {

			err := tx.UpdateUserApproval(ctx,
				store.UpdateUserApprovalParams{
					ID:           *rev.TargetID,
					Approved:     true,
					ApprovedByID: &actor.ID,
				})
			if err != nil {
				return PerformResult{}, err
			}

			return PerformResult{}, errIndexRefresh
		},
	}
}

// TestPerformHandlerErrorRollsBack verifies that a handler failure after a
// subject write propagates the error and rolls back both the write and the
// status transition.
func TestPerformHandlerErrorRollsBack(t *testing.T) {
	svc, s := newSqliteService(t)
	ctx := context.Background()

	mod, err := s.CreateUser(ctx, store.CreateUserParams{
		Username:  "mod",
		Email:     "mod@example.com",
		APIKey:    "key-mod",
		Moderator: true,
	})
	require.NoError(t, err)

	target, err := s.CreateUser(ctx, store.CreateUserParams{
		Username: "newbie",
		Email:    "newbie@example.com",
		APIKey:   "key-newbie",
	})
	require.NoError(t, err)

	rev, err := svc.CreateForUser(ctx, target.ID)
	require.NoError(t, err)

	_, err = svc.Perform(ctx, mod, rev.ID, "approve")
	require.ErrorIs(t, err, errIndexRefresh)

	// The approval written before the failure must be gone.
	after, err := s.GetUser(ctx, target.ID)
	require.NoError(t, err)
	require.False(t, after.Approved)
	require.Nil(t, after.ApprovedByID)

	// And the reviewable must still be pending.
	got, err := s.GetReviewable(ctx, rev.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPending, Status(got.Status))
}

// TestSearchForVisibility verifies that search results pass through the
// same visibility rule as listing.
func TestSearchForVisibility(t *testing.T) {
	svc, ms := newTestService(t)
	ctx := context.Background()

	mod := createUser(t, ms, "mod", false, true)
	plain := createUser(t, ms, "plain", false, false)

	rev, err := ms.CreateReviewable(ctx, store.CreateReviewableParams{
		Type:                  KindReviewableUser,
		CreatedByID:           mod.ID,
		ReviewableByModerator: true,
		Payload:               map[string]any{"note": "spam link farm"},
	})
	require.NoError(t, err)

	hits, err := svc.SearchFor(ctx, &mod, StatusPending, "spam")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, rev.ID, hits[0].ID)

	// A non-staff reviewer with no groups sees nothing.
	hits, err = svc.SearchFor(ctx, &plain, StatusPending, "spam")
	require.NoError(t, err)
	require.Empty(t, hits)

	// Anonymous callers see nothing.
	hits, err = svc.SearchFor(ctx, nil, StatusPending, "spam")
	require.NoError(t, err)
	require.Empty(t, hits)
}
