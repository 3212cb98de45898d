package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roasbeef/modqueue/internal/store"
)

// KindReviewableUser is the type discriminator for user signup reviews.
const KindReviewableUser = "reviewable_user"

// SubjectKindUser is the target_type value for reviewables whose subject is
// a user account.
const SubjectKindUser = "user"

// UserRemover removes a user account as the side effect of a rejection. It
// runs inside the perform transaction, so a failed removal leaves nothing
// behind.
type UserRemover interface {
	// RemoveUser deletes the user and their group memberships. Returns
	// ErrUserHasPosts when the user owns dependent records that must be
	// preserved.
	RemoveUser(ctx context.Context, tx store.Storage, userID int64) error
}

// StoreUserRemover implements UserRemover directly over the storage layer.
type StoreUserRemover struct{}

// RemoveUser deletes the user unless they own posts.
func (StoreUserRemover) RemoveUser(ctx context.Context, tx store.Storage,
	userID int64) error {

	count, err := tx.CountPostsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("unable to count posts for user %d: %w",
			userID, err)
	}
	if count > 0 {
		return ErrUserHasPosts
	}

	if err := tx.DeleteGroupUsersByUser(ctx, userID); err != nil {
		return fmt.Errorf("unable to remove group memberships for "+
			"user %d: %w", userID, err)
	}
	if err := tx.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("unable to delete user %d: %w", userID, err)
	}

	return nil
}

// ReviewableUser reviews new user signups. Approval marks the account
// approved; rejection removes it, unless the account already owns posts.
type ReviewableUser struct {
	guardian Guardian
	remover  UserRemover
}

// NewReviewableUser creates the user signup item type.
func NewReviewableUser(guardian Guardian, remover UserRemover,
) *ReviewableUser {

	return &ReviewableUser{
		guardian: guardian,
		remover:  remover,
	}
}

// Kind returns the type discriminator.
func (t *ReviewableUser) Kind() string {
	return KindReviewableUser
}

// BuildActions offers approve and reject on pending items only, each gated
// by the guardian.
func (t *ReviewableUser) BuildActions(ctx context.Context, s store.Storage,
	rev *store.Reviewable, reviewer store.User, list *ActionList) error {

	if !Status(rev.Status).Pending() {
		return nil
	}

	target, err := t.targetUser(ctx, s, rev)
	switch {
	// A vanished target means nothing can be done, not an error.
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return err
	}

	if t.guardian.CanApproveUser(ctx, reviewer, target) {
		list.Add("approve")
	}
	if t.guardian.CanDeleteUser(ctx, reviewer, target) {
		list.Add("reject")
	}

	return nil
}

// Handlers returns the action handler table.
func (t *ReviewableUser) Handlers() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"approve": t.performApprove,
		"reject":  t.performReject,
	}
}

// performApprove marks the target user approved. The approver and approval
// time default to the acting reviewer and now, but only if a previous
// approval did not already set them.
func (t *ReviewableUser) performApprove(ctx context.Context,
	tx store.Storage, rev *store.Reviewable, actor store.User,
) (PerformResult, error) {

	target, err := t.targetUser(ctx, tx, rev)
	if err != nil {
		return PerformResult{}, err
	}

	approvedByID := target.ApprovedByID
	if approvedByID == nil {
		approvedByID = &actor.ID
	}
	approvedAt := target.ApprovedAt
	if approvedAt == nil {
		now := time.Now()
		approvedAt = &now
	}

	err = tx.UpdateUserApproval(ctx, store.UpdateUserApprovalParams{
		ID:           target.ID,
		Approved:     true,
		ApprovedByID: approvedByID,
		ApprovedAt:   approvedAt,
	})
	if err != nil {
		return PerformResult{}, fmt.Errorf("unable to approve "+
			"user %d: %w", target.ID, err)
	}

	return SuccessResult(StatusApproved), nil
}

// performReject removes the target user. A removal blocked by dependent
// posts is a business failure, not an error: the reviewable stays pending.
func (t *ReviewableUser) performReject(ctx context.Context,
	tx store.Storage, rev *store.Reviewable, actor store.User,
) (PerformResult, error) {

	target, err := t.targetUser(ctx, tx, rev)
	if err != nil {
		return PerformResult{}, err
	}

	err = t.remover.RemoveUser(ctx, tx, target.ID)
	switch {
	case errors.Is(err, ErrUserHasPosts):
		return FailedResult(), nil
	case err != nil:
		return PerformResult{}, err
	}

	return SuccessResult(StatusRejected), nil
}

// targetUser loads the user the reviewable points at.
func (t *ReviewableUser) targetUser(ctx context.Context, s store.Storage,
	rev *store.Reviewable) (store.User, error) {

	if rev.TargetID == nil {
		return store.User{}, fmt.Errorf("reviewable %d has no "+
			"target user", rev.ID)
	}

	return s.GetUser(ctx, *rev.TargetID)
}

var _ ItemType = (*ReviewableUser)(nil)
