package review

import (
	"context"

	"github.com/roasbeef/modqueue/internal/store"
)

// Guardian is the authorization collaborator. The queue core never decides
// permissions itself; action builders and the visibility query consult the
// guardian and only ever consume its yes/no answers.
type Guardian interface {
	// CanApproveUser reports whether the reviewer may approve the given
	// target user.
	CanApproveUser(ctx context.Context, reviewer store.User,
		target store.User) bool

	// CanDeleteUser reports whether the reviewer may remove the given
	// target user.
	CanDeleteUser(ctx context.Context, reviewer store.User,
		target store.User) bool

	// InGroup reports whether the user belongs to the given group.
	InGroup(ctx context.Context, user store.User, groupID int64) (bool,
		error)
}

// StoreGuardian implements Guardian over the storage layer. Staff means
// admin or moderator.
type StoreGuardian struct {
	store store.Storage
}

// NewStoreGuardian creates a Guardian backed by the given storage.
func NewStoreGuardian(s store.Storage) *StoreGuardian {
	return &StoreGuardian{store: s}
}

// CanApproveUser permits staff to approve any user.
func (g *StoreGuardian) CanApproveUser(ctx context.Context,
	reviewer store.User, target store.User) bool {

	return reviewer.Staff()
}

// CanDeleteUser permits staff to remove non-admin users.
func (g *StoreGuardian) CanDeleteUser(ctx context.Context,
	reviewer store.User, target store.User) bool {

	return reviewer.Staff() && !target.Admin
}

// InGroup checks group membership through the store.
func (g *StoreGuardian) InGroup(ctx context.Context, user store.User,
	groupID int64) (bool, error) {

	groupIDs, err := g.store.ListGroupIDsForUser(ctx, user.ID)
	if err != nil {
		return false, err
	}

	for _, id := range groupIDs {
		if id == groupID {
			return true, nil
		}
	}
	return false, nil
}

var _ Guardian = (*StoreGuardian)(nil)
