package review

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a reviewable does not exist or is not
// visible to the requesting reviewer. The two cases are deliberately
// indistinguishable so that visibility cannot be probed by id.
var ErrNotFound = errors.New("reviewable not found")

// ErrUserHasPosts is returned by the user remover when the target user owns
// dependent records that must be preserved. Reject handlers translate it
// into a failed perform result rather than an error.
var ErrUserHasPosts = errors.New("user has posts that must be preserved")

// AuthorizationError indicates the actor may not perform the requested
// action on the reviewable. This covers both missing review rights and an
// action id that is not offered in the item's current state.
type AuthorizationError struct {
	Username string
	Action   string
}

// Error implements the error interface.
func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %q is not permitted to perform action %q",
		e.Username, e.Action)
}

// UnsupportedActionError indicates the item type defines no handler for the
// requested action id. Unlike AuthorizationError this is a configuration
// defect: an action was offered that nothing implements.
type UnsupportedActionError struct {
	Kind   string
	Action string
}

// Error implements the error interface.
func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("item type %q has no handler for action %q",
		e.Kind, e.Action)
}
