package review

import (
	"context"
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/roasbeef/modqueue/internal/store"
)

// PerformResult is the outcome of a single action handler. It is returned
// to the caller unchanged and never persisted.
type PerformResult struct {
	// Success indicates the handler's business rule succeeded. A false
	// value is not an error: the status transition is skipped and the
	// reviewable stays where it was.
	Success bool

	// TransitionTo is the status the reviewable should move to when
	// Success is true. None means no transition even on success.
	TransitionTo fn.Option[Status]
}

// SuccessResult returns a successful PerformResult transitioning to the
// given status.
func SuccessResult(to Status) PerformResult {
	return PerformResult{
		Success:      true,
		TransitionTo: fn.Some(to),
	}
}

// FailedResult returns a failed PerformResult with no transition.
func FailedResult() PerformResult {
	return PerformResult{
		Success:      false,
		TransitionTo: fn.None[Status](),
	}
}

// HandlerFunc executes one named action on a reviewable. It runs inside the
// single transaction that Perform opens; tx is the transaction-bound
// storage. Returning an error rolls back everything, including the status
// transition. A business-rule failure is reported through a failed
// PerformResult instead.
type HandlerFunc func(ctx context.Context, tx store.Storage,
	rev *store.Reviewable, actor store.User) (PerformResult, error)

// ItemType is the behavior a concrete reviewable kind plugs into the queue.
// Each kind supplies an action builder, which decides what a given reviewer
// may do in the item's current state, and a static handler table keyed by
// action id.
type ItemType interface {
	// Kind returns the type discriminator stored in the reviewable row.
	Kind() string

	// BuildActions inspects the reviewable's status and the reviewer's
	// capabilities and adds the available actions to the list. It must
	// gate every Add behind both a status check and a capability check.
	BuildActions(ctx context.Context, s store.Storage,
		rev *store.Reviewable, reviewer store.User,
		list *ActionList) error

	// Handlers returns the action handler table. Ids offered by
	// BuildActions that are missing from the table surface as
	// UnsupportedActionError at perform time.
	Handlers() map[string]HandlerFunc
}

// TypeRegistry maps type discriminators to their ItemType implementations.
// Dispatch always goes through the registry; an unknown discriminator on a
// stored row is an error, never a silent default.
type TypeRegistry struct {
	types map[string]ItemType
}

// NewTypeRegistry creates a registry populated with the given item types.
func NewTypeRegistry(types ...ItemType) *TypeRegistry {
	reg := &TypeRegistry{
		types: make(map[string]ItemType, len(types)),
	}
	for _, t := range types {
		reg.types[t.Kind()] = t
	}
	return reg
}

// Register adds an item type, replacing any previous registration for the
// same kind.
func (r *TypeRegistry) Register(t ItemType) {
	r.types[t.Kind()] = t
}

// Lookup resolves the item type for a stored discriminator.
func (r *TypeRegistry) Lookup(kind string) (ItemType, error) {
	t, ok := r.types[kind]
	if !ok {
		return nil, fmt.Errorf("unknown reviewable type %q", kind)
	}
	return t, nil
}
