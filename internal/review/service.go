package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/roasbeef/modqueue/internal/store"
)

// SystemUsername is the seeded account that owns queue-created reviewables.
const SystemUsername = "system"

// ServiceConfig holds the collaborators of the review service.
type ServiceConfig struct {
	// Store is the storage backend for reviewables and their subjects.
	Store store.Storage

	// Guardian makes all authorization decisions. If nil, a
	// StoreGuardian over Store is used.
	Guardian Guardian

	// Types is the item type registry. If nil, a registry containing
	// only the user signup type is used.
	Types *TypeRegistry
}

// Service ties the queue together: it computes per-reviewer visibility,
// builds action lists through the item type registry, and executes performs
// atomically.
type Service struct {
	store    store.Storage
	guardian Guardian
	types    *TypeRegistry
	log      *slog.Logger
}

// NewService creates a review service from the given configuration.
func NewService(cfg ServiceConfig, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	guardian := cfg.Guardian
	if guardian == nil {
		guardian = NewStoreGuardian(cfg.Store)
	}

	types := cfg.Types
	if types == nil {
		types = NewTypeRegistry(
			NewReviewableUser(guardian, StoreUserRemover{}),
		)
	}

	return &Service{
		store:    cfg.Store,
		guardian: guardian,
		types:    types,
		log:      log.With("component", "review"),
	}
}

// CreateForUser creates a pending user signup reviewable targeting the
// given user, owned by the system user and visible to moderators.
func (s *Service) CreateForUser(ctx context.Context,
	userID int64) (store.Reviewable, error) {

	system, err := s.store.GetUserByUsername(ctx, SystemUsername)
	if err != nil {
		return store.Reviewable{}, fmt.Errorf("unable to resolve "+
			"system user: %w", err)
	}

	rev, err := s.store.CreateReviewable(ctx, store.CreateReviewableParams{
		Type:                  KindReviewableUser,
		CreatedByID:           system.ID,
		ReviewableByModerator: true,
		TargetType:            SubjectKindUser,
		TargetID:              &userID,
		Payload:               map[string]any{},
	})
	if err != nil {
		return store.Reviewable{}, err
	}

	s.log.InfoContext(ctx, "Created reviewable for user signup",
		"reviewable_id", rev.ID, "user_id", userID)

	return rev, nil
}

// ListFor returns the reviewables at the given status that the reviewer may
// see, in id order. A nil reviewer is anonymous and sees nothing. Admins
// see everything; everyone else sees the union of the moderator queue (if
// staff) and the queues of their groups.
func (s *Service) ListFor(ctx context.Context, reviewer *store.User,
	status Status) ([]store.Reviewable, error) {

	if reviewer == nil {
		return nil, nil
	}

	if reviewer.Admin {
		return s.store.ListReviewablesByStatus(ctx, int64(status))
	}

	seen := make(map[int64]struct{})
	var out []store.Reviewable
	appendRows := func(rows []store.Reviewable) {
		for _, rev := range rows {
			if _, ok := seen[rev.ID]; ok {
				continue
			}
			seen[rev.ID] = struct{}{}
			out = append(out, rev)
		}
	}

	if reviewer.Staff() {
		rows, err := s.store.ListReviewablesByStatusForModerator(
			ctx, int64(status),
		)
		if err != nil {
			return nil, err
		}
		appendRows(rows)
	}

	groupIDs, err := s.store.ListGroupIDsForUser(ctx, reviewer.ID)
	if err != nil {
		return nil, err
	}
	for _, groupID := range groupIDs {
		rows, err := s.store.ListReviewablesByStatusForGroup(
			ctx, int64(status), groupID,
		)
		if err != nil {
			return nil, err
		}
		appendRows(rows)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// DefaultSearchLimit caps the number of hits a search returns.
const DefaultSearchLimit = 50

// ErrSearchUnavailable is returned when the storage backend carries no
// full-text index.
var ErrSearchUnavailable = errors.New("search not supported by storage")

// SearchFor runs a full-text query over the reviewables at the given
// status, keeping only the rows the reviewer may see. Hits come back in
// match order. A nil reviewer is anonymous and sees nothing.
func (s *Service) SearchFor(ctx context.Context, reviewer *store.User,
	status Status, query string) ([]store.Reviewable, error) {

	if reviewer == nil {
		return nil, nil
	}

	searcher, ok := s.store.(store.Searcher)
	if !ok {
		return nil, ErrSearchUnavailable
	}

	hits, err := searcher.SearchReviewablesByStatus(
		ctx, query, int64(status), DefaultSearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := make([]store.Reviewable, 0, len(hits))
	for _, rev := range hits {
		visible, err := s.visibleTo(ctx, *reviewer, rev)
		if err != nil {
			return nil, err
		}
		if visible {
			out = append(out, rev)
		}
	}

	return out, nil
}

// ActionsFor builds the list of actions the reviewer may perform on the
// reviewable in its current state.
func (s *Service) ActionsFor(ctx context.Context, reviewer store.User,
	rev *store.Reviewable) (*ActionList, error) {

	itemType, err := s.types.Lookup(rev.Type)
	if err != nil {
		return nil, err
	}

	list := NewActionList(itemType.Kind())
	err = itemType.BuildActions(ctx, s.store, rev, reviewer, list)
	if err != nil {
		return nil, err
	}

	return list, nil
}

// GetVisible loads a reviewable by id if the reviewer may see it. Missing
// and invisible both return ErrNotFound.
func (s *Service) GetVisible(ctx context.Context, reviewer store.User,
	id int64) (store.Reviewable, error) {

	rev, err := s.store.GetReviewable(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return store.Reviewable{}, ErrNotFound
	case err != nil:
		return store.Reviewable{}, err
	}

	visible, err := s.visibleTo(ctx, reviewer, rev)
	if err != nil {
		return store.Reviewable{}, err
	}
	if !visible {
		return store.Reviewable{}, ErrNotFound
	}

	return rev, nil
}

// Perform executes a named action on a reviewable for the given actor. The
// handler and any resulting status transition run inside one storage
// transaction; an unexpected handler error rolls everything back.
func (s *Service) Perform(ctx context.Context, actor store.User,
	reviewableID int64, actionID string) (PerformResult, error) {

	rev, err := s.GetVisible(ctx, actor, reviewableID)
	if err != nil {
		return PerformResult{}, err
	}

	list, err := s.ActionsFor(ctx, actor, &rev)
	if err != nil {
		return PerformResult{}, err
	}
	if !list.Has(actionID) {
		return PerformResult{}, &AuthorizationError{
			Username: actor.Username,
			Action:   actionID,
		}
	}

	itemType, err := s.types.Lookup(rev.Type)
	if err != nil {
		return PerformResult{}, err
	}
	handler, ok := itemType.Handlers()[actionID]
	if !ok {
		return PerformResult{}, &UnsupportedActionError{
			Kind:   rev.Type,
			Action: actionID,
		}
	}

	var result PerformResult
	err = s.store.WithTx(ctx, func(ctx context.Context,
		tx store.Storage) error {

		// Reload under the transaction. If the status moved since
		// the pre-transaction checks, another perform won the race
		// and this one is no longer authorized.
		txRev, err := tx.GetReviewable(ctx, reviewableID)
		if err != nil {
			return err
		}
		if txRev.Status != rev.Status {
			return &AuthorizationError{
				Username: actor.Username,
				Action:   actionID,
			}
		}

		result, err = handler(ctx, tx, &txRev, actor)
		if err != nil {
			return err
		}

		if !result.Success {
			return nil
		}

		return fn.MapOptionZ(result.TransitionTo,
			func(to Status) error {
				return tx.UpdateReviewableStatus(
					ctx, reviewableID, int64(to),
				)
			},
		)
	})
	if err != nil {
		return PerformResult{}, err
	}

	s.log.InfoContext(ctx, "Performed reviewable action",
		"reviewable_id", reviewableID, "action", actionID,
		"actor", actor.Username, "success", result.Success)

	return result, nil
}

// visibleTo evaluates the visibility rule for a single reviewable.
func (s *Service) visibleTo(ctx context.Context, reviewer store.User,
	rev store.Reviewable) (bool, error) {

	if reviewer.Admin {
		return true, nil
	}

	if rev.ReviewableByModerator && reviewer.Staff() {
		return true, nil
	}

	if rev.ReviewableByGroupID != nil {
		return s.guardian.InGroup(
			ctx, reviewer, *rev.ReviewableByGroupID,
		)
	}

	return false, nil
}
