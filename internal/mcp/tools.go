package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roasbeef/modqueue/internal/review"
	"github.com/roasbeef/modqueue/internal/store"
)

// ReviewableResult is a queue entry in tool results.
type ReviewableResult struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Status    string         `json:"status"`
	CreatedAt string         `json:"created_at"`
	Payload   map[string]any `json:"payload"`
	UserID    *int64         `json:"user_id,omitempty"`
	Username  string         `json:"username,omitempty"`
	Actions   []string       `json:"actions"`
}

// ActionResult is an action descriptor in tool results.
type ActionResult struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
}

// ListReviewablesArgs are the arguments for the list_reviewables tool.
type ListReviewablesArgs struct {
	// Reviewer is the username of the acting reviewer.
	Reviewer string `json:"reviewer" jsonschema:"Username of the acting reviewer"`

	// Status filters the queue by status name.
	Status string `json:"status,omitempty" jsonschema:"Status filter: pending, approved, rejected, ignored, or deleted,default=pending"`
}

// ListReviewablesResult is the result of the list_reviewables tool.
type ListReviewablesResult struct {
	Reviewables []ReviewableResult `json:"reviewables"`
}

func (s *Server) handleListReviewables(ctx context.Context,
	req *mcp.CallToolRequest, args ListReviewablesArgs,
) (*mcp.CallToolResult, ListReviewablesResult, error) {

	reviewer, err := s.resolveReviewer(ctx, args.Reviewer)
	if err != nil {
		return nil, ListReviewablesResult{}, err
	}

	status := review.StatusPending
	if args.Status != "" {
		status, err = review.ParseStatus(args.Status)
		if err != nil {
			return nil, ListReviewablesResult{}, err
		}
	}

	rows, err := s.reviews.ListFor(ctx, &reviewer, status)
	if err != nil {
		return nil, ListReviewablesResult{}, err
	}

	result := ListReviewablesResult{
		Reviewables: make([]ReviewableResult, 0, len(rows)),
	}
	for i := range rows {
		rev := rows[i]

		list, err := s.reviews.ActionsFor(ctx, reviewer, &rev)
		if err != nil {
			return nil, ListReviewablesResult{}, err
		}
		actionIDs := make([]string, 0)
		for _, action := range list.ToList() {
			actionIDs = append(actionIDs, action.ID)
		}

		item := ReviewableResult{
			ID:        rev.ID,
			Type:      rev.Type,
			Status:    review.Status(rev.Status).String(),
			CreatedAt: rev.CreatedAt.UTC().Format(time.RFC3339),
			Payload:   rev.Payload,
			Actions:   actionIDs,
		}

		if rev.TargetType == review.SubjectKindUser &&
			rev.TargetID != nil {

			item.UserID = rev.TargetID
			if user, err := s.storage.GetUser(
				ctx, *rev.TargetID,
			); err == nil {
				item.Username = user.Username
			}
		}

		result.Reviewables = append(result.Reviewables, item)
	}

	return nil, result, nil
}

// ReviewableActionsArgs are the arguments for the reviewable_actions tool.
type ReviewableActionsArgs struct {
	// Reviewer is the username of the acting reviewer.
	Reviewer string `json:"reviewer" jsonschema:"Username of the acting reviewer"`

	// ReviewableID is the queue entry to inspect.
	ReviewableID int64 `json:"reviewable_id" jsonschema:"ID of the reviewable"`
}

// ReviewableActionsResult is the result of the reviewable_actions tool.
type ReviewableActionsResult struct {
	Actions []ActionResult `json:"actions"`
}

func (s *Server) handleReviewableActions(ctx context.Context,
	req *mcp.CallToolRequest, args ReviewableActionsArgs,
) (*mcp.CallToolResult, ReviewableActionsResult, error) {

	reviewer, err := s.resolveReviewer(ctx, args.Reviewer)
	if err != nil {
		return nil, ReviewableActionsResult{}, err
	}

	rev, err := s.reviews.GetVisible(ctx, reviewer, args.ReviewableID)
	if err != nil {
		return nil, ReviewableActionsResult{}, err
	}

	list, err := s.reviews.ActionsFor(ctx, reviewer, &rev)
	if err != nil {
		return nil, ReviewableActionsResult{}, err
	}

	result := ReviewableActionsResult{
		Actions: make([]ActionResult, 0),
	}
	for _, action := range list.ToList() {
		result.Actions = append(result.Actions, ActionResult{
			ID:    action.ID,
			Icon:  action.Icon,
			Title: action.Title,
		})
	}

	return nil, result, nil
}

// PerformReviewableArgs are the arguments for the perform_reviewable tool.
type PerformReviewableArgs struct {
	// Reviewer is the username of the acting reviewer.
	Reviewer string `json:"reviewer" jsonschema:"Username of the acting reviewer"`

	// ReviewableID is the queue entry to act on.
	ReviewableID int64 `json:"reviewable_id" jsonschema:"ID of the reviewable"`

	// Action is the action id to perform.
	Action string `json:"action" jsonschema:"Action id to perform, e.g. approve or reject"`
}

// PerformReviewableResult is the result of the perform_reviewable tool.
type PerformReviewableResult struct {
	Success        bool   `json:"success"`
	TransitionTo   string `json:"transition_to,omitempty"`
	TransitionToID *int64 `json:"transition_to_id,omitempty"`
}

func (s *Server) handlePerformReviewable(ctx context.Context,
	req *mcp.CallToolRequest, args PerformReviewableArgs,
) (*mcp.CallToolResult, PerformReviewableResult, error) {

	reviewer, err := s.resolveReviewer(ctx, args.Reviewer)
	if err != nil {
		return nil, PerformReviewableResult{}, err
	}

	performResult, err := s.reviews.Perform(
		ctx, reviewer, args.ReviewableID, args.Action,
	)
	if err != nil {
		return nil, PerformReviewableResult{}, err
	}

	result := PerformReviewableResult{
		Success: performResult.Success,
	}
	performResult.TransitionTo.WhenSome(func(status review.Status) {
		result.TransitionTo = status.String()
		id := int64(status)
		result.TransitionToID = &id
	})

	return nil, result, nil
}

// resolveReviewer maps a username to a user record.
func (s *Server) resolveReviewer(ctx context.Context,
	username string) (store.User, error) {

	if username == "" {
		return store.User{}, fmt.Errorf("reviewer is required")
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return store.User{}, fmt.Errorf("unknown reviewer %q",
			username)
	}

	return user, nil
}
