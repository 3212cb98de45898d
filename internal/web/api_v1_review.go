package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/roasbeef/modqueue/internal/review"
	"github.com/roasbeef/modqueue/internal/store"
)

// apiAction is an action descriptor in the JSON API.
type apiAction struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
}

// handleAPIV1Review handles GET /api/v1/review: the authenticated
// reviewer's queue, pending by default. A ?status= query filters by
// another status; ?q= runs a full-text search over the queue instead of
// listing it.
func (s *Server) handleAPIV1Review(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed",
			"Method not allowed")
		return
	}

	reviewer := s.currentUser(r)
	if reviewer == nil {
		writeError(w, http.StatusForbidden, "not_authorized",
			"You are not permitted to view the review queue")
		return
	}

	status := review.StatusPending
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := review.ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request",
				"Unknown status filter")
			return
		}
		status = parsed
	}

	ctx := r.Context()

	var (
		rows []store.Reviewable
		err  error
	)
	if query := r.URL.Query().Get("q"); query != "" {
		rows, err = s.reviews.SearchFor(ctx, reviewer, status, query)
	} else {
		rows, err = s.reviews.ListFor(ctx, reviewer, status)
	}
	if err != nil {
		log.Printf("Error listing reviewables: %v", err)
		writeError(w, http.StatusInternalServerError, "db_error",
			"Failed to fetch reviewables")
		return
	}

	items, actions, err := s.serializeReviewables(r, *reviewer, rows)
	if err != nil {
		log.Printf("Error serializing reviewables: %v", err)
		writeError(w, http.StatusInternalServerError, "db_error",
			"Failed to serialize reviewables")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reviewables":        items,
		"reviewable_actions": actions,
	})
}

// serializeReviewables renders the queue items for one reviewer, together
// with the deduplicated union of every action descriptor they reference.
func (s *Server) serializeReviewables(r *http.Request, reviewer store.User,
	rows []store.Reviewable) ([]map[string]any, []apiAction, error) {

	ctx := r.Context()

	items := make([]map[string]any, 0, len(rows))
	actions := make([]apiAction, 0)
	seenActions := make(map[string]struct{})

	for i := range rows {
		rev := rows[i]

		list, err := s.reviews.ActionsFor(ctx, reviewer, &rev)
		if err != nil {
			return nil, nil, err
		}

		item := map[string]any{
			"id":         rev.ID,
			"type":       rev.Type,
			"status":     rev.Status,
			"payload":    rev.Payload,
			"created_at": rev.CreatedAt.UTC().Format(time.RFC3339),
		}
		if rev.ClaimedByID != nil {
			item["claimed_by_id"] = *rev.ClaimedByID
		}

		// A markdown note in the payload is rendered for the
		// dashboard.
		if note, ok := rev.Payload["note"].(string); ok && note != "" {
			html, err := renderMarkdown(note)
			if err == nil {
				item["note_html"] = html
			}
		}

		s.flattenSubject(ctx, &rev, item)

		actionIDs := make([]string, 0)
		for _, action := range list.ToList() {
			actionIDs = append(actionIDs, action.ID)
			if _, ok := seenActions[action.ID]; ok {
				continue
			}
			seenActions[action.ID] = struct{}{}
			actions = append(actions, apiAction{
				ID:    action.ID,
				Icon:  action.Icon,
				Title: action.Title,
			})
		}
		item["reviewable_actions"] = actionIDs

		items = append(items, item)
	}

	return items, actions, nil
}

// flattenSubject adds the derived "<subjectKind>_id" field and, for user
// subjects, the flattened account fields.
func (s *Server) flattenSubject(ctx context.Context, rev *store.Reviewable,
	item map[string]any) {

	if rev.TargetType == "" || rev.TargetID == nil {
		return
	}

	item[rev.TargetType+"_id"] = *rev.TargetID

	if rev.TargetType != review.SubjectKindUser {
		return
	}

	user, err := s.storage.GetUser(ctx, *rev.TargetID)
	if err != nil {
		// The subject may already be gone; the row still renders.
		if !errIsNoRows(err) {
			log.Printf("Error loading reviewable subject: %v", err)
		}
		return
	}

	item["username"] = user.Username
	item["email"] = user.Email
	item["name"] = user.Name
}

// handleAPIV1ReviewByID routes /api/v1/review/{id} and
// /api/v1/review/{id}/perform/{action}.
func (s *Server) handleAPIV1ReviewByID(w http.ResponseWriter,
	r *http.Request) {

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/review/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found",
			"Reviewable not found")
		return
	}

	switch {
	case len(parts) == 1:
		s.handleAPIV1Show(w, r, id)

	case len(parts) == 3 && parts[1] == "perform":
		s.handleAPIV1Perform(w, r, id, parts[2])

	default:
		writeError(w, http.StatusNotFound, "not_found", "Not found")
	}
}

// handleAPIV1Show handles GET /api/v1/review/{id}: one queue item with its
// offered actions.
func (s *Server) handleAPIV1Show(w http.ResponseWriter, r *http.Request,
	reviewableID int64) {

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed",
			"Method not allowed")
		return
	}

	reviewer := s.currentUser(r)
	if reviewer == nil {
		writeError(w, http.StatusForbidden, "not_authorized",
			"You are not permitted to view the review queue")
		return
	}

	ctx := r.Context()
	rev, err := s.reviews.GetVisible(ctx, *reviewer, reviewableID)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found",
				"Reviewable not found")
			return
		}
		log.Printf("Error loading reviewable: %v", err)
		writeError(w, http.StatusInternalServerError, "db_error",
			"Failed to fetch reviewable")
		return
	}

	items, actions, err := s.serializeReviewables(
		r, *reviewer, []store.Reviewable{rev},
	)
	if err != nil {
		log.Printf("Error serializing reviewable: %v", err)
		writeError(w, http.StatusInternalServerError, "db_error",
			"Failed to serialize reviewable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reviewable":         items[0],
		"reviewable_actions": actions,
	})
}

// handleAPIV1Perform handles PUT /api/v1/review/{id}/perform/{action}.
func (s *Server) handleAPIV1Perform(w http.ResponseWriter, r *http.Request,
	reviewableID int64, actionID string) {

	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed",
			"Method not allowed")
		return
	}

	reviewer := s.currentUser(r)
	if reviewer == nil {
		writeError(w, http.StatusForbidden, "not_authorized",
			"You are not permitted to perform this action")
		return
	}

	ctx := r.Context()
	result, err := s.reviews.Perform(ctx, *reviewer, reviewableID, actionID)
	if err != nil {
		s.writePerformError(w, err)
		return
	}

	performResult := map[string]any{
		"success":          result.Success,
		"transition_to":    nil,
		"transition_to_id": nil,
	}
	result.TransitionTo.WhenSome(func(status review.Status) {
		performResult["transition_to"] = status.String()
		performResult["transition_to_id"] = int64(status)
	})

	s.hub.BroadcastReviewablePerformed(reviewableID, actionID,
		result.Success)

	writeJSON(w, http.StatusOK, map[string]any{
		"reviewable_perform_result": performResult,
	})
}

// writePerformError maps service errors onto the API status codes.
func (s *Server) writePerformError(w http.ResponseWriter, err error) {
	var (
		authErr        *review.AuthorizationError
		unsupportedErr *review.UnsupportedActionError
	)

	switch {
	case errors.Is(err, review.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found",
			"Reviewable not found")

	case errors.As(err, &authErr):
		writeError(w, http.StatusForbidden, "not_authorized",
			authErr.Error())

	case errors.As(err, &unsupportedErr):
		writeError(w, http.StatusForbidden, "unsupported_action",
			unsupportedErr.Error())

	default:
		log.Printf("Error performing reviewable action: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error",
			"Failed to perform action")
	}
}

// signupRequest is the POST /api/v1/users body.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// handleAPIV1Users handles POST /api/v1/users: creates an unapproved
// account and enqueues it for review.
func (s *Server) handleAPIV1Users(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed",
			"Method not allowed")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request",
			"Invalid JSON body")
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "invalid_request",
			"username is required")
		return
	}

	ctx := r.Context()
	user, err := s.storage.CreateUser(ctx, store.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		APIKey:   newID(),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_exists",
			"Failed to create user")
		return
	}

	rev, err := s.reviews.CreateForUser(ctx, user.ID)
	if err != nil {
		log.Printf("Error creating reviewable for signup: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error",
			"Failed to enqueue signup for review")
		return
	}

	s.hub.BroadcastReviewableCreated(rev.ID, rev.Type)

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"name":     user.Name,
			"approved": user.Approved,
			"api_key":  user.APIKey,
		},
		"reviewable_id": rev.ID,
	})
}
