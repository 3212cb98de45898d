package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roasbeef/modqueue/internal/review"
	"github.com/roasbeef/modqueue/internal/store"
	"github.com/stretchr/testify/require"
)

// newTestServer creates a server over a mock store with a moderator account
// pre-created.
func newTestServer(t *testing.T) (*Server, *store.MockStore, store.User) {
	t.Helper()

	ms := store.NewMockStore()
	svc := review.NewService(review.ServiceConfig{Store: ms}, nil)

	srv, err := NewServer(DefaultConfig(), ms, svc)
	require.NoError(t, err)
	t.Cleanup(func() {
		srv.hub.Stop()
	})

	mod, err := ms.CreateUser(context.Background(), store.CreateUserParams{
		Username:  "mod",
		Email:     "mod@example.com",
		APIKey:    "mod-key",
		Moderator: true,
	})
	require.NoError(t, err)

	return srv, ms, mod
}

// doJSON performs a request against the server mux and decodes the JSON
// response body.
func doJSON(t *testing.T, srv *Server, method, path, apiKey string,
	body any) (*httptest.ResponseRecorder, map[string]any) {

	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	decoded := make(map[string]any)
	if rec.Body.Len() > 0 {
		require.NoError(
			t, json.Unmarshal(rec.Body.Bytes(), &decoded),
		)
	}

	return rec, decoded
}

// signup creates an account through the API and returns its reviewable id.
func signup(t *testing.T, srv *Server, username string) int64 {
	t.Helper()

	rec, body := doJSON(t, srv, http.MethodPost, "/api/v1/users", "",
		map[string]any{
			"username": username,
			"email":    username + "@example.com",
			"name":     "New User",
		})
	require.Equal(t, http.StatusCreated, rec.Code)

	return int64(body["reviewable_id"].(float64))
}

// TestReviewListAnonymous verifies the queue is hidden from anonymous
// callers.
func TestReviewListAnonymous(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodGet, "/api/v1/review", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/v1/review",
		"bogus-key", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

// TestReviewList verifies the list payload shape: flattened subject fields,
// embedded action ids, and the deduplicated top-level action array.
func TestReviewList(t *testing.T) {
	srv, _, _ := newTestServer(t)

	revID := signup(t, srv, "alice")
	signup(t, srv, "bob")

	rec, body := doJSON(t, srv, http.MethodGet, "/api/v1/review",
		"mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items := body["reviewables"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	require.Equal(t, float64(revID), first["id"])
	require.Equal(t, "reviewable_user", first["type"])
	require.Equal(t, float64(0), first["status"])
	require.Equal(t, "alice", first["username"])
	require.Equal(t, "alice@example.com", first["email"])
	require.NotNil(t, first["user_id"])
	require.NotNil(t, first["payload"])

	actionIDs := first["reviewable_actions"].([]any)
	require.ElementsMatch(t, []any{"approve", "reject"}, actionIDs)

	// Both items offer the same actions; the top-level array carries
	// each descriptor once.
	actions := body["reviewable_actions"].([]any)
	require.Len(t, actions, 2)

	approve := actions[0].(map[string]any)
	require.Equal(t, "approve", approve["id"])
	require.Equal(t, "far-thumbs-up", approve["icon"])
	require.Equal(t, "reviewables.actions.approve.title",
		approve["title"])
}

// TestPerformApproveEndpoint verifies the perform contract end to end.
func TestPerformApproveEndpoint(t *testing.T) {
	srv, ms, mod := newTestServer(t)

	revID := signup(t, srv, "alice")

	rec, body := doJSON(t, srv, http.MethodPut,
		"/api/v1/review/1/perform/approve", "mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["reviewable_perform_result"].(map[string]any)
	require.Equal(t, true, result["success"])
	require.Equal(t, "approved", result["transition_to"])
	require.Equal(t, float64(1), result["transition_to_id"])

	rev, err := ms.GetReviewable(context.Background(), revID)
	require.NoError(t, err)
	require.Equal(t, int64(review.StatusApproved), rev.Status)

	target, err := ms.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, target.Approved)
	require.Equal(t, mod.ID, *target.ApprovedByID)

	// A repeat approve is no longer offered.
	rec, _ = doJSON(t, srv, http.MethodPut,
		"/api/v1/review/1/perform/approve", "mod-key", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

// TestPerformRejectBlocked verifies a business-rule failure comes back as a
// 200 with a failed result.
func TestPerformRejectBlocked(t *testing.T) {
	srv, ms, _ := newTestServer(t)

	revID := signup(t, srv, "alice")

	target, err := ms.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	_, err = ms.CreatePost(context.Background(), target.ID, "first post")
	require.NoError(t, err)

	rec, body := doJSON(t, srv, http.MethodPut,
		"/api/v1/review/1/perform/reject", "mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["reviewable_perform_result"].(map[string]any)
	require.Equal(t, false, result["success"])
	require.Nil(t, result["transition_to"])
	require.Nil(t, result["transition_to_id"])

	rev, err := ms.GetReviewable(context.Background(), revID)
	require.NoError(t, err)
	require.Equal(t, int64(review.StatusPending), rev.Status)
}

// TestPerformErrors verifies the error code mapping.
func TestPerformErrors(t *testing.T) {
	srv, _, _ := newTestServer(t)

	signup(t, srv, "alice")

	// Anonymous.
	rec, _ := doJSON(t, srv, http.MethodPut,
		"/api/v1/review/1/perform/approve", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Missing reviewable.
	rec, _ = doJSON(t, srv, http.MethodPut,
		"/api/v1/review/999/perform/approve", "mod-key", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Unoffered action.
	rec, _ = doJSON(t, srv, http.MethodPut,
		"/api/v1/review/1/perform/delete", "mod-key", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Wrong method.
	rec, _ = doJSON(t, srv, http.MethodGet,
		"/api/v1/review/1/perform/approve", "mod-key", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// Malformed id.
	rec, _ = doJSON(t, srv, http.MethodPut,
		"/api/v1/review/abc/perform/approve", "mod-key", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// TestReviewShow verifies the single-item endpoint.
func TestReviewShow(t *testing.T) {
	srv, _, _ := newTestServer(t)

	revID := signup(t, srv, "alice")

	rec, _ := doJSON(t, srv, http.MethodGet, "/api/v1/review/1", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/v1/review/1",
		"mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	item := body["reviewable"].(map[string]any)
	require.Equal(t, float64(revID), item["id"])
	require.Equal(t, "alice", item["username"])

	actions := body["reviewable_actions"].([]any)
	require.Len(t, actions, 2)

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/v1/review/999",
		"mod-key", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// TestReviewListStatusFilter verifies the ?status= query parameter.
func TestReviewListStatusFilter(t *testing.T) {
	srv, _, _ := newTestServer(t)

	signup(t, srv, "alice")

	rec, _ := doJSON(t, srv, http.MethodPut,
		"/api/v1/review/1/perform/approve", "mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/v1/review",
		"mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body["reviewables"])

	rec, body = doJSON(t, srv, http.MethodGet,
		"/api/v1/review?status=approved", "mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["reviewables"].([]any), 1)

	rec, _ = doJSON(t, srv, http.MethodGet,
		"/api/v1/review?status=bogus", "mod-key", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestReviewSearch verifies the ?q= query parameter searches payloads
// instead of listing the whole queue.
func TestReviewSearch(t *testing.T) {
	srv, ms, mod := newTestServer(t)
	ctx := context.Background()

	mkRev := func(note string) store.Reviewable {
		rev, err := ms.CreateReviewable(ctx,
			store.CreateReviewableParams{
				Type:                  review.KindReviewableUser,
				CreatedByID:           mod.ID,
				ReviewableByModerator: true,
				Payload: map[string]any{
					"note": note,
				},
			})
		require.NoError(t, err)
		return rev
	}

	spam := mkRev("spam link farm")
	mkRev("looks legit to me")

	rec, body := doJSON(t, srv, http.MethodGet, "/api/v1/review?q=spam",
		"mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rows := body["reviewables"].([]any)
	require.Len(t, rows, 1)
	hit := rows[0].(map[string]any)
	require.Equal(t, spam.ID, int64(hit["id"].(float64)))

	// An unmatched query returns an empty queue, not an error.
	rec, body = doJSON(t, srv, http.MethodGet, "/api/v1/review?q=zebra",
		"mod-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body["reviewables"])
}

// TestSignupIssuesAPIKey verifies new accounts get a usable API key. The
// key authenticates, but an unapproved non-staff account sees an empty
// queue rather than other users' items.
func TestSignupIssuesAPIKey(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/v1/users", "",
		map[string]any{
			"username": "alice",
			"email":    "alice@example.com",
		})
	require.Equal(t, http.StatusCreated, rec.Code)

	user := body["user"].(map[string]any)
	key := user["api_key"].(string)
	require.NotEmpty(t, key)

	rec, queue := doJSON(t, srv, http.MethodGet, "/api/v1/review", key,
		nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, queue["reviewables"])
}

// TestSignupValidation verifies the signup endpoint rejects bad input.
func TestSignupValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/users", "",
		map[string]any{"email": "no-name@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	signup(t, srv, "alice")

	// Duplicate username.
	rec, _ = doJSON(t, srv, http.MethodPost, "/api/v1/users", "",
		map[string]any{"username": "alice"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
