package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// newFakeServer spins up an API stub and points the client at it.
func newFakeServer(t *testing.T,
	handler http.HandlerFunc) *Client {

	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		baseURL: srv.URL,
		apiKey:  "test-key",
		http:    srv.Client(),
	}
}

func TestClientListReviewables(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	client := newFakeServer(t, func(w http.ResponseWriter,
		r *http.Request) {

		gotPath = r.URL.RequestURI()
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"reviewables": [{
				"id": 7,
				"type": "reviewable_user",
				"status": 0,
				"payload": {"note": "hello"},
				"username": "newbie",
				"reviewable_actions": ["approve", "reject"]
			}],
			"reviewable_actions": [
				{"id": "approve", "icon": "far-thumbs-up",
				 "title": "reviewables.actions.approve.title"}
			]
		}`))
	})

	resp, err := client.ListReviewables(
		context.Background(), "pending", "",
	)
	require.NoError(t, err)

	require.Equal(t, "/api/v1/review?status=pending", gotPath)
	require.Equal(t, "Bearer test-key", gotAuth)

	require.Len(t, resp.Reviewables, 1)
	require.Equal(t, int64(7), resp.Reviewables[0].ID)
	require.Equal(t, "newbie", resp.Reviewables[0].Username)
	require.Equal(t, []string{"approve", "reject"},
		resp.Reviewables[0].ReviewableActions)
	require.Len(t, resp.ReviewableActions, 1)
}

func TestClientPerform(t *testing.T) {
	t.Parallel()

	client := newFakeServer(t, func(w http.ResponseWriter,
		r *http.Request) {

		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/review/7/perform/approve",
			r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"reviewable_perform_result": {
				"success": true,
				"transition_to": "approved",
				"transition_to_id": 1
			}
		}`))
	})

	result, err := client.Perform(context.Background(), 7, "approve")
	require.NoError(t, err)

	require.True(t, result.Success)
	require.NotNil(t, result.TransitionTo)
	require.Equal(t, "approved", *result.TransitionTo)
	require.NotNil(t, result.TransitionToID)
	require.Equal(t, int64(1), *result.TransitionToID)
}

func TestClientErrorEnvelope(t *testing.T) {
	t.Parallel()

	client := newFakeServer(t, func(w http.ResponseWriter,
		r *http.Request) {

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{
			"error": {
				"code": "not_authorized",
				"message": "You are not permitted to perform this action"
			}
		}`))
	})

	_, err := client.Perform(context.Background(), 7, "approve")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not_authorized")
	require.Contains(t, err.Error(), "not permitted")
}

func TestClientErrorWithoutEnvelope(t *testing.T) {
	t.Parallel()

	client := newFakeServer(t, func(w http.ResponseWriter,
		r *http.Request) {

		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListReviewables(context.Background(), "", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestClientSearchQuery(t *testing.T) {
	t.Parallel()

	var gotPath string
	client := newFakeServer(t, func(w http.ResponseWriter,
		r *http.Request) {

		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reviewables": [],
			"reviewable_actions": []}`))
	})

	_, err := client.ListReviewables(
		context.Background(), "", "spam link",
	)
	require.NoError(t, err)
	require.Equal(t, "/api/v1/review?q=spam+link", gotPath)
}
