package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is a thin HTTP client for the modqueued API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// newClient builds a client from the global flags, falling back to the
// MODQUEUE_API_KEY environment variable for the key.
func newClient() *Client {
	key := apiKey
	if key == "" {
		key = os.Getenv("MODQUEUE_API_KEY")
	}

	return &Client{
		baseURL: strings.TrimRight(serverAddr, "/"),
		apiKey:  key,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiErrorBody mirrors the API error envelope.
type apiErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do issues a request against the API, encoding body as JSON when non-nil
// and decoding a successful response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any,
	out any) error {

	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL+path, reqBody,
	)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil &&
			apiErr.Error.Code != "" {

			return fmt.Errorf("%s: %s", apiErr.Error.Code,
				apiErr.Error.Message)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ReviewableItem is a queue row as serialized by the API.
type ReviewableItem struct {
	ID                int64          `json:"id"`
	Type              string         `json:"type"`
	Status            int64          `json:"status"`
	Payload           map[string]any `json:"payload"`
	CreatedAt         string         `json:"created_at"`
	ClaimedByID       *int64         `json:"claimed_by_id"`
	Username          string         `json:"username"`
	Email             string         `json:"email"`
	Name              string         `json:"name"`
	ReviewableActions []string       `json:"reviewable_actions"`
}

// ActionDescriptor describes one available action.
type ActionDescriptor struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
}

// ReviewListResponse is the GET /api/v1/review response.
type ReviewListResponse struct {
	Reviewables       []ReviewableItem   `json:"reviewables"`
	ReviewableActions []ActionDescriptor `json:"reviewable_actions"`
}

// ListReviewables fetches the reviewer's queue, filtered by status when
// non-empty. A non-empty query runs a full-text search over the queue
// instead of listing it.
func (c *Client) ListReviewables(ctx context.Context, status,
	query string) (*ReviewListResponse, error) {

	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if query != "" {
		params.Set("q", query)
	}

	path := "/api/v1/review"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp ReviewListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// ReviewableShowResponse is the GET /api/v1/review/{id} response.
type ReviewableShowResponse struct {
	Reviewable        ReviewableItem     `json:"reviewable"`
	ReviewableActions []ActionDescriptor `json:"reviewable_actions"`
}

// GetReviewable fetches one queue item with its offered actions.
func (c *Client) GetReviewable(ctx context.Context,
	reviewableID int64) (*ReviewableShowResponse, error) {

	path := fmt.Sprintf("/api/v1/review/%d", reviewableID)

	var resp ReviewableShowResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// PerformResult is the outcome of performing an action.
type PerformResult struct {
	Success        bool    `json:"success"`
	TransitionTo   *string `json:"transition_to"`
	TransitionToID *int64  `json:"transition_to_id"`
}

// performResponse is the PUT perform response envelope.
type performResponse struct {
	Result PerformResult `json:"reviewable_perform_result"`
}

// Perform executes an action on a reviewable.
func (c *Client) Perform(ctx context.Context, reviewableID int64,
	actionID string) (*PerformResult, error) {

	path := fmt.Sprintf("/api/v1/review/%d/perform/%s", reviewableID,
		actionID)

	var resp performResponse
	if err := c.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return nil, err
	}

	return &resp.Result, nil
}

// SignupResponse is the POST /api/v1/users response.
type SignupResponse struct {
	User struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Approved bool   `json:"approved"`
	} `json:"user"`
	ReviewableID int64 `json:"reviewable_id"`
}

// Signup registers an unapproved account, enqueueing it for review.
func (c *Client) Signup(ctx context.Context, username, email,
	name string) (*SignupResponse, error) {

	body := map[string]string{
		"username": username,
		"email":    email,
		"name":     name,
	}

	var resp SignupResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/users", body, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}
