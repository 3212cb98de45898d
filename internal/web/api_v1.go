package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roasbeef/modqueue/internal/store"
)

// APIError represents an API error response.
type APIError struct {
	Error APIErrorDetail `json:"error"`
}

// APIErrorDetail contains error details.
type APIErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// registerAPIV1Routes registers all /api/v1/ routes.
func (s *Server) registerAPIV1Routes() {
	// JSON middleware for API routes. Every response carries a request
	// ID for log correlation, generated unless the caller supplied one.
	jsonMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get("X-Request-Id")
			if reqID == "" {
				reqID = newID()
			}
			w.Header().Set("X-Request-Id", reqID)
			w.Header().Set("Content-Type", "application/json")
			next(w, r)
		}
	}

	api := jsonMiddleware

	// Health check.
	s.mux.HandleFunc("/api/v1/health", api(s.handleAPIV1Health))

	// Review queue.
	s.mux.HandleFunc("/api/v1/review", api(s.handleAPIV1Review))
	s.mux.HandleFunc("/api/v1/review/", api(s.handleAPIV1ReviewByID))

	// Signups.
	s.mux.HandleFunc("/api/v1/users", api(s.handleAPIV1Users))
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIError{
		Error: APIErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// currentUser resolves the Authorization header to a user. A missing or
// unknown bearer token means the caller is anonymous, reported as a nil
// user rather than an error.
func (s *Server) currentUser(r *http.Request) *store.User {
	token := bearerToken(r)
	if token == "" {
		return nil
	}

	user, err := s.storage.GetUserByAPIKey(r.Context(), token)
	if err != nil {
		if !errIsNoRows(err) {
			log.Printf("Error resolving API key: %v", err)
		}
		return nil
	}

	return &user
}

// handleAPIV1Health handles GET /api/v1/health.
func (s *Server) handleAPIV1Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed",
			"Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// bearerToken extracts the token from an "Authorization: Bearer" header,
// returning an empty string when absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// errIsNoRows reports whether err is the driver's row-not-found error.
func errIsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// newID returns a fresh identifier, preferring the time-ordered UUIDv7
// form and falling back to v4 when the entropy source fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
