package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// actorRoleHeader carries the caller's role, verified upstream by the
// auth collaborator. An empty value means an unauthenticated caller.
const actorRoleHeader = "X-Actor-Role"

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *TrackerServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/products", s.handleCreateProduct)
	mux.HandleFunc("GET /v1/products", s.handleListProducts)
	mux.HandleFunc("GET /v1/products/search", s.handleSearchProducts)
	mux.HandleFunc("GET /v1/products/stats", s.handleProductStats)
	mux.HandleFunc("GET /v1/products/stream", s.handleProductStream)
	mux.HandleFunc("GET /v1/products/status/stream", s.handleStatusStream)
	mux.HandleFunc("GET /v1/products/{id}", s.handleGetProduct)
	mux.HandleFunc("PUT /v1/products/{id}", s.handleReplaceProduct)
	mux.HandleFunc("PATCH /v1/products/{id}", s.handleUpdateProduct)
	mux.HandleFunc("DELETE /v1/products/{id}", s.handleDeleteProduct)
	mux.HandleFunc("POST /v1/products/{id}/status", s.handleUpdateStatus)
	mux.HandleFunc("POST /v1/products/{id}/tracking", s.handleAddTrackingStage)
	mux.HandleFunc("GET /v1/products/{id}/tracking", s.handleGetTrackingHistory)
	mux.HandleFunc("POST /v1/farms", s.handleCreateFarm)
	mux.HandleFunc("GET /v1/farms", s.handleListFarms)
	mux.HandleFunc("GET /v1/farms/{id}", s.handleGetFarm)
	mux.HandleFunc("PUT /v1/farms/{id}", s.handleUpdateFarm)
	mux.HandleFunc("DELETE /v1/farms/{id}", s.handleDeleteFarm)
	mux.HandleFunc("GET /v1/detection/health", s.handleDetectionHealth)
	mux.HandleFunc("POST /v1/detection/detect", s.handleDetect)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *TrackerServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// actorRole extracts the verified caller role from the request.
func actorRole(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(actorRoleHeader))
}

// AuthMiddleware wraps an http.Handler and checks the Authorization header for
// a valid Bearer token. When token is empty, auth is disabled and all requests
// pass through. GET /v1/health is always exempt.
func AuthMiddleware(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Exempt health check.
		if r.Method == http.MethodGet && r.URL.Path == "/v1/health" {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		if !strings.HasPrefix(auth, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "invalid authorization scheme")
			return
		}

		provided := strings.TrimPrefix(auth, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
