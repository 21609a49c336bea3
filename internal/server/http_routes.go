package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// requestIDHeader carries the request ID in both directions
const requestIDHeader = "X-Request-ID"

// Handler returns the fully wrapped API handler
func (s *Server) Handler() http.Handler {
	mux := s.setupRoutes()
	return s.requestIDMiddleware(s.om.HTTPMiddleware()(mux))
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	rateLimitHandler := s.rateLimitMiddleware()
	requestLimitHandler := s.requestSizeLimitMiddleware()
	protect := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimitHandler(s.authMiddleware(requestLimitHandler(h)))
	}

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)
	if h := s.om.MetricsHandler(); h != nil {
		mux.Handle("GET "+s.om.MetricsEndpoint(), h)
	}

	mux.HandleFunc("POST /evaluate", protect(s.evaluateHandler))
	mux.HandleFunc("POST /profile", protect(s.profileHandler))

	mux.HandleFunc("GET /questions/fields", protect(s.fieldsHandler))
	mux.HandleFunc("POST /questions/sample", protect(s.sampleHandler))

	mux.HandleFunc("POST /sessions", protect(s.createSessionHandler))
	mux.HandleFunc("GET /sessions/{id}", protect(s.getSessionHandler))
	mux.HandleFunc("DELETE /sessions/{id}", protect(s.deleteSessionHandler))
	mux.HandleFunc("POST /sessions/{id}/answers", protect(s.answerHandler))
	mux.HandleFunc("POST /sessions/{id}/complete", protect(s.completeSessionHandler))

	mux.HandleFunc("POST /coach/summary", protect(s.coachSummaryHandler))
	mux.HandleFunc("POST /coach/recommendations", protect(s.coachRecommendationsHandler))
	mux.HandleFunc("POST /coach/chat", protect(s.coachChatHandler))

	return mux
}

// requestIDMiddleware tags every request with a ULID unless the caller sent one
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = ulid.Make().String()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestID returns the ID assigned by requestIDMiddleware
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// apiKeyFromRequest reads X-API-Key, falling back to a Bearer token
func apiKeyFromRequest(r *http.Request) string {
	apiKey := r.Header.Get("X-API-Key")
	if apiKey == "" {
		if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			apiKey = after
		}
	}
	return apiKey
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := apiKeyFromRequest(r)
		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r),
				"request_id", requestID(r.Context()))
			writeErrorResponse(w, r, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r),
				"api_key_prefix", maskAPIKey(apiKey),
				"request_id", requestID(r.Context()))
			writeErrorResponse(w, r, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}
			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
