package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"sort"
	"time"

	"intervu/internal/errors"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	if s.AppConfig == nil || s.AppConfig.Observability.HealthCheck.Timeout <= 0 {
		return 5 * time.Second
	}
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler reports service health including AI model and session store status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "intervu",
		"version": s.Version,
	}

	aiStatus := s.checkAIModelsHealth(r.Context())
	response["ai_models"] = aiStatus
	response["circuit_breakers"] = s.circuitBreakerStatus()

	if s.questions != nil {
		response["question_bank"] = map[string]any{
			"fields":  len(s.questions.Bank().Fields()),
			"reloads": s.questions.Reloads(),
		}
	}

	overallHealthy := true
	for _, info := range aiStatus {
		if info != nil && !info.Available {
			overallHealthy = false
			break
		}
	}

	status := http.StatusOK
	if !overallHealthy {
		response["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

// checkAIModelsHealth checks the model behind every AI operation
func (s *Server) checkAIModelsHealth(parent context.Context) map[string]*aiModelStatus {
	ctx, cancel := context.WithTimeout(parent, s.getHealthCheckTimeout())
	defer cancel()

	status := make(map[string]*aiModelStatus, len(s.aiServices))
	for _, op := range s.operations() {
		info := s.aiServices[op].GetModelInfo(ctx)
		if info == nil {
			status[op] = &aiModelStatus{Available: false, Error: "no model information"}
			continue
		}
		status[op] = &aiModelStatus{
			Name:      info.Name,
			Available: info.Available,
			Error:     info.Error,
		}
	}
	return status
}

type aiModelStatus struct {
	Name      string `json:"name,omitempty"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// circuitBreakerStatus collects breaker state for every AI operation
func (s *Server) circuitBreakerStatus() map[string]any {
	out := make(map[string]any, len(s.aiServices))
	for _, op := range s.operations() {
		out[op] = s.aiServices[op].Stats()
	}
	return out
}

func (s *Server) operations() []string {
	ops := make([]string, 0, len(s.aiServices))
	for op := range s.aiServices {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "intervu",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"auth_enabled":           len(s.APIKeys) > 0,
		},
		"ai": s.circuitBreakerStatus(),
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	if s.AppConfig != nil {
		response["sessions"] = map[string]any{
			"backend": s.AppConfig.Session.Backend,
			"ttl":     s.AppConfig.Session.TTL.String(),
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "content-type must be application/json", nil)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("request body too large (limit is %d bytes)", maxBytesErr.Limit), err)
		}
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read request body", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat, "failed to parse JSON", err)
	}

	return nil
}

// decodeAndValidate parses the JSON body into v and runs its struct validation
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := parseJSONRequest(r, v); err != nil {
		return err
	}
	if err := s.validate.Struct(v); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, err.Error(), err)
	}
	return nil
}

// writeJSON writes v with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, r *http.Request, error, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:     error,
		Message:   message,
		RequestID: requestID(r.Context()),
	})
}

// writeAppError maps err onto an HTTP status and writes it
func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	resp := ErrorResponse{
		Error:     http.StatusText(status),
		Message:   err.Error(),
		RequestID: requestID(r.Context()),
	}
	if appErr, ok := errors.As(err); ok {
		resp.Message = appErr.Message
		resp.Code = appErr.Code
	}
	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, "Request failed",
			"endpoint", r.URL.Path,
			"status", status,
			"request_id", resp.RequestID)
	}
	writeJSON(w, status, resp)
}

// statusForError maps application error types onto HTTP status codes
func statusForError(err error) int {
	appErr, ok := errors.As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if appErr.Code == errors.ErrCodeSessionCompleted {
		return http.StatusConflict
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation:
		if appErr.Cause != nil {
			var maxBytesErr *http.MaxBytesError
			if stderrors.As(appErr.Cause, &maxBytesErr) {
				return http.StatusRequestEntityTooLarge
			}
		}
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeAI:
		return http.StatusBadGateway
	case errors.ErrorTypeNetwork:
		return http.StatusGatewayTimeout
	case errors.ErrorTypeStorage:
		return http.StatusServiceUnavailable
	case errors.ErrorTypeIO:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
