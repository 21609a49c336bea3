package server

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"intervu/internal/ai"
	"intervu/internal/config"
	"intervu/internal/errors"
	"intervu/internal/interview"
	"intervu/internal/observability"
	"intervu/internal/questions"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ModelService is the view of an AI service the health and stats endpoints need
type ModelService interface {
	GetModelInfo(ctx context.Context) *ai.ModelInfo
	Stats() map[string]any
}

// Dependencies are the domain services the API exposes
type Dependencies struct {
	Interview     *interview.Service
	Coach         *ai.Coach
	Questions     *questions.Source
	AIServices    map[string]ModelService // keyed by operation, for /health and /stats
	Observability *observability.ObservabilityManager
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	interview  *interview.Service
	coach      *ai.Coach
	questions  *questions.Source
	aiServices map[string]ModelService
	om         *observability.ObservabilityManager
	validate   *validator.Validate

	// Logger
	Logger *errors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// ConfigFrom builds a ServerConfig from the application configuration
func ConfigFrom(appCfg *config.Config, version string) ServerConfig {
	srv := appCfg.Server
	return ServerConfig{
		Host:           srv.Host,
		Port:           srv.Port,
		Version:        version,
		TLSConfig:      srv.TLS,
		APIKeys:        srv.APIKeys,
		ReadTimeout:    srv.ReadTimeout,
		WriteTimeout:   srv.WriteTimeout,
		IdleTimeout:    srv.IdleTimeout,
		MaxRequestSize: srv.MaxRequestSize,
		RateLimit:      &srv.RateLimit,
	}
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, deps Dependencies, logger *errors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	aiServices := deps.AIServices
	if aiServices == nil {
		aiServices = map[string]ModelService{}
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		interview:      deps.Interview,
		coach:          deps.Coach,
		questions:      deps.Questions,
		aiServices:     aiServices,
		om:             deps.Observability,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		Logger:         logger,
	}
}
