package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. INTERVU_AI_APIKEY.
const EnvPrefix = "INTERVU"

// Config holds all application configuration
// API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Environment Variables (INTERVU_AI_APIKEY, etc., including a local .env file)
// 3. Config File values
// 4. Default values - Lowest priority
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Interview     InterviewConfig     `mapstructure:"interview"`
	Session       SessionConfig       `mapstructure:"session"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds the global AI settings and the per-operation overrides.
type AIConfig struct {
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	APIKey           string        `mapstructure:"apiKey"`
	MaxRetries       int           `mapstructure:"maxRetries"`
	Temperature      float32       `mapstructure:"temperature"`
	UseSystemPrompts bool          `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig  `mapstructure:"customPrompts"`

	// Evaluate scores interview answers; Coach covers résumé summaries,
	// career recommendations and chat.
	Evaluate OperationAIConfig `mapstructure:"evaluate"`
	Coach    OperationAIConfig `mapstructure:"coach"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Open state duration before half-open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// OperationAIConfig holds AI configuration for one operation. Nil pointers and
// empty strings fall back to the global AIConfig.
type OperationAIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          *time.Duration       `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       *int                 `mapstructure:"maxRetries"`
	Temperature      *float32             `mapstructure:"temperature"`
	UseSystemPrompts *bool                `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts PromptSet `mapstructure:"systemPrompts"`
	UserPrompts   PromptSet `mapstructure:"userPrompts"`
}

// PromptSet holds inline prompt text or a file to read it from, per prompt.
// A file, when set, replaces the inline text at load time.
type PromptSet struct {
	EvaluateAnswer       string `mapstructure:"evaluateAnswer"`
	EvaluateAnswerFile   string `mapstructure:"evaluateAnswerFile"`
	SummarizeResume      string `mapstructure:"summarizeResume"`
	SummarizeResumeFile  string `mapstructure:"summarizeResumeFile"`
	RecommendCareers     string `mapstructure:"recommendCareers"`
	RecommendCareersFile string `mapstructure:"recommendCareersFile"`
	CoachChat            string `mapstructure:"coachChat"`
	CoachChatFile        string `mapstructure:"coachChatFile"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string          `mapstructure:"host"`
	Port           string          `mapstructure:"port"`
	ReadTimeout    time.Duration   `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration   `mapstructure:"writeTimeout"`
	IdleTimeout    time.Duration   `mapstructure:"idleTimeout"`
	MaxRequestSize int64           `mapstructure:"maxRequestSize"`
	TLS            TLSConfig       `mapstructure:"tls"`
	APIKeys        []string        `mapstructure:"apiKeys"`
	RateLimit      RateLimitConfig `mapstructure:"rateLimit"`
}

// TLSConfig holds TLS/mTLS configuration
type TLSConfig struct {
	Mode             string `mapstructure:"mode"` // "disabled", "server" or "mutual"
	CertFile         string `mapstructure:"certFile"`
	KeyFile          string `mapstructure:"keyFile"`
	CAFile           string `mapstructure:"caFile"` // required for mutual mode
	MinVersion       string `mapstructure:"minVersion"`
	ClientAuthPolicy string `mapstructure:"clientAuthPolicy"` // "require", "request" or "verify"
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	RequestsPerMin int           `mapstructure:"requestsPerMin"`
	BurstCapacity  int           `mapstructure:"burstCapacity"`
	ByIP           bool          `mapstructure:"byIP"`
	ByAPIKey       bool          `mapstructure:"byAPIKey"`
	Window         time.Duration `mapstructure:"window"` // idle limiters older than this are dropped
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// InterviewConfig holds question bank and session defaults.
type InterviewConfig struct {
	QuestionBankFile  string `mapstructure:"questionBankFile"` // empty uses the built-in bank
	WatchQuestionBank bool   `mapstructure:"watchQuestionBank"`
	DefaultJobField   string `mapstructure:"defaultJobField"`
	QuestionCount     int    `mapstructure:"questionCount"`
	ProfileDir        string `mapstructure:"profileDir"`
}

// SessionConfig selects where interview sessions are kept between requests.
type SessionConfig struct {
	Backend string        `mapstructure:"backend"` // "memory" or "redis"
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig holds the redis session store connection.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"keyPrefix"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool                `mapstructure:"enabled"`
	ServiceName     string              `mapstructure:"serviceName"`
	ServiceVersion  string              `mapstructure:"serviceVersion"`
	ServiceInstance string              `mapstructure:"serviceInstance"`
	ConsoleOutput   bool                `mapstructure:"consoleOutput"`
	SampleRate      float64             `mapstructure:"sampleRate"`
	Tracing         TracingConfig       `mapstructure:"tracing"`
	Metrics         MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics   CustomMetricsConfig `mapstructure:"customMetrics"`
	Prometheus      PrometheusConfig    `mapstructure:"prometheus"`
	OTLP            OTLPConfig          `mapstructure:"otlp"`
	HealthCheck     HealthCheckConfig   `mapstructure:"healthCheck"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// CustomMetricsConfig toggles the metric groups.
type CustomMetricsConfig struct {
	AIOperations    AIOperationsMetricsConfig `mapstructure:"aiOperations"`
	BusinessMetrics BusinessMetricsConfig     `mapstructure:"businessMetrics"`
	Infrastructure  InfrastructureConfig      `mapstructure:"infrastructure"`
}

// AIOperationsMetricsConfig holds AI operation metrics configuration
type AIOperationsMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackDuration   bool `mapstructure:"trackDuration"`
	TrackTokenUsage bool `mapstructure:"trackTokenUsage"`
}

// BusinessMetricsConfig covers interview metrics: answers, fallbacks, profiles.
type BusinessMetricsConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	TrackQuality bool `mapstructure:"trackQuality"`
}

// InfrastructureConfig covers server-side metrics.
type InfrastructureConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackRateLimits bool `mapstructure:"trackRateLimits"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // served by the API server
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	AIModelCheckTimeout time.Duration `mapstructure:"aiModelCheckTimeout"`
}

// LoadConfig loads configuration from the default search paths.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom loads configuration from file, or from the default search
// paths when file is empty, then applies a local .env file and INTERVU_*
// environment variables.
func LoadConfigFrom(file string) (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/intervu/")
		v.AddConfigPath("$HOME/.intervu")
		v.AddConfigPath(".")
	}

	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Loaded config file: %s", configFileUsed)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyFallbacks()
	config.logConfigurationSources(configFileUsed)

	if err := config.loadPromptsFromFiles(); err != nil {
		return nil, fmt.Errorf("failed to load custom prompts from files: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks settings every command relies on. AI credentials are
// checked separately by ValidateAI, since several commands work offline.
func (c *Config) Validate() error {
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}
	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("AI maxRetries cannot be negative")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !slices.Contains(c.App.SupportedFormats, c.App.DefaultFormat) {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}
	if c.Interview.QuestionCount < 1 {
		return fmt.Errorf("interview questionCount must be at least 1")
	}
	switch c.Session.Backend {
	case "memory":
	case "redis":
		if c.Session.Redis.Addr == "" {
			return fmt.Errorf("session.redis.addr is required for the redis session backend")
		}
	default:
		return fmt.Errorf("invalid session backend: %s (must be 'memory' or 'redis')", c.Session.Backend)
	}
	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}
	return nil
}

// ValidateAI checks that an AI provider can be created.
func (c *Config) ValidateAI() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("AI API key is required (set %s_AI_APIKEY or GEMINI_API_KEY)", EnvPrefix)
	}
	return nil
}
