package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"intervu/internal/career"
	"intervu/internal/config"
	appErrors "intervu/internal/errors"
	"intervu/internal/types"
)

const defaultModelCheckTimeout = 10 * time.Second

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client            *genai.Client
	config            *config.OperationAIConfig
	circuitBreaker    *Breaker[*genai.GenerateContentResponse]
	modelBreaker      *Breaker[*genai.Model]
	modelCheckTimeout time.Duration
	retryInitial      time.Duration
	logger            *appErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// ProviderOption customizes a GeminiProvider
type ProviderOption func(*providerOptions)

type providerOptions struct {
	baseURL           string
	httpClient        *http.Client
	modelCheckTimeout time.Duration
}

// WithBaseURL points the client at a different Gemini endpoint
func WithBaseURL(url string) ProviderOption {
	return func(o *providerOptions) { o.baseURL = url }
}

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(c *http.Client) ProviderOption {
	return func(o *providerOptions) { o.httpClient = c }
}

// WithModelCheckTimeout bounds GetModelInfo
func WithModelCheckTimeout(d time.Duration) ProviderOption {
	return func(o *providerOptions) { o.modelCheckTimeout = d }
}

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *appErrors.Logger, opts ...ProviderOption) (*GeminiProvider, error) {
	o := providerOptions{modelCheckTimeout: defaultModelCheckTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: *cfg.Timeout}
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if o.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:            client,
		config:            cfg,
		circuitBreaker:    NewGenerateBreaker[*genai.GenerateContentResponse](operationType, cfg, logger),
		modelBreaker:      NewModelBreaker[*genai.Model](operationType, cfg, logger),
		modelCheckTimeout: o.modelCheckTimeout,
		retryInitial:      time.Second,
		logger:            logger,
	}, nil
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, g.modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	modelInfo.DisplayName = model.DisplayName
	modelInfo.Version = model.Version

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// callWithRetry retries fn with exponential backoff while its error is
// retryable, up to MaxRetries extra attempts.
func (g *GeminiProvider) callWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = g.retryInitial
	expo.MaxInterval = 30 * time.Second
	expo.MaxElapsedTime = 0

	maxRetries := max(*g.config.MaxRetries, 0)
	bo := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(maxRetries)), ctx)

	var result *genai.GenerateContentResponse
	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		res, err := fn()
		if err != nil {
			if !isRetryableError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}, bo, func(err error, wait time.Duration) {
		g.logger.Warn("Retrying AI operation",
			"operation", operation,
			"attempt", attempts,
			"max_retries", maxRetries,
			"wait", wait.String(),
			"error", err.Error())
	})
	if err != nil {
		g.logger.LogError(err, "AI operation failed",
			"operation", operation,
			"total_attempts", attempts)
		return nil, fmt.Errorf("operation '%s' failed after %d attempts: %w", operation, attempts, err)
	}

	if attempts > 1 {
		g.logger.Info("AI operation succeeded after retry",
			"operation", operation,
			"total_attempts", attempts)
	}
	return result, nil
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return isRetryableStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return isRetryableStatus(apiErrPtr.Code)
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return isRetryableStatus(gErr.Code)
	}

	// Timeouts, refused connections and resets
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// generate runs one content generation with tracing, circuit breaker and retry
func (g *GeminiProvider) generate(
	ctx context.Context,
	operationName string,
	contents []*genai.Content,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (*genai.GenerateContentResponse, *TokenUsage, error) {
	ctx, span := otel.Tracer("intervu.ai.gemini").Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	ctx, cancel := context.WithTimeout(ctx, *g.config.Timeout)
	defer cancel()

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.callWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, contents, genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}
	span.SetAttributes(attribute.Bool("success", true))
	return result, tokenUsage, nil
}

// generateJSON runs generate and decodes the JSON reply into Out
func generateJSON[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	result, usage, err := g.generate(ctx, operationName, genai.Text(userPrompt), systemPrompt, genaiConfig, spanAttributes...)
	if err != nil {
		return output, nil, err
	}
	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		return output, usage, appErrors.NewAIError(appErrors.ErrCodeAIInvalidResponse,
			"Failed to parse AI response for "+operationName, err)
	}
	return output, usage, nil
}

// EvaluateAnswer implements AIProvider interface for answer scoring
func (g *GeminiProvider) EvaluateAnswer(ctx context.Context, req career.OracleRequest) (string, *TokenUsage, error) {
	p := g.config.CustomPrompts
	systemPrompt := resolvePrompt(p.SystemPrompts.EvaluateAnswer, DefaultSystemPrompts.EvaluateAnswer)
	userPrompt := fmt.Sprintf(resolvePrompt(p.UserPrompts.EvaluateAnswer, DefaultUserPrompts.EvaluateAnswer),
		req.JobField, req.Question, req.Answer)

	result, usage, err := g.generate(ctx, "evaluate_answer", genai.Text(userPrompt), systemPrompt, buildEvaluateSchema(),
		attribute.String("input.job_field", req.JobField),
		attribute.Int("input.answer_length", len(req.Answer)),
	)
	if err != nil {
		return "", nil, err
	}
	return result.Text(), usage, nil
}

// SummarizeResume implements AIProvider interface for résumé summaries
func (g *GeminiProvider) SummarizeResume(ctx context.Context, resume string) (types.ResumeSummary, *TokenUsage, error) {
	p := g.config.CustomPrompts
	systemPrompt := resolvePrompt(p.SystemPrompts.SummarizeResume, DefaultSystemPrompts.SummarizeResume)
	userPrompt := fmt.Sprintf(resolvePrompt(p.UserPrompts.SummarizeResume, DefaultUserPrompts.SummarizeResume), resume)

	return generateJSON[types.ResumeSummary](g, ctx, "summarize_resume", userPrompt, systemPrompt, buildSummarySchema(),
		attribute.Int("input.resume_length", len(resume)),
	)
}

// RecommendCareers implements AIProvider interface for career recommendations
func (g *GeminiProvider) RecommendCareers(ctx context.Context, summary types.ResumeSummary) (types.CareerRecommendations, *TokenUsage, error) {
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return types.CareerRecommendations{}, nil, appErrors.NewInternalError("ENCODE_FAILED", "Failed to encode résumé summary", err)
	}

	p := g.config.CustomPrompts
	systemPrompt := resolvePrompt(p.SystemPrompts.RecommendCareers, DefaultSystemPrompts.RecommendCareers)
	userPrompt := fmt.Sprintf(resolvePrompt(p.UserPrompts.RecommendCareers, DefaultUserPrompts.RecommendCareers), summaryJSON)

	return generateJSON[types.CareerRecommendations](g, ctx, "recommend_careers", userPrompt, systemPrompt, buildRecommendationsSchema(),
		attribute.Int("input.skills", len(summary.Skills)),
	)
}

// CoachReply implements AIProvider interface for coaching chat. The summary
// opens the conversation, followed by the supplied history and the new message.
func (g *GeminiProvider) CoachReply(ctx context.Context, input types.CoachChatInput) (string, *TokenUsage, error) {
	summaryJSON, err := json.MarshalIndent(input.Summary, "", "  ")
	if err != nil {
		return "", nil, appErrors.NewInternalError("ENCODE_FAILED", "Failed to encode résumé summary", err)
	}

	p := g.config.CustomPrompts
	systemPrompt := resolvePrompt(p.SystemPrompts.CoachChat, DefaultSystemPrompts.CoachChat)
	contextPrompt := fmt.Sprintf(resolvePrompt(p.UserPrompts.CoachChat, DefaultUserPrompts.CoachChat), summaryJSON)

	contents := make([]*genai.Content, 0, len(input.History)+2)
	contents = append(contents, genai.NewContentFromText(contextPrompt, genai.RoleUser))
	for _, msg := range input.History {
		role := genai.Role(genai.RoleUser)
		if msg.Role == types.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(input.Message, genai.RoleUser))

	result, usage, err := g.generate(ctx, "coach_chat", contents, systemPrompt, &genai.GenerateContentConfig{},
		attribute.Int("input.history", len(input.History)),
	)
	if err != nil {
		return "", nil, err
	}
	return result.Text(), usage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	return map[string]any{
		"ai_operations":    g.circuitBreaker.Stats(),
		"model_operations": g.modelBreaker.Stats(),
		"overall_healthy":  g.circuitBreaker.IsHealthy() && g.modelBreaker.IsHealthy(),
	}
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// The genai client holds no resources in single-shot usage
	return nil
}

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

// buildEvaluateSchema creates the schema for answer scoring
func buildEvaluateSchema() *genai.GenerateContentConfig {
	score := func() *genai.Schema { return &genai.Schema{Type: genai.TypeInteger} }
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"scores": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"content":            score(),
						"clarity":            score(),
						"technical_accuracy": score(),
						"confidence":         score(),
						"overall":            score(),
					},
					Required: []string{"content", "clarity", "technical_accuracy", "confidence", "overall"},
				},
				"feedback": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"strengths":             stringList(),
						"areas_for_improvement": stringList(),
						"missing_elements":      stringList(),
					},
					Required: []string{"strengths", "areas_for_improvement", "missing_elements"},
				},
				"skills_demonstrated": stringList(),
				"skill_levels": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"skill": {Type: genai.TypeString},
							"level": {Type: genai.TypeInteger},
						},
						Required: []string{"skill", "level"},
					},
				},
				"improved_answer": {Type: genai.TypeString},
				"keywords":        stringList(),
			},
			Required: []string{"scores", "feedback", "skills_demonstrated", "skill_levels", "improved_answer", "keywords"},
		},
	}
}

// buildSummarySchema creates the schema for résumé summaries
func buildSummarySchema() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":                {Type: genai.TypeString},
				"email":               {Type: genai.TypeString},
				"phone":               {Type: genai.TypeString},
				"currentRole":         {Type: genai.TypeString},
				"experienceYears":     {Type: genai.TypeString},
				"skills":              stringList(),
				"strengths":           stringList(),
				"areasForImprovement": stringList(),
			},
			Required: []string{"name", "currentRole", "experienceYears", "skills", "strengths", "areasForImprovement"},
		},
	}
}

// buildRecommendationsSchema creates the schema for career recommendations
func buildRecommendationsSchema() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"suitableRoles":        stringList(),
				"growthOpportunities":  stringList(),
				"skillRecommendations": stringList(),
				"industryInsights":     stringList(),
				"salaryRange":          {Type: genai.TypeString},
				"nextSteps":            stringList(),
				"interviewFocusAreas":  stringList(),
			},
			Required: []string{"suitableRoles", "growthOpportunities", "skillRecommendations",
				"industryInsights", "salaryRange", "nextSteps", "interviewFocusAreas"},
		},
	}
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
