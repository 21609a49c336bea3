package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
	opCfg.CustomPrompts.SystemPrompts.inherit(c.AI.CustomPrompts.SystemPrompts)
	opCfg.CustomPrompts.UserPrompts.inherit(c.AI.CustomPrompts.UserPrompts)
}

// inherit fills empty prompts from the global set.
func (p *PromptSet) inherit(global PromptSet) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&p.EvaluateAnswer, global.EvaluateAnswer)
	fill(&p.EvaluateAnswerFile, global.EvaluateAnswerFile)
	fill(&p.SummarizeResume, global.SummarizeResume)
	fill(&p.SummarizeResumeFile, global.SummarizeResumeFile)
	fill(&p.RecommendCareers, global.RecommendCareers)
	fill(&p.RecommendCareersFile, global.RecommendCareersFile)
	fill(&p.CoachChat, global.CoachChat)
	fill(&p.CoachChatFile, global.CoachChatFile)
}

// GetEvaluateConfig returns the AI configuration for answer evaluation with fallback to global config
func (c *Config) GetEvaluateConfig() OperationAIConfig {
	config := c.AI.Evaluate
	c.applyOperationDefaults(&config)
	return config
}

// GetCoachConfig returns the AI configuration for résumé coaching with fallback to global config
func (c *Config) GetCoachConfig() OperationAIConfig {
	config := c.AI.Coach
	c.applyOperationDefaults(&config)
	return config
}
