package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// promptFile pairs a prompt's inline text with the file that may replace it.
type promptFile struct {
	name   string
	text   *string
	path   string
	target string // "global system", "evaluate user", ...
}

func (p *PromptSet) files(target string) []promptFile {
	return []promptFile{
		{"evaluateAnswer", &p.EvaluateAnswer, p.EvaluateAnswerFile, target},
		{"summarizeResume", &p.SummarizeResume, p.SummarizeResumeFile, target},
		{"recommendCareers", &p.RecommendCareers, p.RecommendCareersFile, target},
		{"coachChat", &p.CoachChat, p.CoachChatFile, target},
	}
}

func (c *Config) promptFiles() []promptFile {
	var all []promptFile
	all = append(all, c.AI.CustomPrompts.SystemPrompts.files("global system")...)
	all = append(all, c.AI.CustomPrompts.UserPrompts.files("global user")...)
	all = append(all, c.AI.Evaluate.CustomPrompts.SystemPrompts.files("evaluate system")...)
	all = append(all, c.AI.Evaluate.CustomPrompts.UserPrompts.files("evaluate user")...)
	all = append(all, c.AI.Coach.CustomPrompts.SystemPrompts.files("coach system")...)
	all = append(all, c.AI.Coach.CustomPrompts.UserPrompts.files("coach user")...)
	return all
}

// loadPromptsFromFiles replaces inline prompts with the content of their
// prompt files, where a file is configured.
func (c *Config) loadPromptsFromFiles() error {
	if err := c.validatePromptFiles(); err != nil {
		return err
	}

	loaded := 0
	for _, pf := range c.promptFiles() {
		if pf.path == "" {
			continue
		}
		content, err := loadPromptFromFile(pf.path, pf.target, pf.name)
		if err != nil {
			return err
		}
		*pf.text = content
		loaded++
	}

	if loaded == 0 {
		log.Println("[CONFIG] No custom prompt files configured - using inline or built-in prompts")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded from files: %d", loaded)
	}
	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, target, name string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", target, name, filePath, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", target, name, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", target, name, absPath)
	}

	log.Printf("[CONFIG] Loaded %s %s prompt from file: %s (%d characters)", target, name, absPath, len(trimmed))
	return trimmed, nil
}

// validatePromptFiles reports every missing prompt file at once
func (c *Config) validatePromptFiles() error {
	var validationErrors []string
	for _, pf := range c.promptFiles() {
		if pf.path == "" {
			continue
		}
		absPath, err := filepath.Abs(pf.path)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", pf.target, pf.name, pf.path))
			continue
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", pf.target, pf.name, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}
	return nil
}
