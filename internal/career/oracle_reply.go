package career

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// OracleScores holds the five raw scores. A missing score decodes to 0 and
// fails validation.
type OracleScores struct {
	Content           int `json:"content" validate:"min=1,max=10"`
	Clarity           int `json:"clarity" validate:"min=1,max=10"`
	TechnicalAccuracy int `json:"technical_accuracy" validate:"min=1,max=10"`
	Confidence        int `json:"confidence" validate:"min=1,max=10"`
	Overall           int `json:"overall" validate:"min=1,max=10"`
}

func (s OracleScores) byCategory() map[string]int {
	return map[string]int{
		CategoryContent:           s.Content,
		CategoryClarity:           s.Clarity,
		CategoryTechnicalAccuracy: s.TechnicalAccuracy,
		CategoryConfidence:        s.Confidence,
		CategoryOverall:           s.Overall,
	}
}

// OracleFeedback is the oracle's critique in its wire naming.
type OracleFeedback struct {
	Strengths           []string `json:"strengths" validate:"dive,required"`
	AreasForImprovement []string `json:"areas_for_improvement" validate:"dive,required"`
	MissingElements     []string `json:"missing_elements" validate:"dive,required"`
}

// OracleSkillLevels accepts either {"skill": level} or [{"skill": ..., "level": ...}].
type OracleSkillLevels map[string]int

func (l *OracleSkillLevels) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var entries []struct {
			Skill string `json:"skill"`
			Level int    `json:"level"`
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		out := make(OracleSkillLevels, len(entries))
		for _, e := range entries {
			out[e.Skill] = e.Level
		}
		*l = out
		return nil
	}
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*l = m
	return nil
}

// OracleReply is the validated shape of a scoring oracle response.
type OracleReply struct {
	Scores             OracleScores      `json:"scores" validate:"required"`
	Feedback           OracleFeedback    `json:"feedback"`
	SkillsDemonstrated []string          `json:"skills_demonstrated" validate:"dive,required"`
	SkillLevels        OracleSkillLevels `json:"skill_levels" validate:"dive,keys,required,endkeys,min=0,max=100"`
	ImprovedAnswer     string            `json:"improved_answer"`
	Keywords           []string          `json:"keywords"`
}

// ParseOracleReply extracts, decodes and validates an oracle reply. Markdown
// code fences and surrounding prose are tolerated; anything else that does not
// match the schema is an error.
func ParseOracleReply(text string) (OracleReply, error) {
	var out OracleReply

	body, err := extractJSONObject(text)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return out, fmt.Errorf("invalid oracle JSON: %w", err)
	}
	if err := getValidator().Struct(out); err != nil {
		return out, fmt.Errorf("oracle reply failed validation: %w", err)
	}
	return out, nil
}

func extractJSONObject(text string) (string, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("oracle reply contains no JSON object")
	}
	return s[start : end+1], nil
}
