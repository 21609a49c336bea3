// Package career turns scored interview answers into a career profile: per-answer
// evaluation, aggregate scores, a skill-gap report and career insights.
package career

import (
	"fmt"
	"time"
)

// Score categories returned by the scoring oracle.
const (
	CategoryContent           = "content"
	CategoryClarity           = "clarity"
	CategoryTechnicalAccuracy = "technical_accuracy"
	CategoryConfidence        = "confidence"
	CategoryOverall           = "overall"
)

// Categories lists the score categories in display order.
var Categories = []string{
	CategoryContent,
	CategoryClarity,
	CategoryTechnicalAccuracy,
	CategoryConfidence,
	CategoryOverall,
}

// DefaultJobField is used when a record or session carries no job field.
const DefaultJobField = "General"

// Feedback is the oracle's free-text critique of one answer.
type Feedback struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	MissingElements     []string `json:"missingElements"`
}

// Quality is the locally computed answer-quality provenance attached to a record.
type Quality struct {
	QualityScore       int     `json:"qualityScore"`
	CompletenessFactor float64 `json:"completenessFactor"`
}

// EvaluationRecord is the evaluation of one answered question. Records are
// treated as immutable once built.
type EvaluationRecord struct {
	Question           string         `json:"question"`
	Answer             string         `json:"answer"`
	JobField           string         `json:"jobField"`
	Scores             map[string]int `json:"scores" validate:"omitempty,dive,min=1,max=10"`
	Feedback           Feedback       `json:"feedback"`
	SkillsDemonstrated []string       `json:"skillsDemonstrated"`
	SkillLevels        map[string]int `json:"skillLevels" validate:"omitempty,dive,min=0,max=100"`
	ImprovedAnswer     string         `json:"improvedAnswer"`
	Keywords           []string       `json:"keywords,omitempty"`
	Timestamp          time.Time      `json:"timestamp"`
	Quality            Quality        `json:"quality"`
	Error              string         `json:"error,omitempty"`
}

// IsFallback reports whether the record was produced without a usable oracle response.
func (r EvaluationRecord) IsFallback() bool {
	return r.Error != ""
}

// Score returns the score for a category and whether the record carries it.
func (r EvaluationRecord) Score(category string) (int, bool) {
	if r.Scores == nil {
		return 0, false
	}
	v, ok := r.Scores[category]
	return v, ok
}

// ValidateRecords checks caller-supplied records: scores must be 1-10 and
// skill levels 0-100.
func ValidateRecords(records []EvaluationRecord) error {
	for i, rec := range records {
		if err := getValidator().Struct(rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
