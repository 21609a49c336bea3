package career

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// CareerProfile is the final report for one interview session.
type CareerProfile struct {
	Interviewee     string          `json:"interviewee"`
	Timestamp       time.Time       `json:"timestamp"`
	Responses       EvaluationSet   `json:"responses"`
	AggregateScores AggregateScores `json:"aggregateScores"`
	SkillAssessment SkillAssessment `json:"skillAssessment"`
	CareerInsights  CareerInsights  `json:"careerInsights"`
}

// BuildProfile runs the three aggregations over set and assembles the report.
func BuildProfile(interviewee string, set EvaluationSet, at time.Time) CareerProfile {
	if strings.TrimSpace(interviewee) == "" {
		interviewee = "Anonymous"
	}
	return CareerProfile{
		Interviewee:     interviewee,
		Timestamp:       at.UTC(),
		Responses:       set,
		AggregateScores: Aggregate(set),
		SkillAssessment: Profile(set),
		CareerInsights:  GenerateInsights(set),
	}
}

// ProfileKey returns the storage key for a profile, for example
// "evaluations/jane_doe_20250102_150405.json".
func ProfileKey(interviewee string, at time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, strings.Join(strings.Fields(interviewee), "_"))
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("evaluations/%s_%s.json", name, at.UTC().Format("20060102_150405"))
}
