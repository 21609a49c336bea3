package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInsightsEmpty(t *testing.T) {
	got := GenerateInsights(EvaluationSet{})

	assert.Equal(t, DefaultJobField, got.JobField)
	assert.Equal(t, 3.0, got.AverageOverallScore)
	assert.Equal(t, 32, got.Compatibility)
	require.Len(t, got.CareerPaths, 1)
	assert.Equal(t, "General Specialist → Senior Specialist → Team Lead", got.CareerPaths[0].Name)
	assert.Equal(t, 35, got.CareerPaths[0].Compatibility)
	assert.Equal(t, "2-3 years", got.CareerPaths[0].DevelopmentTime)
	assert.Len(t, got.WorkEnvironment, 6)
	assert.Len(t, got.Development, 3)
	assert.Equal(t, AssessmentReliability{
		QuestionsAnswered: 0,
		ConfidenceLevel:   ConfidenceLow,
		Recommendation:    ReliabilityAdvice,
	}, got.AssessmentReliability)
}

func TestGenerateInsightsSoftwareTemplate(t *testing.T) {
	got := GenerateInsights(setOf(8, 8, 8, 8, 8))

	assert.Equal(t, "Software Engineering", got.JobField)
	assert.Equal(t, 68, got.Compatibility)
	require.Len(t, got.CareerPaths, 2)
	assert.Equal(t, 73, got.CareerPaths[0].Compatibility)
	assert.Equal(t, "1-2 years", got.CareerPaths[0].DevelopmentTime)
	assert.Equal(t, 60, got.CareerPaths[1].Compatibility)
	assert.Equal(t, "2-3 years", got.CareerPaths[1].DevelopmentTime)

	byArea := map[string]string{}
	for _, d := range got.Development {
		byArea[d.Area] = d.Priority
	}
	assert.Equal(t, map[string]string{
		"Technical Skills":        "Medium",
		"Communication":           "Medium",
		"Professional Experience": "Medium",
	}, byArea)
}

func TestGenerateInsightsTemplateSelection(t *testing.T) {
	tests := []struct {
		field string
		first string
	}{
		{"Data Science/Analysis", "Data Analyst → Senior Analyst → Analytics Manager"},
		{"Project Management", "Project Coordinator → Project Manager → Program Manager"},
		{"UX/UI Design", "UX/UI Designer → Senior Designer → Design Lead"},
		{"Cybersecurity", "Cybersecurity Specialist → Senior Specialist → Team Lead"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			rec := recordWithOverall(1, 5)
			rec.JobField = tt.field
			got := GenerateInsights(NewEvaluationSet(rec))
			assert.Equal(t, tt.first, got.CareerPaths[0].Name)
		})
	}
}

func TestGenerateInsightsMissingOverallDefaultsToThree(t *testing.T) {
	a := recordWithOverall(1, 9)
	b := EvaluationRecord{Question: "q", Answer: "a", Scores: map[string]int{CategoryContent: 4}}

	got := GenerateInsights(NewEvaluationSet(a, b))

	assert.Equal(t, 6.0, got.AverageOverallScore)
}

func TestGenerateInsightsLowScoresRaisePriority(t *testing.T) {
	got := GenerateInsights(setOf(3, 4))

	for _, d := range got.Development {
		assert.Equal(t, "High", d.Priority, d.Area)
	}
}

func TestGenerateInsightsDeterministic(t *testing.T) {
	set := setOf(6, 7, 5)

	first := GenerateInsights(set)
	second := GenerateInsights(set)
	assert.Equal(t, first, second)

	for _, axis := range first.WorkEnvironment {
		assert.GreaterOrEqual(t, axis.Score, minAxisScore, axis.Name)
		assert.LessOrEqual(t, axis.Score, maxAxisScore, axis.Name)
	}
	names := make([]string, 0, len(first.WorkEnvironment))
	for _, axis := range first.WorkEnvironment {
		names = append(names, axis.Name)
	}
	assert.Equal(t, []string{"Collaborative", "Autonomous", "Fast-paced", "Structured", "Creative", "Data-driven"}, names)
}

func TestAggregationsAreIdempotent(t *testing.T) {
	a := recordWithOverall(1, 7)
	a.SkillLevels = map[string]int{"SQL": 55, "Python": 70}
	a.SkillsDemonstrated = []string{"SQL", "Python"}
	set := NewEvaluationSet(a, recordWithOverall(2, 5))

	assert.Equal(t, Aggregate(set), Aggregate(set))
	assert.Equal(t, Profile(set), Profile(set))
	assert.Equal(t, GenerateInsights(set), GenerateInsights(set))
}
