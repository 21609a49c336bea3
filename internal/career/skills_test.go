package career

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillGapTiers(t *testing.T) {
	tests := []struct {
		current int
		gap     int
		desired int
	}{
		{20, 45, 65},
		{39, 45, 84},
		{40, 35, 75},
		{45, 35, 80},
		{60, 25, 85},
		{70, 25, 95},
		{80, 25, 95},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("current %d", tt.current), func(t *testing.T) {
			assert.Equal(t, tt.gap, SkillGap(tt.current))
			assert.Equal(t, tt.desired, DesiredLevel(tt.current))
		})
	}
}

func TestProfileLevels(t *testing.T) {
	a := recordWithOverall(1, 6)
	a.SkillLevels = map[string]int{"Go": 60, "Communication": 30}
	b := recordWithOverall(2, 7)
	b.SkillLevels = map[string]int{"Go": 80}

	got := Profile(NewEvaluationSet(a, b))

	require.Len(t, got.AssessedLevels, 2)
	assert.Equal(t, SkillLevel{
		Name: "Communication", Current: 22, Desired: 67, GapPercentage: 67.2, Confidence: ConfidenceLow,
	}, got.AssessedLevels[0])
	assert.Equal(t, SkillLevel{
		Name: "Go", Current: 52, Desired: 87, GapPercentage: 40.2, Confidence: ConfidenceLow,
	}, got.AssessedLevels[1])
	assert.Contains(t, got.AssessmentNote, "2 answered question(s)")
}

func TestProfileDemonstratedSkillsRanking(t *testing.T) {
	var records []EvaluationRecord
	skills := [][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
		{"G", "H", "I", "J"},
		{"C", "J", "J"},
	}
	for i, s := range skills {
		rec := recordWithOverall(i, 5)
		rec.SkillsDemonstrated = s
		records = append(records, rec)
	}

	got := Profile(NewEvaluationSet(records...))

	assert.Equal(t, []SkillCount{
		{"J", 3}, {"C", 2}, {"A", 1}, {"B", 1}, {"D", 1}, {"E", 1}, {"F", 1}, {"G", 1},
	}, got.DemonstratedSkills)
}

func TestProfileEmpty(t *testing.T) {
	got := Profile(EvaluationSet{})

	assert.NotNil(t, got.AssessedLevels)
	assert.Empty(t, got.AssessedLevels)
	assert.NotNil(t, got.DemonstratedSkills)
	assert.Empty(t, got.DemonstratedSkills)
	assert.NotEmpty(t, got.AssessmentNote)
}

func TestProfileClampsOutOfRangeLevels(t *testing.T) {
	low := recordWithOverall(1, 5)
	low.SkillLevels = map[string]int{"SQL": -60}
	high := recordWithOverall(2, 5)
	high.SkillLevels = map[string]int{"Go": 150}

	got := Profile(NewEvaluationSet(low, high))

	require.Len(t, got.AssessedLevels, 2)
	assert.Equal(t, SkillLevel{
		Name: "SQL", Current: 0, Desired: 45, GapPercentage: 100, Confidence: ConfidenceLow,
	}, got.AssessedLevels[0])
	assert.Equal(t, SkillLevel{
		Name: "Go", Current: 95, Desired: 95, GapPercentage: 0, Confidence: ConfidenceLow,
	}, got.AssessedLevels[1])

	_, err := json.Marshal(BuildProfile("", NewEvaluationSet(low), time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)))
	assert.NoError(t, err)
}

func TestValidateRecords(t *testing.T) {
	ok := recordWithOverall(1, 6)
	ok.SkillLevels = map[string]int{"SQL": 0, "Go": 100}
	require.NoError(t, ValidateRecords([]EvaluationRecord{ok, {Question: "Q", Answer: "A"}}))

	tests := []struct {
		name   string
		mutate func(r *EvaluationRecord)
	}{
		{"score below range", func(r *EvaluationRecord) { r.Scores = map[string]int{"overall": 0} }},
		{"score above range", func(r *EvaluationRecord) { r.Scores = map[string]int{"clarity": 11} }},
		{"negative skill level", func(r *EvaluationRecord) { r.SkillLevels = map[string]int{"SQL": -60} }},
		{"skill level above range", func(r *EvaluationRecord) { r.SkillLevels = map[string]int{"SQL": 101} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recordWithOverall(1, 6)
			tt.mutate(&rec)
			err := ValidateRecords([]EvaluationRecord{ok, rec})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "record 1")
		})
	}
}
