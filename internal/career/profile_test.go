package career

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationSetDeduplicates(t *testing.T) {
	var set EvaluationSet
	rec := recordWithOverall(1, 6)

	set, added := set.With(rec)
	require.True(t, added)

	again := rec
	again.Scores = map[string]int{CategoryOverall: 9}
	set, added = set.With(again)
	assert.False(t, added)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, 6, set.Records()[0].Scores[CategoryOverall])

	other := recordWithOverall(1, 6)
	other.Answer = "a different answer"
	set, added = set.With(other)
	assert.True(t, added)
	assert.Equal(t, 2, set.Len())
}

func TestEvaluationSetWithDoesNotMutate(t *testing.T) {
	base := NewEvaluationSet(recordWithOverall(1, 5))

	first, _ := base.With(recordWithOverall(2, 6))
	second, _ := base.With(recordWithOverall(3, 7))

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, "question 2", first.Records()[1].Question)
	assert.Equal(t, "question 3", second.Records()[1].Question)
}

func TestEvaluationSetJSON(t *testing.T) {
	data, err := json.Marshal(EvaluationSet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	var set EvaluationSet
	rec, _ := json.Marshal(recordWithOverall(1, 5))
	require.NoError(t, json.Unmarshal([]byte("["+string(rec)+","+string(rec)+"]"), &set))
	assert.Equal(t, 1, set.Len())
}

func TestBuildProfile(t *testing.T) {
	set := setOf(4, 6)

	profile := BuildProfile("Jane Doe", set, fixedNow)

	assert.Equal(t, "Jane Doe", profile.Interviewee)
	assert.Equal(t, fixedNow, profile.Timestamp)
	assert.Equal(t, 2, profile.Responses.Len())

	data, err := json.Marshal(profile)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"interviewee", "timestamp", "responses", "aggregateScores", "skillAssessment", "careerInsights"} {
		assert.Contains(t, decoded, key)
	}

	var roundTrip CareerProfile
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, profile.AggregateScores, roundTrip.AggregateScores)
	assert.Equal(t, profile.CareerInsights, roundTrip.CareerInsights)
}

func TestBuildProfileEmpty(t *testing.T) {
	profile := BuildProfile("", EvaluationSet{}, fixedNow)

	assert.Equal(t, "Anonymous", profile.Interviewee)
	assert.True(t, profile.AggregateScores.IsEmpty())
	assert.Empty(t, profile.SkillAssessment.AssessedLevels)
	assert.Equal(t, DefaultJobField, profile.CareerInsights.JobField)
}

func TestProfileKey(t *testing.T) {
	assert.Equal(t, "evaluations/jane_doe_20250102_150405.json", ProfileKey("Jane  Doe", fixedNow))
	assert.Equal(t, "evaluations/anonymous_20250102_150405.json", ProfileKey("  ", fixedNow))
	assert.Equal(t, "evaluations/etcpasswd_20250102_150405.json", ProfileKey("../etc/passwd", fixedNow))
}
