package career

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordWithOverall(i, overall int) EvaluationRecord {
	return EvaluationRecord{
		Question: fmt.Sprintf("question %d", i),
		Answer:   fmt.Sprintf("answer %d", i),
		JobField: "Software Engineering",
		Scores:   map[string]int{CategoryOverall: overall},
	}
}

func setOf(overalls ...int) EvaluationSet {
	records := make([]EvaluationRecord, 0, len(overalls))
	for i, o := range overalls {
		records = append(records, recordWithOverall(i, o))
	}
	return NewEvaluationSet(records...)
}

func TestAggregateConfidenceDiscount(t *testing.T) {
	tests := []struct {
		name       string
		set        EvaluationSet
		overall    float64
		confidence ConfidenceLevel
	}{
		{"two records", setOf(8, 8), 5.6, ConfidenceLow},
		{"three records", setOf(8, 8, 8), 6.8, ConfidenceMedium},
		{"four records", setOf(8, 8, 8, 8), 6.8, ConfidenceMedium},
		{"five records", setOf(8, 8, 8, 8, 8), 8.0, ConfidenceHigh},
		{"floored at one", setOf(1), 1.0, ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.set)
			got, ok := agg.Get(CategoryOverall)
			require.True(t, ok)
			assert.InDelta(t, tt.overall, got, 1e-9)
			require.NotNil(t, agg.DataCompleteness)
			assert.Equal(t, tt.set.Len(), agg.DataCompleteness.QuestionsAnswered)
			assert.Equal(t, tt.confidence, agg.DataCompleteness.ConfidenceLevel)
		})
	}
}

func TestAggregateHeterogeneousKeys(t *testing.T) {
	a := recordWithOverall(1, 8)
	a.Scores[CategoryContent] = 6
	b := recordWithOverall(2, 6)

	agg := Aggregate(NewEvaluationSet(a, b))

	content, ok := agg.Get(CategoryContent)
	require.True(t, ok)
	assert.InDelta(t, 4.2, content, 1e-9)
	overall, _ := agg.Get(CategoryOverall)
	assert.InDelta(t, 4.9, overall, 1e-9)
	_, ok = agg.Get(CategoryClarity)
	assert.False(t, ok)
}

func TestAggregateSkipsRecordsWithoutScores(t *testing.T) {
	a := recordWithOverall(1, 6)
	b := EvaluationRecord{Question: "q", Answer: "a"}

	agg := Aggregate(NewEvaluationSet(a, b))

	overall, _ := agg.Get(CategoryOverall)
	assert.InDelta(t, 4.2, overall, 1e-9)
	assert.Equal(t, 2, agg.DataCompleteness.QuestionsAnswered)
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(EvaluationSet{})

	assert.True(t, agg.IsEmpty())
	data, err := json.Marshal(agg)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestAggregateScoresJSON(t *testing.T) {
	agg := Aggregate(setOf(4, 6))

	data, err := json.Marshal(agg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall":3.5,"dataCompleteness":{"questionsAnswered":2,"confidenceLevel":"Low"}}`, string(data))

	var decoded AggregateScores
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, agg, decoded)
}

func TestAggregateKeysOrder(t *testing.T) {
	agg := AggregateScores{Categories: map[string]float64{"overall": 1, "zeta": 2, "content": 3, "alpha": 4}}
	assert.Equal(t, []string{"content", "overall", "alpha", "zeta"}, agg.Keys())
}

func TestEndToEndTwoRecords(t *testing.T) {
	set := setOf(4, 6)

	agg := Aggregate(set)
	overall, _ := agg.Get(CategoryOverall)
	assert.InDelta(t, 3.5, overall, 1e-9)
	assert.Equal(t, ConfidenceLow, agg.DataCompleteness.ConfidenceLevel)

	skills := Profile(set)
	assert.Empty(t, skills.AssessedLevels)
	assert.NotNil(t, skills.AssessedLevels)
}
