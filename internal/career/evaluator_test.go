package career

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReply = `{
  "scores": {"content": 8, "clarity": 7, "technical_accuracy": 6, "confidence": 9, "overall": 8},
  "feedback": {
    "strengths": ["Clear structure"],
    "areas_for_improvement": ["Quantify results"],
    "missing_elements": ["Team size"]
  },
  "skills_demonstrated": ["Go", "Debugging"],
  "skill_levels": {"Go": 70, "Debugging": 100},
  "improved_answer": "In my last role I...",
  "keywords": ["latency", "profiling"]
}`

var fixedNow = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

func staticOracle(reply string, err error) Oracle {
	return OracleFunc(func(context.Context, OracleRequest) (string, error) {
		return reply, err
	})
}

func fullAnswer() string {
	return "For example I implemented a fix and solved the outage. " + words(80)
}

func TestEvaluateAppliesCompletenessFactor(t *testing.T) {
	ev := NewEvaluator(staticOracle(validReply, nil)).WithClock(func() time.Time { return fixedNow })

	t.Run("full answer keeps raw scores", func(t *testing.T) {
		rec := ev.Evaluate(context.Background(), "Q1", fullAnswer(), "Software Engineering")

		assert.Empty(t, rec.Error)
		assert.False(t, rec.IsFallback())
		assert.Equal(t, Quality{QualityScore: 5, CompletenessFactor: 1.0}, rec.Quality)
		assert.Equal(t, map[string]int{
			"content": 8, "clarity": 7, "technical_accuracy": 6, "confidence": 9, "overall": 8,
		}, rec.Scores)
		assert.Equal(t, map[string]int{"Go": 70, "Debugging": 85}, rec.SkillLevels)
		assert.Equal(t, []string{"Go", "Debugging"}, rec.SkillsDemonstrated)
		assert.Equal(t, []string{"Clear structure"}, rec.Feedback.Strengths)
		assert.Equal(t, "In my last role I...", rec.ImprovedAnswer)
		assert.Equal(t, fixedNow, rec.Timestamp)
		assert.Equal(t, "Software Engineering", rec.JobField)
	})

	t.Run("short answer is deflated", func(t *testing.T) {
		rec := ev.Evaluate(context.Background(), "Q2", words(25), "Software Engineering")

		require.Empty(t, rec.Error)
		assert.Equal(t, 0.50, rec.Quality.CompletenessFactor)
		assert.Equal(t, 4, rec.Scores[CategoryOverall])
		assert.Equal(t, 3, rec.Scores[CategoryTechnicalAccuracy])
		assert.Equal(t, 35, rec.SkillLevels["Go"])
		assert.Equal(t, 50, rec.SkillLevels["Debugging"])
	})

	t.Run("empty job field defaults", func(t *testing.T) {
		rec := ev.Evaluate(context.Background(), "Q3", words(25), "  ")
		assert.Equal(t, DefaultJobField, rec.JobField)
	})
}

func TestEvaluateFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		oracle Oracle
	}{
		{"oracle error", staticOracle("", errors.New("connection refused"))},
		{"not json", staticOracle("I think the answer was fine.", nil)},
		{"score out of range", staticOracle(`{"scores":{"content":11,"clarity":7,"technical_accuracy":6,"confidence":9,"overall":8}}`, nil)},
		{"missing scores", staticOracle(`{"feedback":{"strengths":["ok"]}}`, nil)},
		{"missing one category", staticOracle(`{"scores":{"content":5,"clarity":7,"technical_accuracy":6,"confidence":9}}`, nil)},
		{"bad skill level", staticOracle(`{"scores":{"content":5,"clarity":7,"technical_accuracy":6,"confidence":9,"overall":4},"skill_levels":{"Go":150}}`, nil)},
		{"panicking oracle", OracleFunc(func(context.Context, OracleRequest) (string, error) { panic("boom") })},
		{"nil oracle", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewEvaluator(tt.oracle).Evaluate(context.Background(), "Q", fullAnswer(), "Data Science")

			assert.True(t, rec.IsFallback())
			assert.NotEmpty(t, rec.Error)
			for _, c := range Categories {
				assert.Equal(t, FallbackScore, rec.Scores[c], c)
			}
			assert.Equal(t, map[string]int{FallbackSkill: FallbackSkillLevel}, rec.SkillLevels)
			assert.Equal(t, []string{FallbackSkill}, rec.SkillsDemonstrated)
			assert.NotEmpty(t, rec.Feedback.AreasForImprovement)
			assert.Equal(t, "Q", rec.Question)
			assert.Equal(t, "Data Science", rec.JobField)
		})
	}
}

func TestEvaluatePassesRequestToOracle(t *testing.T) {
	var got OracleRequest
	oracle := OracleFunc(func(_ context.Context, req OracleRequest) (string, error) {
		got = req
		return validReply, nil
	})

	NewEvaluator(oracle).Evaluate(context.Background(), "Why Go?", "Because it is simple.", "Software Engineering")

	assert.Equal(t, OracleRequest{Question: "Why Go?", Answer: "Because it is simple.", JobField: "Software Engineering"}, got)
}

func TestParseOracleReply(t *testing.T) {
	t.Run("fenced reply", func(t *testing.T) {
		out, err := ParseOracleReply("```json\n" + validReply + "\n```")
		require.NoError(t, err)
		assert.Equal(t, 8, out.Scores.Overall)
		assert.Equal(t, []string{"latency", "profiling"}, out.Keywords)
	})

	t.Run("skill levels as list", func(t *testing.T) {
		out, err := ParseOracleReply(`{"scores":{"content":5,"clarity":5,"technical_accuracy":5,"confidence":5,"overall":5},
			"skill_levels":[{"skill":"SQL","level":40},{"skill":"Python","level":55}]}`)
		require.NoError(t, err)
		assert.Equal(t, OracleSkillLevels{"SQL": 40, "Python": 55}, out.SkillLevels)
	})

	t.Run("missing collections are empty", func(t *testing.T) {
		out, err := ParseOracleReply(`{"scores":{"content":5,"clarity":5,"technical_accuracy":5,"confidence":5,"overall":5}}`)
		require.NoError(t, err)
		assert.Empty(t, out.SkillLevels)
		assert.Empty(t, out.SkillsDemonstrated)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ParseOracleReply("no json here")
		assert.Error(t, err)
	})
}

func TestFallbackRecord(t *testing.T) {
	rec := Fallback("Q", "A", "", errors.New("quota exceeded"), fixedNow)

	assert.Equal(t, DefaultJobField, rec.JobField)
	assert.Equal(t, FallbackScore, rec.Scores[CategoryOverall])
	assert.Equal(t, "quota exceeded", rec.Error)
	assert.Equal(t, fixedNow, rec.Timestamp)
}
