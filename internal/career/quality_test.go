package career

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestAssessQuality(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		quality int
		factor  float64
	}{
		{"blank", "   \n\t ", 1, 0.30},
		{"under ten characters", "abc def ghi", 1, 0.30},
		{"short plain answer", words(12), 1, 0.30},
		{"twenty plain words", words(25), 2, 0.50},
		{"forty words with an example", "For example " + words(40), 3, 0.70},
		{"sixty five plain words count length only", words(65), 3, 0.70},
		{"sixty words with example and length", "For instance " + words(60), 4, 0.85},
		{"full answer", "For example I implemented a fix and solved the outage. " + words(80), 5, 1.00},
		{"eighty words with two indicators", "Such as " + words(80), 4, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := AssessQuality(tt.answer)
			assert.Equal(t, tt.quality, q.QualityScore)
			assert.Equal(t, tt.factor, q.CompletenessFactor)
		})
	}
}

func TestAdjustScoreBoundsAndMonotonicity(t *testing.T) {
	factors := []float64{0.30, 0.50, 0.70, 0.85, 1.00}
	for s := 1; s <= 10; s++ {
		prev := 0
		for _, f := range factors {
			got := AdjustScore(s, f)
			assert.GreaterOrEqual(t, got, 1, "s=%d f=%v", s, f)
			assert.LessOrEqual(t, got, 10, "s=%d f=%v", s, f)
			assert.GreaterOrEqual(t, got, prev, "s=%d f=%v", s, f)
			prev = got
		}
	}
	assert.Equal(t, 4, AdjustScore(8, 0.50))
	assert.Equal(t, 1, AdjustScore(3, 0.30))
	assert.Equal(t, 10, AdjustScore(10, 1.00))
}

func TestAdjustSkillLevel(t *testing.T) {
	assert.Equal(t, 85, AdjustSkillLevel(100, 1.0))
	assert.Equal(t, 10, AdjustSkillLevel(20, 0.30))
	assert.Equal(t, 30, AdjustSkillLevel(60, 0.50))
	assert.Equal(t, 10, AdjustSkillLevel(0, 1.0))
}
