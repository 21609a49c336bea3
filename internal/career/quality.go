package career

import (
	"strings"
	"unicode"
)

// Answers shorter than this many non-whitespace characters are treated as empty.
const minAnswerChars = 10

// longAnswerWords is the word count at which length itself counts as an indicator.
const longAnswerWords = 50

var (
	examplePhrases = []string{
		"for example", "for instance", "such as", "in my previous", "in my last",
		"at my previous", "when i", "one time", "specifically",
	}
	professionalPhrases = []string{
		"implemented", "managed", "developed", "collaborated", "coordinated",
		"delivered", "stakeholder", "responsible for", "led the", "team",
	}
	problemSolvingPhrases = []string{
		"solved", "resolved", "solution", "approach", "analyzed", "identified",
		"troubleshoot", "debug", "improved", "optimized", "challenge",
	}
)

// qualityTier is one row of the answer-quality lookup table.
type qualityTier struct {
	minWords      int
	minIndicators int
	quality       int
	factor        float64
}

// qualityTiers is ordered from best to worst; the first matching row wins.
var qualityTiers = []qualityTier{
	{minWords: 80, minIndicators: 3, quality: 5, factor: 1.00},
	{minWords: 60, minIndicators: 2, quality: 4, factor: 0.85},
	{minWords: 40, minIndicators: 1, quality: 3, factor: 0.70},
	{minWords: 20, minIndicators: 0, quality: 2, factor: 0.50},
}

var emptyAnswerQuality = Quality{QualityScore: 1, CompletenessFactor: 0.30}

// AssessQuality grades an answer from its text alone.
func AssessQuality(answer string) Quality {
	if countNonSpace(answer) < minAnswerChars {
		return emptyAnswerQuality
	}

	words := len(strings.Fields(answer))
	indicators := countIndicators(strings.ToLower(answer), words)

	for _, tier := range qualityTiers {
		if words >= tier.minWords && indicators >= tier.minIndicators {
			return Quality{QualityScore: tier.quality, CompletenessFactor: tier.factor}
		}
	}
	return emptyAnswerQuality
}

func countIndicators(lower string, words int) int {
	n := 0
	for _, phrases := range [][]string{examplePhrases, professionalPhrases, problemSolvingPhrases} {
		if containsAny(lower, phrases) {
			n++
		}
	}
	if words >= longAnswerWords {
		n++
	}
	return n
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// AdjustScore deflates a raw 1-10 score by the completeness factor, never below 1.
func AdjustScore(raw int, factor float64) int {
	return max(1, int(float64(raw)*factor))
}

// Skill levels are kept inside this band after adjustment.
const (
	MinSkillLevel = 10
	MaxSkillLevel = 85
)

// AdjustSkillLevel scales a raw skill level and clamps it into the realism band.
func AdjustSkillLevel(raw int, factor float64) int {
	return clampInt(int(float64(raw)*factor), MinSkillLevel, MaxSkillLevel)
}
