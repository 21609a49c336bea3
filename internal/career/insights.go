package career

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// EnvironmentAxis is one dimension of the work-environment preference profile.
type EnvironmentAxis struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// DevelopmentRecommendation is a suggested area of growth.
type DevelopmentRecommendation struct {
	Area           string   `json:"area"`
	Priority       string   `json:"priority"`
	Recommendation string   `json:"recommendation"`
	Resources      []string `json:"resources"`
}

// AssessmentReliability describes how much weight the insights deserve.
type AssessmentReliability struct {
	QuestionsAnswered int             `json:"questionsAnswered"`
	ConfidenceLevel   ConfidenceLevel `json:"confidenceLevel"`
	Recommendation    string          `json:"recommendation"`
}

// CareerInsights is the qualitative part of a career profile.
type CareerInsights struct {
	JobField              string                      `json:"jobField"`
	AverageOverallScore   float64                     `json:"averageOverallScore"`
	Compatibility         int                         `json:"compatibility"`
	CareerPaths           []CareerPath                `json:"careerPaths"`
	WorkEnvironment       []EnvironmentAxis           `json:"workEnvironment"`
	Development           []DevelopmentRecommendation `json:"development"`
	AssessmentReliability AssessmentReliability       `json:"assessmentReliability"`
}

const (
	missingOverallScore = 3
	minCompatibility    = 40
	maxCompatibility    = 90
	minAxisScore        = 15
	maxAxisScore        = 85
)

// ReliabilityAdvice is attached to every insight report.
const ReliabilityAdvice = "Answer at least 5 questions for a more reliable career assessment."

// environmentAxes are drawn from the generator in this order.
var environmentAxes = []struct {
	name       string
	offset     float64
	multiplier float64
	jitterLow  int
	jitterHigh int
}{
	{"Collaborative", 40, 3.0, -10, 20},
	{"Autonomous", 30, 3.5, -10, 30},
	{"Fast-paced", 30, 3.0, -10, 25},
	{"Structured", 30, 2.5, -10, 30},
	{"Creative", 20, 3.0, -10, 35},
	{"Data-driven", 40, 3.5, -10, 20},
}

// GenerateInsights derives career paths, a work-environment profile and
// development recommendations. The same set always yields the same insights.
func GenerateInsights(set EvaluationSet) CareerInsights {
	n := set.Len()
	jobField := DefaultJobField
	if n > 0 && strings.TrimSpace(set.records[0].JobField) != "" {
		jobField = set.records[0].JobField
	}

	avg := averageOverall(set)
	base := clampInt(int(math.Round(avg/10*85)), minCompatibility, maxCompatibility)
	realistic := int(math.Round(float64(base) * compatibilityDiscount.factor(n)))

	return CareerInsights{
		JobField:            jobField,
		AverageOverallScore: round1(avg),
		Compatibility:       realistic,
		CareerPaths:         careerPaths(jobField, realistic),
		WorkEnvironment:     workEnvironment(avg, seedFor(set)),
		Development:         developmentPlan(jobField, avg),
		AssessmentReliability: AssessmentReliability{
			QuestionsAnswered: n,
			ConfidenceLevel:   ConfidenceFor(n),
			Recommendation:    ReliabilityAdvice,
		},
	}
}

func averageOverall(set EvaluationSet) float64 {
	if set.Len() == 0 {
		return missingOverallScore
	}
	sum := 0
	for _, rec := range set.records {
		if v, ok := rec.Score(CategoryOverall); ok {
			sum += v
		} else {
			sum += missingOverallScore
		}
	}
	return float64(sum) / float64(set.Len())
}

// seedFor hashes the canonical JSON encoding of the set. encoding/json sorts
// map keys, so equal sets always hash equally.
func seedFor(set EvaluationSet) uint64 {
	data, err := json.Marshal(set)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

func workEnvironment(avg float64, seed uint64) []EnvironmentAxis {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	axes := make([]EnvironmentAxis, 0, len(environmentAxes))
	for _, a := range environmentAxes {
		base := int(math.Round(a.offset + avg*a.multiplier))
		jitter := a.jitterLow + rng.IntN(a.jitterHigh-a.jitterLow+1)
		axes = append(axes, EnvironmentAxis{
			Name:  a.name,
			Score: clampInt(base+jitter, minAxisScore, maxAxisScore),
		})
	}
	return axes
}

func developmentPlan(jobField string, avg float64) []DevelopmentRecommendation {
	priority := func(high bool) string {
		if high {
			return "High"
		}
		return "Medium"
	}
	return []DevelopmentRecommendation{
		{
			Area:           "Technical Skills",
			Priority:       priority(avg < 6),
			Recommendation: fmt.Sprintf("Strengthen core %s knowledge with hands-on projects and explain the technical reasoning behind your decisions.", jobField),
			Resources:      []string{"Online courses and certifications in your field", "Open-source or portfolio projects", "Technical books and documentation"},
		},
		{
			Area:           "Communication",
			Priority:       priority(avg < 5),
			Recommendation: "Structure answers with the STAR method and practise explaining complex ideas concisely.",
			Resources:      []string{"Mock interview practice", "Public speaking groups", "Recorded self-review of answers"},
		},
		{
			Area:           "Professional Experience",
			Priority:       priority(avg < 7),
			Recommendation: "Collect concrete, measurable examples from past roles and look for projects that broaden your responsibilities.",
			Resources:      []string{"Volunteer or cross-team projects", "Mentorship programs", "Industry networking events"},
		},
	}
}
