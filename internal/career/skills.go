package career

import (
	"fmt"
	"slices"
	"sort"
)

// SkillLevel is the gap analysis for one observed skill.
type SkillLevel struct {
	Name          string          `json:"name"`
	Current       int             `json:"current"`
	Desired       int             `json:"desired"`
	GapPercentage float64         `json:"gapPercentage"`
	Confidence    ConfidenceLevel `json:"confidence"`
}

// SkillCount is how often a skill was demonstrated.
type SkillCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SkillAssessment is the skill-gap report for a session.
type SkillAssessment struct {
	AssessedLevels     []SkillLevel `json:"assessedLevels"`
	DemonstratedSkills []SkillCount `json:"demonstratedSkills"`
	AssessmentNote     string       `json:"assessmentNote"`
}

const (
	maxDesiredLevel       = 95
	maxDemonstratedSkills = 8
)

// SkillGap returns the markup added to a current level to reach the target.
func SkillGap(current int) int {
	switch {
	case current < 40:
		return 45
	case current < 60:
		return 35
	default:
		return 25
	}
}

// DesiredLevel returns the target level for a current level.
func DesiredLevel(current int) int {
	return min(maxDesiredLevel, current+SkillGap(current))
}

// Profile builds the skill-gap report. Skills appear in first-seen order;
// within one record, skill levels are visited alphabetically.
func Profile(set EvaluationSet) SkillAssessment {
	n := set.Len()
	assessment := SkillAssessment{
		AssessedLevels:     []SkillLevel{},
		DemonstratedSkills: []SkillCount{},
	}
	if n == 0 {
		assessment.AssessmentNote = "No answers were submitted, so no skills could be assessed."
		return assessment
	}

	var order []string
	observed := make(map[string][]int)
	var seen []string
	counts := make(map[string]int)

	for _, rec := range set.records {
		names := make([]string, 0, len(rec.SkillLevels))
		for name := range rec.SkillLevels {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if _, ok := observed[name]; !ok {
				order = append(order, name)
			}
			observed[name] = append(observed[name], rec.SkillLevels[name])
		}

		for _, name := range rec.SkillsDemonstrated {
			if counts[name] == 0 {
				seen = append(seen, name)
			}
			counts[name]++
		}
	}

	factor := skillDiscount.factor(n)
	confidence := ConfidenceFor(n)
	for _, name := range order {
		levels := observed[name]
		sum := 0
		for _, l := range levels {
			sum += l
		}
		current := min(max(int(float64(sum)/float64(len(levels))*factor), 0), maxDesiredLevel)
		desired := DesiredLevel(current)
		assessment.AssessedLevels = append(assessment.AssessedLevels, SkillLevel{
			Name:          name,
			Current:       current,
			Desired:       desired,
			GapPercentage: round1(100 * float64(desired-current) / float64(desired)),
			Confidence:    confidence,
		})
	}

	for _, name := range seen {
		assessment.DemonstratedSkills = append(assessment.DemonstratedSkills, SkillCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(assessment.DemonstratedSkills, func(i, j int) bool {
		return assessment.DemonstratedSkills[i].Count > assessment.DemonstratedSkills[j].Count
	})
	if len(assessment.DemonstratedSkills) > maxDemonstratedSkills {
		assessment.DemonstratedSkills = assessment.DemonstratedSkills[:maxDemonstratedSkills]
	}

	assessment.AssessmentNote = fmt.Sprintf(
		"Based on %d answered question(s) (%s confidence). Current levels are discounted when few answers are available; "+
			"target levels add a larger gap for less developed skills (45 points below 40, 35 below 60, 25 otherwise, capped at %d).",
		n, confidence, maxDesiredLevel)
	return assessment
}
