package formatters

import (
	"fmt"
	"strings"

	"intervu/internal/career"
)

// ProfileTextFormatter handles text formatting for career profiles
type ProfileTextFormatter struct{}

func (ptf *ProfileTextFormatter) Format(data any) (string, error) {
	p, ok := data.(career.CareerProfile)
	if !ok {
		return "", fmt.Errorf("expected CareerProfile, got %T", data)
	}

	var output strings.Builder
	insights := p.CareerInsights

	output.WriteString("=== CAREER PROFILE ===\n\n")
	output.WriteString(fmt.Sprintf("Interviewee: %s\n", p.Interviewee))
	output.WriteString(fmt.Sprintf("Job field:   %s\n", insights.JobField))
	output.WriteString(fmt.Sprintf("Generated:   %s\n", p.Timestamp.Format("2006-01-02 15:04 MST")))
	output.WriteString(fmt.Sprintf("Answers:     %d (confidence %s)\n\n",
		insights.AssessmentReliability.QuestionsAnswered, insights.AssessmentReliability.ConfidenceLevel))

	output.WriteString("=== AGGREGATE SCORES ===\n")
	if p.AggregateScores.IsEmpty() {
		output.WriteString("No answers scored.\n")
	}
	for _, k := range p.AggregateScores.Keys() {
		v, _ := p.AggregateScores.Get(k)
		output.WriteString(fmt.Sprintf("  %-20s %.1f/10\n", categoryLabel(k)+":", v))
	}

	output.WriteString("\n=== SKILLS ===\n")
	for _, s := range p.SkillAssessment.AssessedLevels {
		output.WriteString(fmt.Sprintf("  %-24s current %d, target %d (gap %.1f%%)\n", s.Name, s.Current, s.Desired, s.GapPercentage))
	}
	if len(p.SkillAssessment.DemonstratedSkills) > 0 {
		output.WriteString("  Demonstrated: ")
		names := make([]string, 0, len(p.SkillAssessment.DemonstratedSkills))
		for _, s := range p.SkillAssessment.DemonstratedSkills {
			names = append(names, fmt.Sprintf("%s (%d)", s.Name, s.Count))
		}
		output.WriteString(strings.Join(names, ", ") + "\n")
	}
	output.WriteString("  " + p.SkillAssessment.AssessmentNote + "\n")

	output.WriteString("\n=== CAREER PATHS ===\n")
	for _, cp := range insights.CareerPaths {
		output.WriteString(fmt.Sprintf("  %s: %d%% match, %s\n", cp.Name, cp.Compatibility, cp.DevelopmentTime))
	}

	output.WriteString("\n=== WORK ENVIRONMENT ===\n")
	for _, axis := range insights.WorkEnvironment {
		output.WriteString(fmt.Sprintf("  %-28s %d\n", axis.Name+":", axis.Score))
	}

	output.WriteString("\n=== DEVELOPMENT ===\n")
	for _, d := range insights.Development {
		output.WriteString(fmt.Sprintf("  [%s] %s: %s\n", d.Priority, d.Area, d.Recommendation))
	}

	output.WriteString("\n" + insights.AssessmentReliability.Recommendation + "\n")
	return output.String(), nil
}

func (ptf *ProfileTextFormatter) SupportedType() string {
	return "CareerProfile"
}

// ProfileMarkdownFormatter handles markdown formatting for career profiles
type ProfileMarkdownFormatter struct{}

func (pmf *ProfileMarkdownFormatter) Format(data any) (string, error) {
	p, ok := data.(career.CareerProfile)
	if !ok {
		return "", fmt.Errorf("expected CareerProfile, got %T", data)
	}

	var output strings.Builder
	insights := p.CareerInsights

	output.WriteString(fmt.Sprintf("# Career Profile: %s\n\n", p.Interviewee))
	output.WriteString(fmt.Sprintf("**Job field:** %s  \n", insights.JobField))
	output.WriteString(fmt.Sprintf("**Answers:** %d (%s confidence)\n\n",
		insights.AssessmentReliability.QuestionsAnswered, insights.AssessmentReliability.ConfidenceLevel))

	output.WriteString("## Aggregate Scores\n\n")
	if p.AggregateScores.IsEmpty() {
		output.WriteString("No answers scored.\n")
	} else {
		output.WriteString("| Category | Score |\n|---|---|\n")
		for _, k := range p.AggregateScores.Keys() {
			v, _ := p.AggregateScores.Get(k)
			output.WriteString(fmt.Sprintf("| %s | %.1f/10 |\n", categoryLabel(k), v))
		}
	}

	output.WriteString("\n## Skill Assessment\n\n")
	if len(p.SkillAssessment.AssessedLevels) > 0 {
		output.WriteString("| Skill | Current | Target | Gap |\n|---|---|---|---|\n")
		for _, s := range p.SkillAssessment.AssessedLevels {
			output.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f%% |\n", s.Name, s.Current, s.Desired, s.GapPercentage))
		}
		output.WriteString("\n")
	}
	output.WriteString(p.SkillAssessment.AssessmentNote + "\n")

	output.WriteString("\n## Career Paths\n\n")
	for _, cp := range insights.CareerPaths {
		output.WriteString(fmt.Sprintf("### %s (%d%%)\n%s\n\n", cp.Name, cp.Compatibility, cp.Description))
		output.WriteString(fmt.Sprintf("- **Development time:** %s\n", cp.DevelopmentTime))
		output.WriteString(fmt.Sprintf("- **Key skills:** %s\n\n", strings.Join(cp.KeySkills, ", ")))
	}

	output.WriteString("## Development Plan\n\n")
	for _, d := range insights.Development {
		output.WriteString(fmt.Sprintf("- **%s** (%s priority): %s\n", d.Area, d.Priority, d.Recommendation))
	}

	output.WriteString(fmt.Sprintf("\n> %s\n", insights.AssessmentReliability.Recommendation))
	return output.String(), nil
}

func (pmf *ProfileMarkdownFormatter) SupportedType() string {
	return "CareerProfile"
}
