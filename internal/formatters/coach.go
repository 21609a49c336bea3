package formatters

import (
	"fmt"
	"strings"

	"intervu/internal/questions"
	"intervu/internal/types"
)

// SummaryTextFormatter handles text formatting for résumé summaries
type SummaryTextFormatter struct{}

func (stf *SummaryTextFormatter) Format(data any) (string, error) {
	s, ok := data.(types.ResumeSummary)
	if !ok {
		return "", fmt.Errorf("expected ResumeSummary, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== RÉSUMÉ SUMMARY ===\n\n")
	output.WriteString(fmt.Sprintf("Name:         %s\n", s.Name))
	output.WriteString(fmt.Sprintf("Email:        %s\n", s.Email))
	output.WriteString(fmt.Sprintf("Phone:        %s\n", s.Phone))
	output.WriteString(fmt.Sprintf("Current role: %s\n", s.CurrentRole))
	output.WriteString(fmt.Sprintf("Experience:   %s years\n\n", s.ExperienceYears))
	output.WriteString("Skills:\n")
	writeList(&output, "  - ", s.Skills)
	output.WriteString("\nStrengths:\n")
	writeList(&output, "  - ", s.Strengths)
	output.WriteString("\nAreas for improvement:\n")
	writeList(&output, "  - ", s.AreasForImprovement)
	return output.String(), nil
}

func (stf *SummaryTextFormatter) SupportedType() string {
	return "ResumeSummary"
}

// SummaryMarkdownFormatter handles markdown formatting for résumé summaries
type SummaryMarkdownFormatter struct{}

func (smf *SummaryMarkdownFormatter) Format(data any) (string, error) {
	s, ok := data.(types.ResumeSummary)
	if !ok {
		return "", fmt.Errorf("expected ResumeSummary, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("# %s\n\n", s.Name))
	output.WriteString(fmt.Sprintf("**%s**, %s years of experience\n\n", s.CurrentRole, s.ExperienceYears))
	if s.Email != "" || s.Phone != "" {
		output.WriteString(fmt.Sprintf("%s %s\n\n", s.Email, s.Phone))
	}
	output.WriteString("## Skills\n")
	writeList(&output, "- ", s.Skills)
	output.WriteString("\n## Strengths\n")
	writeList(&output, "- ", s.Strengths)
	output.WriteString("\n## Areas for Improvement\n")
	writeList(&output, "- ", s.AreasForImprovement)
	return output.String(), nil
}

func (smf *SummaryMarkdownFormatter) SupportedType() string {
	return "ResumeSummary"
}

// RecommendationsTextFormatter handles text formatting for career recommendations
type RecommendationsTextFormatter struct{}

func (rtf *RecommendationsTextFormatter) Format(data any) (string, error) {
	r, ok := data.(types.CareerRecommendations)
	if !ok {
		return "", fmt.Errorf("expected CareerRecommendations, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== CAREER RECOMMENDATIONS ===\n")
	for _, sec := range recommendationSections(r) {
		output.WriteString("\n" + sec.title + ":\n")
		writeList(&output, "  - ", sec.items)
	}
	output.WriteString(fmt.Sprintf("\nSalary range: %s\n", r.SalaryRange))
	return output.String(), nil
}

func (rtf *RecommendationsTextFormatter) SupportedType() string {
	return "CareerRecommendations"
}

// RecommendationsMarkdownFormatter handles markdown formatting for career recommendations
type RecommendationsMarkdownFormatter struct{}

func (rmf *RecommendationsMarkdownFormatter) Format(data any) (string, error) {
	r, ok := data.(types.CareerRecommendations)
	if !ok {
		return "", fmt.Errorf("expected CareerRecommendations, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Career Recommendations\n")
	for _, sec := range recommendationSections(r) {
		output.WriteString("\n## " + sec.title + "\n")
		writeList(&output, "- ", sec.items)
	}
	output.WriteString(fmt.Sprintf("\n**Salary range:** %s\n", r.SalaryRange))
	return output.String(), nil
}

func (rmf *RecommendationsMarkdownFormatter) SupportedType() string {
	return "CareerRecommendations"
}

type section struct {
	title string
	items []string
}

func recommendationSections(r types.CareerRecommendations) []section {
	return []section{
		{"Suitable Roles", r.SuitableRoles},
		{"Growth Opportunities", r.GrowthOpportunities},
		{"Skill Recommendations", r.SkillRecommendations},
		{"Industry Insights", r.IndustryInsights},
		{"Next Steps", r.NextSteps},
		{"Interview Focus Areas", r.InterviewFocusAreas},
	}
}

// QuestionsTextFormatter handles text formatting for sampled questions
type QuestionsTextFormatter struct{}

func (qtf *QuestionsTextFormatter) Format(data any) (string, error) {
	qs, ok := data.([]questions.Question)
	if !ok {
		return "", fmt.Errorf("expected []Question, got %T", data)
	}

	var output strings.Builder
	for i, q := range qs {
		output.WriteString(fmt.Sprintf("%2d. [%s] %s\n", i+1, q.Category, q.Text))
	}
	return output.String(), nil
}

func (qtf *QuestionsTextFormatter) SupportedType() string {
	return "QuestionList"
}

// QuestionsMarkdownFormatter handles markdown formatting for sampled questions
type QuestionsMarkdownFormatter struct{}

func (qmf *QuestionsMarkdownFormatter) Format(data any) (string, error) {
	qs, ok := data.([]questions.Question)
	if !ok {
		return "", fmt.Errorf("expected []Question, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Interview Questions\n\n")
	for i, q := range qs {
		output.WriteString(fmt.Sprintf("%d. **%s:** %s\n", i+1, q.Category, q.Text))
	}
	return output.String(), nil
}

func (qmf *QuestionsMarkdownFormatter) SupportedType() string {
	return "QuestionList"
}
