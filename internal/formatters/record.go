package formatters

import (
	"fmt"
	"strings"

	"intervu/internal/career"
)

// RecordTextFormatter handles text formatting for a single answer evaluation
type RecordTextFormatter struct{}

func (rtf *RecordTextFormatter) Format(data any) (string, error) {
	rec, ok := data.(career.EvaluationRecord)
	if !ok {
		return "", fmt.Errorf("expected EvaluationRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ANSWER EVALUATION ===\n\n")
	output.WriteString(fmt.Sprintf("Job field: %s\n", rec.JobField))
	output.WriteString(fmt.Sprintf("Question: %s\n\n", rec.Question))
	if rec.IsFallback() {
		output.WriteString(fmt.Sprintf("Note: automatic scoring failed (%s); fallback scores shown.\n\n", rec.Error))
	}

	output.WriteString("Scores:\n")
	for _, c := range career.Categories {
		if s, ok := rec.Score(c); ok {
			output.WriteString(fmt.Sprintf("  %-20s %d/10\n", categoryLabel(c)+":", s))
		}
	}
	output.WriteString("\nStrengths:\n")
	writeList(&output, "  - ", rec.Feedback.Strengths)
	output.WriteString("\nAreas for improvement:\n")
	writeList(&output, "  - ", rec.Feedback.AreasForImprovement)
	output.WriteString("\nMissing elements:\n")
	writeList(&output, "  - ", rec.Feedback.MissingElements)

	if rec.ImprovedAnswer != "" {
		output.WriteString("\nExample improved response:\n")
		output.WriteString(rec.ImprovedAnswer)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *RecordTextFormatter) SupportedType() string {
	return "EvaluationRecord"
}

// RecordMarkdownFormatter renders the per-answer feedback report
type RecordMarkdownFormatter struct{}

func (rmf *RecordMarkdownFormatter) Format(data any) (string, error) {
	rec, ok := data.(career.EvaluationRecord)
	if !ok {
		return "", fmt.Errorf("expected EvaluationRecord, got %T", data)
	}
	return FeedbackMarkdown(rec), nil
}

func (rmf *RecordMarkdownFormatter) SupportedType() string {
	return "EvaluationRecord"
}

// FeedbackMarkdown renders the feedback shown to a candidate after an answer
func FeedbackMarkdown(rec career.EvaluationRecord) string {
	var output strings.Builder

	output.WriteString("## Feedback on Your Answer\n\n")
	output.WriteString("### Strengths:\n")
	writeList(&output, "- ", rec.Feedback.Strengths)
	output.WriteString("\n### Areas for Improvement:\n")
	writeList(&output, "- ", rec.Feedback.AreasForImprovement)
	output.WriteString("\n### Missing Elements:\n")
	writeList(&output, "- ", rec.Feedback.MissingElements)

	output.WriteString("\n### Performance Scores:\n")
	for _, c := range career.Categories {
		if s, ok := rec.Score(c); ok {
			output.WriteString(fmt.Sprintf("- %s: %d/10\n", categoryLabel(c), s))
		}
	}

	output.WriteString("\n### Example Improved Response:\n")
	output.WriteString(rec.ImprovedAnswer)
	output.WriteString("\n")

	return output.String()
}
