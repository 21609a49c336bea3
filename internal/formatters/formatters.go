package formatters

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"intervu/internal/career"
	"intervu/internal/questions"
	"intervu/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "EvaluationRecord", &RecordTextFormatter{})
	registry.RegisterFormatter("markdown", "EvaluationRecord", &RecordMarkdownFormatter{})
	registry.RegisterFormatter("text", "CareerProfile", &ProfileTextFormatter{})
	registry.RegisterFormatter("markdown", "CareerProfile", &ProfileMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeSummary", &SummaryTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeSummary", &SummaryMarkdownFormatter{})
	registry.RegisterFormatter("text", "CareerRecommendations", &RecommendationsTextFormatter{})
	registry.RegisterFormatter("markdown", "CareerRecommendations", &RecommendationsMarkdownFormatter{})
	registry.RegisterFormatter("text", "QuestionList", &QuestionsTextFormatter{})
	registry.RegisterFormatter("markdown", "QuestionList", &QuestionsMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats, sorted
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case career.EvaluationRecord:
		return "EvaluationRecord"
	case career.CareerProfile:
		return "CareerProfile"
	case types.ResumeSummary:
		return "ResumeSummary"
	case types.CareerRecommendations:
		return "CareerRecommendations"
	case []questions.Question:
		return "QuestionList"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData) + "\n", nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// categoryLabel turns "technical_accuracy" into "Technical Accuracy"
func categoryLabel(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func writeList(b *strings.Builder, prefix string, items []string) {
	if len(items) == 0 {
		b.WriteString(prefix + "None\n")
		return
	}
	for _, item := range items {
		b.WriteString(prefix + item + "\n")
	}
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
