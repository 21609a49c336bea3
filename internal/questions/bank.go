// Package questions holds the interview question bank and the sampler that
// picks a balanced set of questions for a session.
package questions

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"intervu/internal/errors"
)

// Question categories, in the order a session asks them.
const (
	CategoryBackground   = "Background"
	CategoryTechnical    = "Technical"
	CategoryBehavioral   = "Behavioral"
	CategoryRoleSpecific = "Role-specific"
)

// CategoryOrder is the order in which categories are interleaved.
var CategoryOrder = []string{CategoryBackground, CategoryTechnical, CategoryBehavioral, CategoryRoleSpecific}

//go:embed default_bank.yaml
var defaultBankYAML []byte

// Question is one interview question with its category.
type Question struct {
	Category string `json:"category"`
	Text     string `json:"question"`
}

type bankFile struct {
	Common map[string][]string `yaml:"common"`
	Fields []struct {
		Name       string              `yaml:"name"`
		Categories map[string][]string `yaml:"categories"`
	} `yaml:"fields"`
}

// Bank maps job fields to categorized questions. Common categories apply to
// every field unless the field defines the same category itself.
type Bank struct {
	fields []string
	byName map[string]map[string][]string
	common map[string][]string
}

// Default returns the built-in question bank.
func Default() *Bank {
	b, err := Parse(defaultBankYAML)
	if err != nil {
		panic(fmt.Sprintf("questions: invalid built-in bank: %v", err))
	}
	return b
}

// Load reads a YAML question bank from path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read question bank", err).
			WithContext("path", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML question bank.
func Parse(data []byte) (*Bank, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat, "question bank is not valid YAML", err)
	}
	if len(file.Fields) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat, "question bank defines no job fields", nil)
	}

	b := &Bank{
		byName: make(map[string]map[string][]string, len(file.Fields)),
		common: cleanCategories(file.Common),
	}
	for _, f := range file.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat, "question bank has a field without a name", nil)
		}
		if _, dup := b.byName[name]; dup {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat, "question bank repeats a job field", nil).
				WithContext("field", name)
		}
		cats := cleanCategories(f.Categories)
		if len(cats) == 0 {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat, "job field has no questions", nil).
				WithContext("field", name)
		}
		b.fields = append(b.fields, name)
		b.byName[name] = cats
	}
	return b, nil
}

func cleanCategories(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for cat, qs := range in {
		var kept []string
		for _, q := range qs {
			if q = strings.TrimSpace(q); q != "" && !slices.Contains(kept, q) {
				kept = append(kept, q)
			}
		}
		if len(kept) > 0 {
			out[cat] = kept
		}
	}
	return out
}

// Fields returns the job fields in bank order.
func (b *Bank) Fields() []string {
	return slices.Clone(b.fields)
}

// HasField reports whether the bank knows the job field.
func (b *Bank) HasField(field string) bool {
	_, ok := b.byName[field]
	return ok
}

// Categories returns the categories available for field in interview order,
// followed by any extra categories the bank defines, sorted by name.
func (b *Bank) Categories(field string) []string {
	var out []string
	for _, cat := range CategoryOrder {
		if len(b.questions(field, cat)) > 0 {
			out = append(out, cat)
		}
	}
	var extra []string
	for cat := range b.byName[field] {
		if !slices.Contains(CategoryOrder, cat) {
			extra = append(extra, cat)
		}
	}
	for cat := range b.common {
		if !slices.Contains(CategoryOrder, cat) && !slices.Contains(extra, cat) {
			extra = append(extra, cat)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

func (b *Bank) questions(field, category string) []string {
	if qs, ok := b.byName[field][category]; ok {
		return qs
	}
	return b.common[category]
}

// Questions returns every question for a field in category order.
func (b *Bank) Questions(field string) ([]Question, error) {
	if !b.HasField(field) {
		return nil, unknownField(field)
	}
	var out []Question
	for _, cat := range b.Categories(field) {
		for _, q := range b.questions(field, cat) {
			out = append(out, Question{Category: cat, Text: q})
		}
	}
	return out, nil
}

func unknownField(field string) error {
	return errors.NewValidationError(errors.ErrCodeUnknownJobField, fmt.Sprintf("unknown job field %q", field), nil).
		WithContext("field", field)
}
