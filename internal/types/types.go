package types

import (
	"intervu/internal/career"
	"intervu/internal/questions"
)

// ResumeSummary is the structured extract of a résumé
type ResumeSummary struct {
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	CurrentRole         string   `json:"currentRole"`
	ExperienceYears     string   `json:"experienceYears"`
	Skills              []string `json:"skills"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
}

// IsEmpty reports whether the summary carries no information at all
func (s ResumeSummary) IsEmpty() bool {
	return s.Name == "" && s.CurrentRole == "" && s.ExperienceYears == "" &&
		len(s.Skills) == 0 && len(s.Strengths) == 0
}

// CareerRecommendations represents career advice derived from a résumé summary
type CareerRecommendations struct {
	SuitableRoles        []string `json:"suitableRoles"`
	GrowthOpportunities  []string `json:"growthOpportunities"`
	SkillRecommendations []string `json:"skillRecommendations"`
	IndustryInsights     []string `json:"industryInsights"`
	SalaryRange          string   `json:"salaryRange"`
	NextSteps            []string `json:"nextSteps"`
	InterviewFocusAreas  []string `json:"interviewFocusAreas"`
}

// Chat roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a coaching conversation
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// CoachChatInput is what the coach needs to answer one message
type CoachChatInput struct {
	Summary ResumeSummary `json:"summary"`
	History []ChatMessage `json:"history"`
	Message string        `json:"message"`
}

// EvaluateAnswerRequest represents the request payload for answer evaluation
type EvaluateAnswerRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	JobField string `json:"jobField"`
}

// ProfileRequest represents the request payload for building a career profile
type ProfileRequest struct {
	Interviewee string                    `json:"interviewee"`
	Records     []career.EvaluationRecord `json:"records" validate:"dive"`
}

// SampleQuestionsRequest represents the request payload for sampling questions
type SampleQuestionsRequest struct {
	JobField string `json:"jobField" validate:"required"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=20"`
	Seed     *int64 `json:"seed,omitempty"`
}

// SampleQuestionsResponse lists sampled questions
type SampleQuestionsResponse struct {
	JobField  string               `json:"jobField"`
	Questions []questions.Question `json:"questions"`
}

// FieldsResponse lists the job fields the question bank knows
type FieldsResponse struct {
	Fields []string `json:"fields"`
}

// CreateSessionRequest represents the request payload for starting an interview session
type CreateSessionRequest struct {
	Interviewee string `json:"interviewee" validate:"max=200"`
	JobField    string `json:"jobField"`
	Count       int    `json:"count" validate:"omitempty,min=1,max=20"`
}

// SubmitAnswerRequest represents one answered question in a session
type SubmitAnswerRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// SubmitAnswerResponse carries the evaluation and whether it was newly recorded
type SubmitAnswerResponse struct {
	Record    career.EvaluationRecord `json:"record"`
	Recorded  bool                    `json:"recorded"`
	Answered  int                     `json:"answered"`
	Remaining int                     `json:"remaining"`
}

// SummarizeResumeRequest represents the request payload for résumé summaries
type SummarizeResumeRequest struct {
	Resume string `json:"resume" validate:"required"`
}

// RecommendCareersRequest represents the request payload for career recommendations
type RecommendCareersRequest struct {
	Summary ResumeSummary `json:"summary"`
}

// CoachChatRequest represents the request payload for a coaching message
type CoachChatRequest struct {
	Summary ResumeSummary `json:"summary"`
	History []ChatMessage `json:"history" validate:"dive"`
	Message string        `json:"message" validate:"required"`
}

// CoachChatResponse carries the coach's reply
type CoachChatResponse struct {
	Reply string `json:"reply"`
}
