package ai

import "intervu/internal/config"

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = config.PromptSet{
	EvaluateAnswer: `You are an expert interview coach and hiring manager. You assess interview answers honestly and strictly:

- Score only what the candidate actually said; never credit knowledge they did not show
- Short, vague or off-topic answers score low regardless of tone
- Feedback must be specific to the answer and actionable
- Respond with JSON only`,

	SummarizeResume: `You are an expert career counselor and résumé analyst. You extract facts from résumés without inventing, inferring or embellishing anything that is not written in the source text. Respond with JSON only.`,

	RecommendCareers: `You are an expert career counselor providing structured recommendations.`,

	CoachChat: `You are an expert interview coach providing conversational career advice.`,
}

// DefaultUserPrompts provides user prompt templates. Placeholders are filled
// with fmt in the order documented on each prompt.
var DefaultUserPrompts = config.PromptSet{
	// job field, question, answer
	EvaluateAnswer: `You are an expert interview coach specializing in %[1]s roles. Evaluate the following interview answer.

Question: %[2]s

Answer: %[3]s

Scoring rubric (apply it strictly, each score 1-10):
- 8-10: exceptional, specific, well structured, demonstrates deep expertise
- 6-7: good, relevant, some specifics, minor gaps
- 4-5: average, generic, lacks depth or examples
- 2-3: weak, vague, mostly off-topic
- 1: poor, no meaningful content

Return JSON with:
- "scores": content, clarity, technical_accuracy, confidence, overall (integers 1-10)
- "feedback": strengths (2-3 items), areas_for_improvement (2-3 items), missing_elements (list)
- "skills_demonstrated": 3-5 skills shown in the answer
- "skill_levels": for each demonstrated skill, a level from 1 to 100
- "improved_answer": a stronger version of the answer in 2-3 sentences
- "keywords": important terms a strong %[1]s answer would mention`,

	// résumé text
	SummarizeResume: `Extract a structured summary from the following résumé.

Résumé:
%s

Return JSON with name, email, phone, currentRole, experienceYears (as text, for example "5+"), skills, strengths and areasForImprovement. Use an empty string or empty list for anything the résumé does not state.`,

	// résumé summary as JSON
	RecommendCareers: `Based on this candidate summary, provide career recommendations.

Candidate summary:
%s

Return JSON with suitableRoles, growthOpportunities, skillRecommendations, industryInsights, salaryRange, nextSteps and interviewFocusAreas. Keep each list to 3-5 concise items.`,

	// résumé summary as JSON
	CoachChat: `Here is the candidate I am coaching. Use it as context for every reply.

Candidate summary:
%s

Keep replies conversational, specific to this candidate and under 200 words.`,
}

// resolvePrompt returns the configured prompt or the default
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
