package career

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// OracleRequest is what the scoring oracle is asked to judge.
type OracleRequest struct {
	Question string
	Answer   string
	JobField string
}

// Oracle scores one answer and returns its raw JSON reply. Implementations may
// retry internally; whatever they return is final for the Evaluator.
type Oracle interface {
	ScoreAnswer(ctx context.Context, req OracleRequest) (string, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, req OracleRequest) (string, error)

func (f OracleFunc) ScoreAnswer(ctx context.Context, req OracleRequest) (string, error) {
	return f(ctx, req)
}

// Evaluator turns a submitted answer into an EvaluationRecord.
type Evaluator struct {
	oracle Oracle
	now    func() time.Time
}

// NewEvaluator returns an Evaluator backed by oracle. A nil oracle makes every
// evaluation fall back.
func NewEvaluator(oracle Oracle) *Evaluator {
	return &Evaluator{oracle: oracle, now: time.Now}
}

// WithClock returns a copy of the evaluator that stamps records using now.
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	c := *e
	c.now = now
	return &c
}

// Evaluate scores an answer. It never fails: any oracle error or invalid
// reply produces a low-score fallback record whose Error field says why.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer, jobField string) EvaluationRecord {
	if strings.TrimSpace(jobField) == "" {
		jobField = DefaultJobField
	}
	quality := AssessQuality(answer)

	rec := EvaluationRecord{
		Question:  question,
		Answer:    answer,
		JobField:  jobField,
		Timestamp: e.now().UTC(),
		Quality:   quality,
	}

	reply, err := e.ask(ctx, OracleRequest{Question: question, Answer: answer, JobField: jobField})
	if err != nil {
		return withFallback(rec, err)
	}

	out, err := ParseOracleReply(reply)
	if err != nil {
		return withFallback(rec, err)
	}

	rec.Scores = make(map[string]int, len(Categories))
	for category, raw := range out.Scores.byCategory() {
		rec.Scores[category] = AdjustScore(raw, quality.CompletenessFactor)
	}
	rec.SkillLevels = make(map[string]int, len(out.SkillLevels))
	for skill, raw := range out.SkillLevels {
		rec.SkillLevels[skill] = AdjustSkillLevel(raw, quality.CompletenessFactor)
	}
	rec.Feedback = Feedback{
		Strengths:           nonNil(out.Feedback.Strengths),
		AreasForImprovement: nonNil(out.Feedback.AreasForImprovement),
		MissingElements:     nonNil(out.Feedback.MissingElements),
	}
	rec.SkillsDemonstrated = nonNil(out.SkillsDemonstrated)
	rec.ImprovedAnswer = out.ImprovedAnswer
	rec.Keywords = out.Keywords
	return rec
}

func (e *Evaluator) ask(ctx context.Context, req OracleRequest) (reply string, err error) {
	if e.oracle == nil {
		return "", fmt.Errorf("no scoring oracle configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring oracle panicked: %v", r)
		}
	}()
	return e.oracle.ScoreAnswer(ctx, req)
}

// Fallback content used when the oracle cannot be used.
const (
	FallbackScore      = 2
	FallbackSkill      = "Communication"
	FallbackSkillLevel = 25
)

// Fallback returns the record used when no oracle reply is usable.
func Fallback(question, answer, jobField string, cause error, at time.Time) EvaluationRecord {
	if strings.TrimSpace(jobField) == "" {
		jobField = DefaultJobField
	}
	return withFallback(EvaluationRecord{
		Question:  question,
		Answer:    answer,
		JobField:  jobField,
		Timestamp: at.UTC(),
		Quality:   AssessQuality(answer),
	}, cause)
}

func withFallback(rec EvaluationRecord, cause error) EvaluationRecord {
	rec.Scores = make(map[string]int, len(Categories))
	for _, c := range Categories {
		rec.Scores[c] = FallbackScore
	}
	rec.Feedback = Feedback{
		Strengths:           []string{"Attempted to answer the question"},
		AreasForImprovement: []string{"Give a more detailed and structured answer", "Support your points with concrete examples"},
		MissingElements:     []string{"Specific examples from your experience", "Measurable outcomes"},
	}
	rec.SkillsDemonstrated = []string{FallbackSkill}
	rec.SkillLevels = map[string]int{FallbackSkill: FallbackSkillLevel}
	rec.ImprovedAnswer = "A stronger answer describes a specific situation, the actions you took and the measurable result you achieved."
	rec.Keywords = nil

	msg := "evaluation unavailable"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	rec.Error = msg
	return rec
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
