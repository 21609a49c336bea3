package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"intervu/internal/errors"
	"intervu/internal/types"
	"intervu/internal/utils"
)

// startSpan opens an API span tagged with the request ID
func (s *Server) startSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx, span := s.om.Tracer("intervu.api").Start(r.Context(), name)
	span.SetAttributes(attribute.String("request.id", requestID(ctx)))
	return ctx, span
}

// fail records err on the span and writes the mapped error response
func (s *Server) fail(w http.ResponseWriter, r *http.Request, span trace.Span, err error) {
	span.RecordError(err)
	if appErr, ok := errors.As(err); ok {
		span.SetAttributes(attribute.String("error.type", string(appErr.Type)))
	}
	s.writeAppError(w, r, err)
}

// sessionID parses the {id} path segment
func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "invalid session id", err).
			WithContext("id", r.PathValue("id"))
	}
	return id, nil
}

func (s *Server) evaluateHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startSpan(r, "api.evaluate")
	defer span.End()

	var req types.EvaluateAnswerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.fail(w, r, span, err)
		return
	}
	span.SetAttributes(
		attribute.Int("request.answer_length", len(req.Answer)),
		attribute.String("job_field", req.JobField),
	)

	rec, err := s.interview.Evaluate(ctx, req.Question, req.Answer, req.JobField)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	span.SetAttributes(attribute.Bool("fallback", rec.IsFallback()))
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startSpan(r, "api.profile")
	defer span.End()

	var req types.ProfileRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.fail(w, r, span, err)
		return
	}
	span.SetAttributes(attribute.Int("request.records", len(req.Records)))

	writeJSON(w, http.StatusOK, s.interview.Profile(ctx, req.Interviewee, req.Records))
}

func (s *Server) fieldsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.FieldsResponse{Fields: s.interview.Questions().Fields()})
}

func (s *Server) sampleHandler(w http.ResponseWriter, r *http.Request) {
	_, span := s.startSpan(r, "api.questions.sample")
	defer span.End()

	var req types.SampleQuestionsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.fail(w, r, span, err)
		return
	}

	qs, err := s.interview.Sample(req.JobField, req.Count, req.Seed)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SampleQuestionsResponse{JobField: req.JobField, Questions: qs})
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startSpan(r, "api.sessions.create")
	defer span.End()

	var req types.CreateSessionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.fail(w, r, span, err)
		return
	}

	sess, err := s.interview.StartSession(ctx, req.Interviewee, req.JobField, req.Count)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	span.SetAttributes(
		attribute.String("session.id", sess.ID.String()),
		attribute.String("job_field", sess.JobField),
	)
	w.Header().Set("Location", "/sessions/"+sess.ID.String())
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startSpan(r, "api.sessions.get")
	defer span.End()

	id, err := sessionID(r)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	sess, err := s.interview.GetSession(ctx, id)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startSpan(r, "api.sessions.delete")
	defer span.End()

	id, err := sessionID(r)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	if err := s.interview.DeleteSession(ctx, id); err != nil {
		s.fail(w, r, span, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) answerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startSpan(r, "api.sessions.answer")
	defer span.End()

	id, err := sessionID(r)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	var req types.SubmitAnswerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.fail(w, r, span, err)
		return
	}

	res, err := s.interview.Answer(ctx, id, req.Question, req.Answer)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	span.SetAttributes(
		attribute.String("session.id", id.String()),
		attribute.Bool("recorded", res.Recorded),
		attribute.Bool("fallback", res.Record.IsFallback()),
	)

	status := http.StatusOK
	if res.Recorded {
		status = http.StatusCreated
	}
	writeJSON(w, status, types.SubmitAnswerResponse{
		Record:    res.Record,
		Recorded:  res.Recorded,
		Answered:  res.Session.Records.Len(),
		Remaining: res.Session.Remaining(),
	})
}

func (s *Server) completeSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startSpan(r, "api.sessions.complete")
	defer span.End()

	id, err := sessionID(r)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	profile, err := s.interview.Complete(ctx, id)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	span.SetAttributes(attribute.Int("responses", profile.Responses.Len()))
	writeJSON(w, http.StatusOK, profile)
}

// coachAvailable writes 503 when the server runs without a coach
func (s *Server) coachAvailable(w http.ResponseWriter, r *http.Request) bool {
	if s.coach != nil {
		return true
	}
	writeErrorResponse(w, r, "Coach unavailable", "résumé coach is not configured", http.StatusServiceUnavailable)
	return false
}

func (s *Server) coachSummaryHandler(w http.ResponseWriter, r *http.Request) {
	if !s.coachAvailable(w, r) {
		return
	}
	ctx, span := s.startSpan(r, "api.coach.summary")
	defer span.End()

	var req types.SummarizeResumeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.fail(w, r, span, err)
		return
	}
	if !utils.IsText([]byte(req.Resume)) {
		s.fail(w, r, span, errors.NewValidationError(errors.ErrCodeUnsupportedFile, "resume must be plain text", nil))
		return
	}
	span.SetAttributes(attribute.Int("request.resume_length", len(req.Resume)))

	summary, err := s.coach.SummarizeResume(ctx, req.Resume)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) coachRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.coachAvailable(w, r) {
		return
	}
	ctx, span := s.startSpan(r, "api.coach.recommendations")
	defer span.End()

	var req types.RecommendCareersRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.fail(w, r, span, err)
		return
	}

	recs, err := s.coach.RecommendCareers(ctx, req.Summary)
	if err != nil {
		s.fail(w, r, span, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) coachChatHandler(w http.ResponseWriter, r *http.Request) {
	if !s.coachAvailable(w, r) {
		return
	}
	ctx, span := s.startSpan(r, "api.coach.chat")
	defer span.End()

	var req types.CoachChatRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.fail(w, r, span, err)
		return
	}
	span.SetAttributes(attribute.Int("request.history", len(req.History)))

	reply := s.coach.Reply(ctx, req.Summary, req.History, req.Message)
	writeJSON(w, http.StatusOK, types.CoachChatResponse{Reply: reply})
}
