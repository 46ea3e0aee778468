package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gridiron-labs/trivia-exam/internal/dto"
	"github.com/gridiron-labs/trivia-exam/internal/observability"
	"github.com/gridiron-labs/trivia-exam/internal/quiz"
	"github.com/gridiron-labs/trivia-exam/internal/session"
)

// ErrNoAnswers indicates an empty submission.
var ErrNoAnswers = errors.New("no answers submitted")

// ErrUnexpectedField indicates the form carried a field that is not a question key.
var ErrUnexpectedField = errors.New("unexpected form field")

// ErrResultNotFound indicates no stored result exists for the session.
var ErrResultNotFound = errors.New("result not found")

// ErrMalformedResult indicates the stored result no longer has the required shape.
var ErrMalformedResult = errors.New("stored result is malformed")

// ExamService orchestrates the exam flow: sanitize, validate, grade, store.
type ExamService interface {
	Questions() []quiz.Question
	QuestionCount() int
	SubmitForm(ctx context.Context, sessionID string, form map[string]string) (quiz.Result, error)
	GradeAnswers(ctx context.Context, payload dto.GradeRequest) (quiz.Result, error)
	Result(ctx context.Context, sessionID string) (quiz.Result, error)
	Reset(ctx context.Context, sessionID string) error
}

type examService struct {
	bank      *quiz.Bank
	store     session.Store
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewExamService constructs the exam orchestrator.
func NewExamService(bank *quiz.Bank, store session.Store, validate *validator.Validate, logger zerolog.Logger) ExamService {
	return &examService{
		bank:      bank,
		store:     store,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "exam_service").Logger(),
	}
}

// Questions returns the bank's questions in their stable order.
func (s *examService) Questions() []quiz.Question {
	questions := make([]quiz.Question, 0, s.bank.Count())
	for _, id := range s.bank.Order() {
		if question, ok := s.bank.Question(id); ok {
			questions = append(questions, question)
		}
	}
	return questions
}

func (s *examService) QuestionCount() int {
	return s.bank.Count()
}

// SubmitForm grades a browser form submission and stores the result for the
// session. The form pass here is advisory sanitization only; the quiz package
// performs the authoritative validation regardless of what this layer does.
func (s *examService) SubmitForm(ctx context.Context, sessionID string, form map[string]string) (quiz.Result, error) {
	tracer := otel.Tracer("github.com/gridiron-labs/trivia-exam/internal/service/exam")
	ctx, span := tracer.Start(ctx, "exam.submit")
	defer span.End()

	if len(form) == 0 {
		span.SetStatus(codes.Error, "empty_submission")
		observability.ExamSubmissions().WithLabelValues("rejected").Inc()
		return quiz.Result{}, ErrNoAnswers
	}

	if err := s.checkFormFields(form); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected_field")
		observability.ExamSubmissions().WithLabelValues("rejected").Inc()
		return quiz.Result{}, err
	}

	answers := s.sanitizeAnswers(form)

	result, err := quiz.Grade(s.bank, answers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grading_rejected")
		observability.ExamSubmissions().WithLabelValues("rejected").Inc()
		s.logger.Warn().Err(err).Msg("submission failed validation")
		return quiz.Result{}, err
	}

	if err := s.store.SaveResult(ctx, sessionID, result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store_failed")
		return quiz.Result{}, fmt.Errorf("failed to store result: %w", err)
	}

	span.SetAttributes(
		attribute.Int("exam.score", result.Score),
		attribute.Int("exam.correct_count", result.CorrectCount),
	)
	observability.ExamSubmissions().WithLabelValues("graded").Inc()
	observability.ExamScores().Observe(float64(result.Score))

	s.logger.Info().
		Int("score", result.Score).
		Int("correct", result.CorrectCount).
		Int("total", result.TotalQuestions).
		Msg("exam graded")

	return result, nil
}

// GradeAnswers grades a JSON submission statelessly: nothing is stored.
func (s *examService) GradeAnswers(ctx context.Context, payload dto.GradeRequest) (quiz.Result, error) {
	tracer := otel.Tracer("github.com/gridiron-labs/trivia-exam/internal/service/exam")
	_, span := tracer.Start(ctx, "exam.grade")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		observability.ExamSubmissions().WithLabelValues("rejected").Inc()
		return quiz.Result{}, err
	}

	result, err := quiz.Grade(s.bank, payload.Answers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grading_rejected")
		observability.ExamSubmissions().WithLabelValues("rejected").Inc()
		return quiz.Result{}, err
	}

	span.SetAttributes(attribute.Int("exam.score", result.Score))
	observability.ExamSubmissions().WithLabelValues("graded").Inc()
	observability.ExamScores().Observe(float64(result.Score))

	return result, nil
}

// Result loads the session's stored result and re-checks its shape before
// handing it to rendering.
func (s *examService) Result(ctx context.Context, sessionID string) (quiz.Result, error) {
	result, err := s.store.GetResult(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrResultNotFound) {
			return quiz.Result{}, ErrResultNotFound
		}
		return quiz.Result{}, err
	}

	if _, err := quiz.FormatSummary(result); err != nil {
		s.logger.Error().Err(err).Msg("stored result failed shape check")
		return quiz.Result{}, ErrMalformedResult
	}

	return result, nil
}

// Reset clears any stored result for the session.
func (s *examService) Reset(ctx context.Context, sessionID string) error {
	return s.store.ClearResult(ctx, sessionID)
}

// checkFormFields rejects fields that are neither question keys nor
// framework-added csrf tokens.
func (s *examService) checkFormFields(form map[string]string) error {
	for key := range form {
		if _, ok := s.bank.Question(key); ok {
			continue
		}
		if strings.HasPrefix(strings.ToLower(key), "csrf") {
			continue
		}
		s.logger.Warn().Str("field", key).Msg("unexpected form field in submission")
		return fmt.Errorf("%w: %s", ErrUnexpectedField, key)
	}
	return nil
}

// sanitizeAnswers strips markup and normalizes the submitted values for the
// known question keys. Invalid letters are passed through so the core
// validator can name them in its error.
func (s *examService) sanitizeAnswers(form map[string]string) map[string]any {
	answers := make(map[string]any, s.bank.Count())
	for _, id := range s.bank.Order() {
		raw, ok := form[id]
		if !ok {
			continue
		}
		answers[id] = quiz.NormalizeAnswer(s.sanitizer.Sanitize(raw))
	}
	return answers
}
