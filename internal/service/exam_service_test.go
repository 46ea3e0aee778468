package service

import (
	"context"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/trivia-exam/internal/dto"
	"github.com/gridiron-labs/trivia-exam/internal/quiz"
	"github.com/gridiron-labs/trivia-exam/internal/session"
)

type fakeStore struct {
	saved     map[string]quiz.Result
	saveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]quiz.Result)}
}

func (f *fakeStore) SaveResult(_ context.Context, sessionID string, result quiz.Result) error {
	f.saveCalls++
	f.saved[sessionID] = result
	return nil
}

func (f *fakeStore) GetResult(_ context.Context, sessionID string) (quiz.Result, error) {
	result, ok := f.saved[sessionID]
	if !ok {
		return quiz.Result{}, session.ErrResultNotFound
	}
	return result, nil
}

func (f *fakeStore) ClearResult(_ context.Context, sessionID string) error {
	delete(f.saved, sessionID)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupExamService(t *testing.T) (ExamService, *fakeStore, *quiz.Bank) {
	t.Helper()

	bank, err := quiz.LoadBank()
	require.NoError(t, err)

	store := newFakeStore()
	validate := validator.New(validator.WithRequiredStructEnabled())

	return NewExamService(bank, store, validate, testLogger()), store, bank
}

func correctForm(t *testing.T, bank *quiz.Bank) map[string]string {
	t.Helper()

	form := make(map[string]string, bank.Count())
	for _, id := range bank.Order() {
		question, ok := bank.Question(id)
		require.True(t, ok)
		form[id] = question.Correct
	}
	return form
}

func TestSubmitFormGradesAndStores(t *testing.T) {
	svc, store, bank := setupExamService(t)

	result, err := svc.SubmitForm(context.Background(), "session-1", correctForm(t, bank))
	require.NoError(t, err)
	require.Equal(t, 100, result.Score)
	require.Equal(t, 1, store.saveCalls)
	require.Equal(t, result, store.saved["session-1"])
}

func TestSubmitFormStripsMarkupAndNormalizes(t *testing.T) {
	svc, _, bank := setupExamService(t)

	form := correctForm(t, bank)
	q1, _ := bank.Question("q1")
	form["q1"] = " <b>" + q1.Correct + "</b> "

	result, err := svc.SubmitForm(context.Background(), "session-1", form)
	require.NoError(t, err)
	require.Equal(t, 100, result.Score)
}

func TestSubmitFormIgnoresCSRFFields(t *testing.T) {
	svc, _, bank := setupExamService(t)

	form := correctForm(t, bank)
	form["csrf_token"] = "abc123"

	_, err := svc.SubmitForm(context.Background(), "session-1", form)
	require.NoError(t, err)
}

func TestSubmitFormRejectsUnexpectedField(t *testing.T) {
	svc, store, bank := setupExamService(t)

	form := correctForm(t, bank)
	form["admin"] = "true"

	_, err := svc.SubmitForm(context.Background(), "session-1", form)
	require.ErrorIs(t, err, ErrUnexpectedField)
	require.Contains(t, err.Error(), "admin")
	require.Equal(t, 0, store.saveCalls)
}

func TestSubmitFormRejectsEmptySubmission(t *testing.T) {
	svc, store, _ := setupExamService(t)

	_, err := svc.SubmitForm(context.Background(), "session-1", map[string]string{})
	require.ErrorIs(t, err, ErrNoAnswers)
	require.Equal(t, 0, store.saveCalls)
}

func TestSubmitFormRejectsIncompleteAnswers(t *testing.T) {
	svc, store, bank := setupExamService(t)

	form := correctForm(t, bank)
	delete(form, "q4")

	_, err := svc.SubmitForm(context.Background(), "session-1", form)
	require.ErrorIs(t, err, quiz.ErrAnswerSet)
	require.Contains(t, err.Error(), "q4")
	require.Equal(t, 0, store.saveCalls)
}

func TestSubmitFormRejectsInvalidLetter(t *testing.T) {
	svc, store, bank := setupExamService(t)

	form := correctForm(t, bank)
	form["q2"] = "E"

	_, err := svc.SubmitForm(context.Background(), "session-1", form)
	require.ErrorIs(t, err, quiz.ErrAnswerSet)
	require.Contains(t, err.Error(), "q2")
	require.Equal(t, 0, store.saveCalls)
}

func TestGradeAnswersStateless(t *testing.T) {
	svc, store, bank := setupExamService(t)

	answers := make(map[string]any, bank.Count())
	for _, id := range bank.Order() {
		question, _ := bank.Question(id)
		answers[id] = question.Correct
	}

	result, err := svc.GradeAnswers(context.Background(), dto.GradeRequest{Answers: answers})
	require.NoError(t, err)
	require.Equal(t, 100, result.Score)
	require.Equal(t, 0, store.saveCalls)
}

func TestGradeAnswersRejectsEmptyPayload(t *testing.T) {
	svc, _, _ := setupExamService(t)

	_, err := svc.GradeAnswers(context.Background(), dto.GradeRequest{})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

func TestResultRoundTrip(t *testing.T) {
	svc, _, bank := setupExamService(t)
	ctx := context.Background()

	submitted, err := svc.SubmitForm(ctx, "session-1", correctForm(t, bank))
	require.NoError(t, err)

	loaded, err := svc.Result(ctx, "session-1")
	require.NoError(t, err)
	require.Equal(t, submitted, loaded)
}

func TestResultMissingSession(t *testing.T) {
	svc, _, _ := setupExamService(t)

	_, err := svc.Result(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrResultNotFound)
}

func TestResultRejectsMalformedStoredRecord(t *testing.T) {
	svc, store, _ := setupExamService(t)

	store.saved["session-1"] = quiz.Result{Score: 50}

	_, err := svc.Result(context.Background(), "session-1")
	require.ErrorIs(t, err, ErrMalformedResult)
}

func TestResetClearsStoredResult(t *testing.T) {
	svc, _, bank := setupExamService(t)
	ctx := context.Background()

	_, err := svc.SubmitForm(ctx, "session-1", correctForm(t, bank))
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "session-1"))

	_, err = svc.Result(ctx, "session-1")
	require.ErrorIs(t, err, ErrResultNotFound)
}

func TestQuestionsFollowBankOrder(t *testing.T) {
	svc, _, bank := setupExamService(t)

	questions := svc.Questions()
	require.Len(t, questions, bank.Count())
	require.Equal(t, bank.Count(), svc.QuestionCount())

	for i, id := range bank.Order() {
		require.Equal(t, id, questions[i].ID)
	}
}
