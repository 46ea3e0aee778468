package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/trivia-exam/internal/quiz"
)

func loadedBank(t *testing.T) *quiz.Bank {
	t.Helper()

	bank, err := quiz.LoadBank()
	require.NoError(t, err)
	return bank
}

func correctAnswers(t *testing.T, bank *quiz.Bank) map[string]any {
	t.Helper()

	answers := make(map[string]any, bank.Count())
	for _, id := range bank.Order() {
		question, ok := bank.Question(id)
		require.True(t, ok)
		answers[id] = question.Correct
	}
	return answers
}

func TestValidateQuestionsFormat(t *testing.T) {
	bank := loadedBank(t)
	require.True(t, quiz.ValidateQuestionsFormat(bank.Questions()))

	require.False(t, quiz.ValidateQuestionsFormat(nil))
	require.False(t, quiz.ValidateQuestionsFormat(map[string]quiz.Question{
		"q1": {ID: "q1", Text: "", Options: map[string]string{"A": "a"}, Correct: "A"},
	}))
	require.False(t, quiz.ValidateQuestionsFormat(map[string]quiz.Question{
		"q1": {ID: "q1", Text: "no options", Correct: "A"},
	}))
	require.False(t, quiz.ValidateQuestionsFormat(map[string]quiz.Question{
		"q1": {ID: "q1", Text: "no correct", Options: map[string]string{"A": "a"}},
	}))
}

func TestValidateAnswerSetAcceptsCompleteSet(t *testing.T) {
	bank := loadedBank(t)

	ok, message := quiz.ValidateAnswerSet(correctAnswers(t, bank), bank.Questions())
	require.True(t, ok)
	require.Empty(t, message)
}

func TestValidateAnswerSetRejectsNilMap(t *testing.T) {
	bank := loadedBank(t)

	ok, message := quiz.ValidateAnswerSet(nil, bank.Questions())
	require.False(t, ok)
	require.Contains(t, message, "must be a map")
}

func TestValidateAnswerSetNamesEveryMissingKey(t *testing.T) {
	bank := loadedBank(t)

	for _, id := range bank.Order() {
		answers := correctAnswers(t, bank)
		delete(answers, id)

		ok, message := quiz.ValidateAnswerSet(answers, bank.Questions())
		require.False(t, ok, "removing %s should fail validation", id)
		require.Contains(t, message, "missing answers for")
		require.Contains(t, message, id)
	}
}

func TestValidateAnswerSetNamesExtraKey(t *testing.T) {
	bank := loadedBank(t)

	answers := correctAnswers(t, bank)
	answers["q99"] = "A"

	ok, message := quiz.ValidateAnswerSet(answers, bank.Questions())
	require.False(t, ok)
	require.Contains(t, message, "unexpected answer keys")
	require.Contains(t, message, "q99")
}

func TestValidateAnswerSetRejectsNonStringValue(t *testing.T) {
	bank := loadedBank(t)

	answers := correctAnswers(t, bank)
	answers["q3"] = 7

	ok, message := quiz.ValidateAnswerSet(answers, bank.Questions())
	require.False(t, ok)
	require.Contains(t, message, "q3")
	require.Contains(t, message, "must be a string")
}

func TestValidateAnswerSetNormalizesCaseAndWhitespace(t *testing.T) {
	bank := loadedBank(t)

	answers := correctAnswers(t, bank)
	answers["q1"] = " b "

	ok, message := quiz.ValidateAnswerSet(answers, bank.Questions())
	require.True(t, ok)
	require.Empty(t, message)
}

func TestValidateAnswerSetRejectsInvalidLetter(t *testing.T) {
	bank := loadedBank(t)

	answers := correctAnswers(t, bank)
	answers["q5"] = "E"

	ok, message := quiz.ValidateAnswerSet(answers, bank.Questions())
	require.False(t, ok)
	require.Contains(t, message, "q5")
	require.Contains(t, message, `"E"`)
}
