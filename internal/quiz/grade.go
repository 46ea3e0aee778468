package quiz

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrQuestionFormat indicates the question bank failed the pre-flight format check.
var ErrQuestionFormat = errors.New("invalid question format")

// ErrAnswerSet indicates the submitted answers failed validation.
var ErrAnswerSet = errors.New("invalid answer set")

const (
	feedbackOutstanding = "Outstanding! You're an expert!"
	feedbackExcellent   = "Excellent work! Strong knowledge!"
	feedbackGood        = "Good job! Solid understanding!"
	feedbackNotBad      = "Not bad! Keep learning!"
	feedbackKeepGoing   = "Keep studying! Review the answers below!"
)

// QuestionResult is the per-question grading detail.
type QuestionResult struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// Result is the structured output of grading one submission. Details are
// ordered by bank position so downstream rendering is deterministic.
type Result struct {
	Score          int              `json:"score"`
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
	Percentage     float64          `json:"percentage"`
	Feedback       string           `json:"feedback_message"`
	Details        []QuestionResult `json:"details"`
}

// Grade validates the bank and the submitted answers, then scores the
// submission in a single pass. Grading is all-or-nothing: any validation
// failure aborts before a Result is produced.
func Grade(bank *Bank, answers map[string]any) (Result, error) {
	if bank == nil || !ValidateQuestionsFormat(bank.questions) {
		return Result{}, ErrQuestionFormat
	}

	ok, message := ValidateAnswerSet(answers, bank.questions)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrAnswerSet, message)
	}

	correctCount := 0
	details := make([]QuestionResult, 0, len(bank.order))

	for _, id := range bank.order {
		question := bank.questions[id]
		submitted := NormalizeAnswer(answers[id].(string))
		isCorrect := submitted == question.Correct
		if isCorrect {
			correctCount++
		}

		details = append(details, QuestionResult{
			QuestionID:    id,
			QuestionText:  question.Text,
			UserAnswer:    submitted,
			CorrectAnswer: question.Correct,
			IsCorrect:     isCorrect,
		})
	}

	totalQuestions := len(bank.order)
	percentage := 0.0
	if totalQuestions > 0 {
		percentage = roundTo2(float64(correctCount) / float64(totalQuestions) * 100)
	}

	return Result{
		Score:          int(math.Round(percentage)),
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
		Percentage:     percentage,
		Feedback:       feedbackFor(percentage),
		Details:        details,
	}, nil
}

// feedbackFor maps a percentage onto its feedback tier. Boundaries are
// inclusive lower bounds: exactly 90 earns the top tier.
func feedbackFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return feedbackOutstanding
	case percentage >= 80:
		return feedbackExcellent
	case percentage >= 70:
		return feedbackGood
	case percentage >= 60:
		return feedbackNotBad
	default:
		return feedbackKeepGoing
	}
}

// roundTo2 rounds half away from zero to two decimal places.
func roundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatSummary renders a Result as a human-readable multi-line summary. It
// rejects records that are missing the required grading fields.
func FormatSummary(result Result) (string, error) {
	if result.TotalQuestions <= 0 || result.Feedback == "" {
		return "", errors.New("result record missing required fields")
	}
	if len(result.Details) != result.TotalQuestions {
		return "", errors.New("result record detail count does not match total questions")
	}

	divider := strings.Repeat("=", 50)
	lines := []string{
		divider,
		"TRIVIA EXAM RESULTS",
		divider,
		fmt.Sprintf("Score: %d/100", result.Score),
		fmt.Sprintf("Correct Answers: %d/%d", result.CorrectCount, result.TotalQuestions),
		fmt.Sprintf("Percentage: %.2f%%", result.Percentage),
		"",
		result.Feedback,
		divider,
	}

	return strings.Join(lines, "\n"), nil
}
