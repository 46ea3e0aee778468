package dto

import (
	"github.com/gridiron-labs/trivia-exam/internal/quiz"
)

// QuestionResponse is a question as exposed to clients. The correct answer is
// withheld.
type QuestionResponse struct {
	ID       string            `json:"id"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

// QuestionListResponse carries the full exam form payload.
type QuestionListResponse struct {
	TotalQuestions int                `json:"total_questions"`
	Questions      []QuestionResponse `json:"questions"`
}

// GradeRequest is a stateless grading submission: a raw answer map keyed by
// question ID. Values stay untyped so the core validator can name offending
// entries itself.
type GradeRequest struct {
	Answers map[string]any `json:"answers" validate:"required,min=1"`
}

// NewQuestionResponse strips the answer key off a bank question.
func NewQuestionResponse(question quiz.Question) QuestionResponse {
	options := make(map[string]string, len(question.Options))
	for key, text := range question.Options {
		options[key] = text
	}

	return QuestionResponse{
		ID:       question.ID,
		Question: question.Text,
		Options:  options,
	}
}

// NewQuestionListResponse renders the ordered question slice for clients.
func NewQuestionListResponse(questions []quiz.Question) QuestionListResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewQuestionResponse(question))
	}

	return QuestionListResponse{
		TotalQuestions: len(responses),
		Questions:      responses,
	}
}
