package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gridiron-labs/trivia-exam/internal/dto"
	"github.com/gridiron-labs/trivia-exam/internal/quiz"
	"github.com/gridiron-labs/trivia-exam/internal/service"
	"github.com/gridiron-labs/trivia-exam/internal/utils"
)

// ExamAPIHandler exposes the stateless JSON grading surface.
type ExamAPIHandler struct {
	service service.ExamService
	logger  zerolog.Logger
}

// NewExamAPIHandler builds the JSON API handler.
func NewExamAPIHandler(service service.ExamService, logger zerolog.Logger) *ExamAPIHandler {
	return &ExamAPIHandler{
		service: service,
		logger:  logger.With().Str("component", "exam_api_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ExamAPIHandler) Register(router fiber.Router) {
	router.Get("/questions", h.questions)
	router.Post("/grade", h.grade)
}

func (h *ExamAPIHandler) questions(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "questions retrieved", dto.NewQuestionListResponse(h.service.Questions()))
}

func (h *ExamAPIHandler) grade(c *fiber.Ctx) error {
	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.GradeAnswers(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "exam graded", result)
}

func (h *ExamAPIHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, quiz.ErrAnswerSet):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, quiz.ErrQuestionFormat):
		h.logger.Error().Err(err).Msg("question bank failed format check")
		return utils.SendError(c, fiber.StatusInternalServerError, "question bank unavailable")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
