package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gridiron-labs/trivia-exam/internal/middleware"
	"github.com/gridiron-labs/trivia-exam/internal/quiz"
	"github.com/gridiron-labs/trivia-exam/internal/service"
	"github.com/gridiron-labs/trivia-exam/internal/view"
)

// ExamPageHandler serves the browser-facing exam flow.
type ExamPageHandler struct {
	service service.ExamService
	view    *view.Renderer
	title   string
	logger  zerolog.Logger
}

// NewExamPageHandler builds the HTML page handler.
func NewExamPageHandler(service service.ExamService, renderer *view.Renderer, title string, logger zerolog.Logger) *ExamPageHandler {
	return &ExamPageHandler{
		service: service,
		view:    renderer,
		title:   title,
		logger:  logger.With().Str("component", "exam_page_handler").Logger(),
	}
}

// Register attaches the page routes. The submit limiter is applied to the
// grading endpoint only.
func (h *ExamPageHandler) Register(app fiber.Router, submitLimiter fiber.Handler) {
	app.Get("/", h.index)
	if submitLimiter != nil {
		app.Post("/submit", submitLimiter, h.submit)
	} else {
		app.Post("/submit", h.submit)
	}
	app.Get("/results", h.results)
	app.Get("/retake", h.retake)
}

type indexData struct {
	Title          string
	TotalQuestions int
	Questions      []quiz.Question
	Error          string
}

type resultsData struct {
	Title  string
	Result quiz.Result
}

type errorData struct {
	Title   string
	Message string
}

func (h *ExamPageHandler) index(c *fiber.Ctx) error {
	// A fresh exam load discards any previous result for this session.
	if err := h.service.Reset(c.Context(), middleware.GetSessionID(c)); err != nil {
		h.logger.Warn().Err(err).Msg("failed to clear stale result")
	}

	return h.renderForm(c, fiber.StatusOK, "")
}

func (h *ExamPageHandler) submit(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)

	form := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		form[string(key)] = string(value)
	})

	if _, err := h.service.SubmitForm(c.Context(), sessionID, form); err != nil {
		switch {
		case errors.Is(err, service.ErrNoAnswers):
			return h.renderForm(c, fiber.StatusBadRequest, "No answers submitted. Please answer all questions.")
		case errors.Is(err, service.ErrUnexpectedField):
			return h.renderForm(c, fiber.StatusBadRequest, "Invalid form data.")
		case errors.Is(err, quiz.ErrAnswerSet):
			return h.renderForm(c, fiber.StatusBadRequest, "Please answer all questions with a valid option (A, B, C or D).")
		default:
			h.logger.Error().Err(err).Msg("failed to grade submission")
			return h.renderError(c)
		}
	}

	return c.Redirect("/results", fiber.StatusSeeOther)
}

func (h *ExamPageHandler) results(c *fiber.Ctx) error {
	result, err := h.service.Result(c.Context(), middleware.GetSessionID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResultNotFound), errors.Is(err, service.ErrMalformedResult):
			return c.Redirect("/", fiber.StatusSeeOther)
		default:
			h.logger.Error().Err(err).Msg("failed to load result")
			return h.renderError(c)
		}
	}

	return h.view.Render(c, fiber.StatusOK, "results", resultsData{
		Title:  h.title,
		Result: result,
	})
}

func (h *ExamPageHandler) retake(c *fiber.Ctx) error {
	if err := h.service.Reset(c.Context(), middleware.GetSessionID(c)); err != nil {
		h.logger.Error().Err(err).Msg("failed to reset session")
		return h.renderError(c)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *ExamPageHandler) renderForm(c *fiber.Ctx, status int, banner string) error {
	return h.view.Render(c, status, "index", indexData{
		Title:          h.title,
		TotalQuestions: h.service.QuestionCount(),
		Questions:      h.service.Questions(),
		Error:          banner,
	})
}

func (h *ExamPageHandler) renderError(c *fiber.Ctx) error {
	return h.view.Render(c, fiber.StatusInternalServerError, "error", errorData{
		Title:   h.title,
		Message: "An error occurred while processing your exam. Please try again.",
	})
}
