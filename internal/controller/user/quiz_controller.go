package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quagsire/internal/dto"
	"github.com/lshigami/Quagsire/internal/quizerr"
	"github.com/lshigami/Quagsire/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// @Summary Check quiz eligibility
// @Description Reports whether the user can take a quiz right now and their merged quiz statistics (historical plus any in-progress session).
// @Tags Quiz
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.QuizHistory
// @Failure 400 {object} dto.ErrorResponse "Missing user_id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz/eligibility [get]
func (c *QuizController) CheckEligibility(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user_id is required"})
		return
	}

	history, err := c.quizService.CheckEligibility(ctx.Request.Context(), userID)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// @Summary Get the next quiz question
// @Description Issues the next question for the user's active session, creating a session with the given difficulty when none exists.
// @Tags Quiz
// @Produce json
// @Param user_id query string true "User ID"
// @Param difficulty query string false "Quiz difficulty (beginner, intermediate, advanced); used only when a new session is created" default(beginner)
// @Success 200 {object} dto.QuizQuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error (e.g. no terms left)"
// @Failure 429 {object} dto.UsageLimitResponse "Free-tier daily limit reached"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz/question [get]
func (c *QuizController) GetNextQuestion(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user_id is required"})
		return
	}
	difficulty := ctx.DefaultQuery("difficulty", "beginner")
	switch difficulty {
	case "beginner", "intermediate", "advanced":
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "difficulty must be beginner, intermediate or advanced"})
		return
	}

	question, err := c.quizService.GetNextQuestion(ctx.Request.Context(), userID, difficulty)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// @Summary Submit an answer
// @Description Grades the selected option for a question in the user's session and returns points earned plus session progress.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param user_id query string true "User ID"
// @Param answer body dto.QuizAnswerRequest true "Answer submission"
// @Success 200 {object} dto.QuizAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error (expired session, unknown question, ...)"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 429 {object} dto.UsageLimitResponse "Free-tier daily limit reached"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user_id is required"})
		return
	}

	var req dto.QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: invalid request body")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := c.quizService.SubmitAnswer(ctx.Request.Context(), userID, req)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// @Summary End a quiz session
// @Description Finalizes the session into a permanent historical record and returns the result summary.
// @Tags Quiz
// @Produce json
// @Param session_id path string true "Session ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.QuizResult
// @Failure 400 {object} dto.ErrorResponse "Validation error (already completed, nothing answered)"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz/sessions/{session_id}/end [post]
func (c *QuizController) EndSession(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user_id is required"})
		return
	}
	sessionID := ctx.Param("session_id")

	result, err := c.quizService.EndSession(ctx.Request.Context(), userID, sessionID)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// @Summary Get session progress
// @Description Read-only progress snapshot of a quiz session: questions answered, accuracy and elapsed time.
// @Tags Quiz
// @Produce json
// @Param session_id path string true "Session ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.QuizSessionProgress
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz/sessions/{session_id}/progress [get]
func (c *QuizController) GetSessionProgress(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user_id is required"})
		return
	}
	sessionID := ctx.Param("session_id")

	progress, err := c.quizService.GetSessionProgress(ctx.Request.Context(), userID, sessionID)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

// respondQuizError maps engine errors onto HTTP statuses: tagged validation
// errors become 400/404, usage-limit errors become 429 with their structured
// fields, anything else is a 500.
func respondQuizError(ctx *gin.Context, err error) {
	var limitErr *quizerr.UsageLimitError
	if errors.As(err, &limitErr) {
		ctx.JSON(http.StatusTooManyRequests, dto.UsageLimitResponse{
			Error:        limitErr.Error(),
			LimitType:    limitErr.LimitType,
			CurrentUsage: limitErr.CurrentUsage,
			Limit:        limitErr.Limit,
		})
		return
	}

	var validationErr *quizerr.ValidationError
	if errors.As(err, &validationErr) {
		status := http.StatusBadRequest
		if validationErr.Reason == quizerr.ReasonSessionNotFound || validationErr.Reason == quizerr.ReasonTermNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{Error: validationErr.Message})
		return
	}

	log.Error().Err(err).Msg("Quiz operation failed")
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
