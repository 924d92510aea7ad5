package handler

import (
	"strconv"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/dto"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/middleware"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/service"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

func userIDFromContext(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("User is not authenticated")
	}
	return userID, nil
}

// GenerateQuestions godoc
// @Summary Generate quiz questions
// @Description Generates questions for a topic without starting a game; answers are included
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 200 {object} dto.GenerateQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /questions [post]
func (h *QuizHandler) GenerateQuestions(c *fiber.Ctx) error {
	if _, err := userIDFromContext(c); err != nil {
		return err
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateGenerateQuizRequest(req.Topic, req.Amount, req.Type); errs != nil {
		return errs
	}

	resp, err := h.service.GenerateQuestions(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Failed to generate questions",
			zap.Error(err),
			zap.String("topic", req.Topic),
			zap.String("type", req.Type),
		)
		return err
	}

	return c.JSON(resp)
}

// CreateGame godoc
// @Summary Start a new game
// @Description Generates questions for a topic and persists a new game for the current user
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Game request"
// @Success 200 {object} dto.CreateGameResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /game [post]
func (h *QuizHandler) CreateGame(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateGenerateQuizRequest(req.Topic, req.Amount, req.Type); errs != nil {
		return errs
	}

	resp, err := h.service.CreateGame(c.Context(), userID, &req)
	if err != nil {
		logger.Get().Error("Failed to create game",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("topic", req.Topic),
		)
		return err
	}

	return c.JSON(resp)
}

// CheckAnswer godoc
// @Summary Check an answer
// @Description Grades the user's answer to one question and records the grade
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.CheckAnswerRequest true "Answer details"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkAnswer [post]
func (h *QuizHandler) CheckAnswer(c *fiber.Ctx) error {
	if _, err := userIDFromContext(c); err != nil {
		return err
	}

	var req dto.CheckAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateCheckAnswerRequest(req.QuestionID, req.UserAnswer); errs != nil {
		return errs
	}

	resp, err := h.service.CheckAnswer(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Failed to check answer",
			zap.Error(err),
			zap.String("question_id", req.QuestionID),
		)
		return err
	}

	return c.JSON(resp)
}

// EndGame godoc
// @Summary End a game
// @Description Records the end time of the current user's game
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.EndGameRequest true "Game to end"
// @Success 200 {object} dto.EndGameResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /endGame [post]
func (h *QuizHandler) EndGame(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.EndGameRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateGameID(req.GameID); errs != nil {
		return errs
	}

	resp, err := h.service.EndGame(c.Context(), userID, req.GameID)
	if err != nil {
		logger.Get().Error("Failed to end game",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("game_id", req.GameID),
		)
		return err
	}

	return c.JSON(resp)
}

// GetGameResult godoc
// @Summary Get game statistics
// @Description Returns the graded questions and accuracy for one of the current user's games
// @Tags game
// @Produce json
// @Param gameId path string true "Game ID"
// @Success 200 {object} dto.GameResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /game/{gameId} [get]
func (h *QuizHandler) GetGameResult(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	gameID := c.Params("gameId")
	if errs := h.validator.ValidateGameID(gameID); errs != nil {
		return errs
	}

	resp, err := h.service.GetGameResult(c.Context(), userID, gameID)
	if err != nil {
		logger.Get().Error("Failed to get game result",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("game_id", gameID),
		)
		return err
	}

	return c.JSON(resp)
}

// HotTopics godoc
// @Summary Get hot topics
// @Description Returns the most requested quiz topics with their play counts
// @Tags topics
// @Produce json
// @Param limit query int false "Maximum number of topics to return"
// @Success 200 {object} dto.HotTopicsResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /topics/hot [get]
func (h *QuizHandler) HotTopics(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return domain.NewInvalidInputError("limit must be a positive integer")
		}
		limit = parsed
	}

	resp, err := h.service.HotTopics(c.Context(), limit)
	if err != nil {
		logger.Get().Error("Failed to get hot topics", zap.Error(err))
		return err
	}

	return c.JSON(resp)
}
