package handler

import (
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/dto"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatHandler handles tutor chat HTTP requests
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat godoc
// @Summary Chat with the tutor
// @Description Sends the conversation to the tutor model and returns its reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Conversation so far"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	if _, err := userIDFromContext(c); err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.Chat(c.Context(), req.Messages)
	if err != nil {
		logger.Get().Error("Failed to generate chat reply",
			zap.Error(err),
			zap.Int("message_count", len(req.Messages)),
		)
		return err
	}

	return c.JSON(resp)
}
