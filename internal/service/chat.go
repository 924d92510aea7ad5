package service

import (
	"context"
	"strings"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/config"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/dto"

	"github.com/tmc/langchaingo/llms"
)

const chatSystemPrompt = "You are a friendly and helpful AI tutor for a quiz application. " +
	"Answer questions about quiz topics clearly and concisely, and encourage the learner."

// ChatService is the tutor chat pass-through: conversation in, reply out,
// no retry loop and no output schema.
type ChatService interface {
	Chat(ctx context.Context, messages []dto.ChatMessage) (*dto.ChatResponse, error)
}

type chatService struct {
	model llms.Model
	cfg   config.LLMConfig
}

// NewChatService creates a new instance of chatService
func NewChatService(model llms.Model, cfg config.LLMConfig) ChatService {
	return &chatService{model: model, cfg: cfg}
}

// Chat implements ChatService
func (s *chatService) Chat(ctx context.Context, messages []dto.ChatMessage) (*dto.ChatResponse, error) {
	if len(messages) == 0 {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("messages")}
	}

	content := make([]llms.MessageContent, 0, len(messages)+1)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, chatSystemPrompt))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		if strings.EqualFold(m.Role, "assistant") {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	callOpts := []llms.CallOption{}
	if s.cfg.Model != "" {
		callOpts = append(callOpts, llms.WithModel(s.cfg.Model))
	}

	resp, err := s.model.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewLLMServiceError(nil)
	}

	return &dto.ChatResponse{Reply: strings.TrimSpace(resp.Choices[0].Content)}, nil
}
