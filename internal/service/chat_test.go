package service

import (
	"context"
	"errors"
	"testing"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/config"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// chatFakeModel replays one canned reply and records the messages it saw.
type chatFakeModel struct {
	reply    string
	err      error
	messages []llms.MessageContent
}

func (f *chatFakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *chatFakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func TestChatReturnsReply(t *testing.T) {
	model := &chatFakeModel{reply: "  Photosynthesis converts light into chemical energy.  "}
	svc := NewChatService(model, config.LLMConfig{})

	resp, err := svc.Chat(context.Background(), []dto.ChatMessage{
		{Role: "user", Content: "Explain photosynthesis"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light into chemical energy.", resp.Reply)

	// System prompt first, then the conversation.
	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
}

func TestChatMapsAssistantRole(t *testing.T) {
	model := &chatFakeModel{reply: "ok"}
	svc := NewChatService(model, config.LLMConfig{})

	_, err := svc.Chat(context.Background(), []dto.ChatMessage{
		{Role: "user", Content: "Hi"},
		{Role: "assistant", Content: "Hello"},
		{Role: "user", Content: "Explain entropy"},
	})
	require.NoError(t, err)

	require.Len(t, model.messages, 4)
	assert.Equal(t, llms.ChatMessageTypeAI, model.messages[2].Role)
}

func TestChatRejectsEmptyConversation(t *testing.T) {
	svc := NewChatService(&chatFakeModel{}, config.LLMConfig{})

	_, err := svc.Chat(context.Background(), nil)
	require.Error(t, err)

	var errs domain.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func TestChatWrapsModelError(t *testing.T) {
	svc := NewChatService(&chatFakeModel{err: errors.New("rate limited")}, config.LLMConfig{})

	_, err := svc.Chat(context.Background(), []dto.ChatMessage{{Role: "user", Content: "Hi"}})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
}
