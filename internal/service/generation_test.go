package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/adapter/llm"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/config"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "test"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// stubRequester returns one canned batch per round.
type stubRequester struct {
	rounds  [][]llm.Object
	err     error
	round   int
	prompts [][]string
}

func (s *stubRequester) Request(ctx context.Context, systemPrompt, userPrompt string, schema llm.OutputSchema) (llm.Object, error) {
	objs, err := s.RequestBatch(ctx, systemPrompt, []string{userPrompt}, schema)
	if err != nil {
		return nil, err
	}
	return objs[0], nil
}

func (s *stubRequester) RequestBatch(ctx context.Context, systemPrompt string, userPrompts []string, schema llm.OutputSchema) ([]llm.Object, error) {
	s.prompts = append(s.prompts, userPrompts)
	if s.err != nil {
		return nil, s.err
	}
	if s.round >= len(s.rounds) {
		return nil, errors.New("stub exhausted")
	}
	batch := s.rounds[s.round]
	s.round++
	if len(batch) != len(userPrompts) {
		return nil, fmt.Errorf("stub batch size %d does not match %d prompts", len(batch), len(userPrompts))
	}
	return batch, nil
}

func mcqObject(question string) llm.Object {
	return llm.Object{
		"question": question,
		"answer":   "answer of " + question,
		"option1":  "wrong 1",
		"option2":  "wrong 2",
		"option3":  "wrong 3",
	}
}

func TestGenerateOpenEnded(t *testing.T) {
	requester := &stubRequester{rounds: [][]llm.Object{{
		{"question": "Q1", "answer": "A1"},
		{"question": "Q2", "answer": "A2"},
		{"question": "Q1", "answer": "A1"}, // duplicates are kept for open-ended
	}}}
	svc := NewGenerationService(requester, DefaultGenerationRounds)

	questions, err := svc.GenerateQuestions(context.Background(), domain.GenerationRequest{
		Topic: "world war 2", Amount: 3, Type: domain.GameTypeOpenEnded,
	})
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "Q1", questions[0].Question)
	assert.Equal(t, "Q2", questions[1].Question)
	assert.Equal(t, "Q1", questions[2].Question)
	assert.Empty(t, questions[0].Options)

	// One batch of Amount prompts, all naming the topic.
	require.Len(t, requester.prompts, 1)
	require.Len(t, requester.prompts[0], 3)
	assert.Contains(t, requester.prompts[0][0], "world war 2")
}

func TestGenerateMCQSingleRound(t *testing.T) {
	requester := &stubRequester{rounds: [][]llm.Object{{
		mcqObject("Q1"),
		mcqObject("Q2"),
	}}}
	svc := NewGenerationService(requester, DefaultGenerationRounds)

	questions, err := svc.GenerateQuestions(context.Background(), domain.GenerationRequest{
		Topic: "chemistry", Amount: 2, Type: domain.GameTypeMCQ,
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, []string{"wrong 1", "wrong 2", "wrong 3"}, questions[0].Options)
}

func TestGenerateMCQReplacesDuplicates(t *testing.T) {
	requester := &stubRequester{rounds: [][]llm.Object{
		{mcqObject("Q1"), mcqObject("Q2"), mcqObject("  q1  ")}, // round 1: one duplicate
		{mcqObject("Q3"), mcqObject("q2"), mcqObject("Q1")},     // round 2: one fresh question
	}}
	svc := NewGenerationService(requester, DefaultGenerationRounds)

	questions, err := svc.GenerateQuestions(context.Background(), domain.GenerationRequest{
		Topic: "chemistry", Amount: 3, Type: domain.GameTypeMCQ,
	})
	require.NoError(t, err)
	require.Len(t, questions, 3)

	// Acceptance order is preserved across rounds.
	assert.Equal(t, "Q1", questions[0].Question)
	assert.Equal(t, "Q2", questions[1].Question)
	assert.Equal(t, "Q3", questions[2].Question)

	// Every round asks for a full batch of Amount candidates and tells
	// the model which questions were already accepted.
	require.Len(t, requester.prompts, 2)
	assert.Len(t, requester.prompts[0], 3)
	require.Len(t, requester.prompts[1], 3)
	assert.Contains(t, requester.prompts[1][0], "Q1")
	assert.Contains(t, requester.prompts[1][0], "Q2")
}

func TestGenerateMCQExhaustsRounds(t *testing.T) {
	// Every round returns the same question; only one is ever accepted.
	requester := &stubRequester{rounds: [][]llm.Object{
		{mcqObject("Q1"), mcqObject("Q1")},
		{mcqObject("Q1"), mcqObject("q1")},
		{mcqObject("Q1"), mcqObject("Q1")},
	}}
	svc := NewGenerationService(requester, 3)

	questions, err := svc.GenerateQuestions(context.Background(), domain.GenerationRequest{
		Topic: "chemistry", Amount: 2, Type: domain.GameTypeMCQ,
	})
	assert.Nil(t, questions)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeGenerationExhausted, domainErr.Code)

	// Exactly maxRounds rounds were attempted.
	assert.Len(t, requester.prompts, 3)
}

func TestGenerateMCQTruncatesToAmount(t *testing.T) {
	// Round 1 comes up one short; round 2 is all fresh, overshooting the
	// requested amount, and the surplus is trimmed.
	requester := &stubRequester{rounds: [][]llm.Object{
		{mcqObject("Q1"), mcqObject("Q2"), mcqObject("q2")},
		{mcqObject("Q3"), mcqObject("Q4"), mcqObject("Q5")},
	}}
	svc := NewGenerationService(requester, DefaultGenerationRounds)

	questions, err := svc.GenerateQuestions(context.Background(), domain.GenerationRequest{
		Topic: "chemistry", Amount: 3, Type: domain.GameTypeMCQ,
	})
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "Q1", questions[0].Question)
	assert.Equal(t, "Q2", questions[1].Question)
	assert.Equal(t, "Q3", questions[2].Question)
}

func TestGenerateQuestionsValidatesRequest(t *testing.T) {
	svc := NewGenerationService(&stubRequester{}, DefaultGenerationRounds)

	_, err := svc.GenerateQuestions(context.Background(), domain.GenerationRequest{
		Topic: "", Amount: 0, Type: domain.GameType("bogus"),
	})
	require.Error(t, err)

	var errs domain.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func TestGenerateQuestionsPropagatesRequesterError(t *testing.T) {
	requester := &stubRequester{err: domain.NewModelOutputError(3, "invalid JSON")}
	svc := NewGenerationService(requester, DefaultGenerationRounds)

	_, err := svc.GenerateQuestions(context.Background(), domain.GenerationRequest{
		Topic: "chemistry", Amount: 2, Type: domain.GameTypeMCQ,
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeModelOutputError, domainErr.Code)
}
