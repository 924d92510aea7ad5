package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/adapter/llm"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"

	"go.uber.org/zap"
)

// DefaultGenerationRounds is how many times the mcq loop re-asks the
// model for replacements before giving up on a full unique set.
const DefaultGenerationRounds = 3

const openEndedSystemPrompt = "You are a helpful AI that is able to generate a pair of question and answers, " +
	"the length of each answer should not be more than 15 words, store all the pairs of answers and questions in a JSON array"

const mcqSystemPrompt = "You are a helpful AI that is able to generate mcq questions and answers, " +
	"the length of each answer should not be more than 15 words, store all answers and questions and options in a JSON array"

var openEndedSchema = llm.OutputSchema{
	"question": "question",
	"answer":   "answer with max length of 15 words",
}

var mcqSchema = llm.OutputSchema{
	"question": "question",
	"answer":   "answer with max length of 15 words",
	"option1":  "option1 with max length of 15 words",
	"option2":  "option2 with max length of 15 words",
	"option3":  "option3 with max length of 15 words",
}

// StructuredRequester is the slice of the structured-output client the
// generation loop needs.
type StructuredRequester interface {
	Request(ctx context.Context, systemPrompt, userPrompt string, schema llm.OutputSchema) (llm.Object, error)
	RequestBatch(ctx context.Context, systemPrompt string, userPrompts []string, schema llm.OutputSchema) ([]llm.Object, error)
}

type generationService struct {
	requester StructuredRequester
	maxRounds int
}

// NewGenerationService builds the question generator on top of a
// structured-output requester. maxRounds bounds the mcq dedup loop;
// values below 1 fall back to DefaultGenerationRounds.
func NewGenerationService(requester StructuredRequester, maxRounds int) domain.QuestionGenerator {
	if maxRounds < 1 {
		maxRounds = DefaultGenerationRounds
	}
	return &generationService{
		requester: requester,
		maxRounds: maxRounds,
	}
}

// GenerateQuestions implements domain.QuestionGenerator
func (s *generationService) GenerateQuestions(ctx context.Context, req domain.GenerationRequest) ([]domain.CandidateQuestion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Type {
	case domain.GameTypeOpenEnded:
		return s.generateOpenEnded(ctx, req)
	case domain.GameTypeMCQ:
		return s.generateMCQ(ctx, req)
	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unsupported game type: %s", req.Type))
	}
}

// generateOpenEnded fires Amount independent prompts and keeps every
// reply. Open-ended questions are not deduplicated.
func (s *generationService) generateOpenEnded(ctx context.Context, req domain.GenerationRequest) ([]domain.CandidateQuestion, error) {
	prompts := make([]string, req.Amount)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("You are to generate a random hard open-ended question about %s", req.Topic)
	}

	objects, err := s.requester.RequestBatch(ctx, openEndedSystemPrompt, prompts, openEndedSchema)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.CandidateQuestion, 0, len(objects))
	for _, obj := range objects {
		questions = append(questions, domain.CandidateQuestion{
			Question: obj["question"],
			Answer:   obj["answer"],
		})
	}
	return questions, nil
}

// generateMCQ accumulates unique questions over up to maxRounds rounds.
// Every round asks for a full batch of Amount candidates and tells the
// model which questions were already accepted; the surplus from a lucky
// round is trimmed at the end.
func (s *generationService) generateMCQ(ctx context.Context, req domain.GenerationRequest) ([]domain.CandidateQuestion, error) {
	accepted := make([]domain.CandidateQuestion, 0, req.Amount)

	for round := 0; len(accepted) < req.Amount && round < s.maxRounds; round++ {
		prompts := make([]string, req.Amount)
		for i := range prompts {
			prompts[i] = mcqPrompt(req.Topic, accepted)
		}

		objects, err := s.requester.RequestBatch(ctx, mcqSystemPrompt, prompts, mcqSchema)
		if err != nil {
			return nil, err
		}

		duplicates := 0
		for _, obj := range objects {
			candidate := domain.CandidateQuestion{
				Question: obj["question"],
				Answer:   obj["answer"],
				Options:  []string{obj["option1"], obj["option2"], obj["option3"]},
			}
			if domain.ContainsQuestion(accepted, candidate) {
				duplicates++
				continue
			}
			accepted = append(accepted, candidate)
		}

		if duplicates > 0 {
			logger.Get().Debug("Discarded duplicate mcq candidates",
				zap.Int("round", round+1),
				zap.Int("duplicates", duplicates),
				zap.Int("accepted", len(accepted)))
		}
	}

	if len(accepted) < req.Amount {
		return nil, domain.NewGenerationExhaustedError(len(accepted), req.Amount, s.maxRounds)
	}

	return accepted[:req.Amount], nil
}

// mcqPrompt embeds the already accepted question texts so the model
// avoids repeating them.
func mcqPrompt(topic string, accepted []domain.CandidateQuestion) string {
	if len(accepted) == 0 {
		return fmt.Sprintf("You are to generate a random hard mcq question about %s", topic)
	}

	seen := make([]string, 0, len(accepted))
	for _, q := range accepted {
		seen = append(seen, q.Question)
	}
	return fmt.Sprintf(
		"You are to generate a random hard mcq question about %s. Do not repeat any of these questions: %s",
		topic, strings.Join(seen, "; "),
	)
}
