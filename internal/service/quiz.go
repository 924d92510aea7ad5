package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/cache"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/config"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/dto"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateQuestions runs one generation request without persisting
	// anything; answers are included in the response.
	GenerateQuestions(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuestionsResponse, error)

	// CreateGame generates questions, persists the game and returns the
	// playable view (no correct answers revealed).
	CreateGame(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.CreateGameResponse, error)

	// CheckAnswer grades one submitted answer and persists the result.
	CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error)

	// EndGame records the game's end time.
	EndGame(ctx context.Context, userID, gameID string) (*dto.EndGameResponse, error)

	// GetGameResult returns the graded questions and aggregate accuracy.
	GetGameResult(ctx context.Context, userID, gameID string) (*dto.GameResultResponse, error)

	// HotTopics returns the most-played topics, highest count first.
	HotTopics(ctx context.Context, limit int) (*dto.HotTopicsResponse, error)
}

// quizService implements QuizService
type quizService struct {
	generator    domain.QuestionGenerator
	gameRepo     domain.GameRepository
	questionRepo domain.QuestionRepository
	cache        domain.Cache
	cfg          *config.Config
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	generator domain.QuestionGenerator,
	gameRepo domain.GameRepository,
	questionRepo domain.QuestionRepository,
	cacheAdapter domain.Cache,
	cfg *config.Config,
) QuizService {
	return &quizService{
		generator:    generator,
		gameRepo:     gameRepo,
		questionRepo: questionRepo,
		cache:        cacheAdapter,
		cfg:          cfg,
	}
}

func toGenerationRequest(req *dto.GenerateQuizRequest) domain.GenerationRequest {
	return domain.GenerationRequest{
		Topic:  strings.TrimSpace(req.Topic),
		Amount: req.Amount,
		Type:   domain.GameType(req.Type),
	}
}

// GenerateQuestions implements QuizService
func (s *quizService) GenerateQuestions(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuestionsResponse, error) {
	candidates, err := s.generator.GenerateQuestions(ctx, toGenerationRequest(req))
	if err != nil {
		return nil, err
	}

	questions := make([]dto.GeneratedQuestion, 0, len(candidates))
	for _, c := range candidates {
		questions = append(questions, dto.GeneratedQuestion{
			Question: c.Question,
			Answer:   c.Answer,
			Options:  c.Options,
		})
	}
	return &dto.GenerateQuestionsResponse{Questions: questions}, nil
}

// CreateGame implements QuizService
func (s *quizService) CreateGame(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.CreateGameResponse, error) {
	genReq := toGenerationRequest(req)
	candidates, err := s.generator.GenerateQuestions(ctx, genReq)
	if err != nil {
		return nil, err
	}

	game := domain.NewGame(userID, genReq.Topic, genReq.Type)
	if err := game.Validate(); err != nil {
		return nil, err
	}
	for _, c := range candidates {
		game.Questions = append(game.Questions, &domain.Question{
			Question:     c.Question,
			Answer:       c.Answer,
			Options:      c.Options,
			QuestionType: genReq.Type,
		})
	}

	if err := s.gameRepo.SaveGame(ctx, game); err != nil {
		return nil, domain.NewInternalError("Failed to save game", err)
	}

	s.bumpTopicCount(ctx, genReq.Topic)

	resp := &dto.CreateGameResponse{
		GameID:    game.ID,
		Topic:     game.Topic,
		Type:      string(game.GameType),
		Questions: make([]dto.GameQuestion, 0, len(game.Questions)),
	}
	for _, q := range game.Questions {
		resp.Questions = append(resp.Questions, dto.GameQuestion{
			ID:       q.ID,
			Question: q.Question,
			Options:  shuffledChoices(q),
		})
	}
	return resp, nil
}

// bumpTopicCount feeds the hot-topics ranking; failures are logged and
// never fail the request.
func (s *quizService) bumpTopicCount(ctx context.Context, topic string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.IncrementScore(ctx, cache.HotTopicsKey, domain.NormalizeText(topic), 1); err != nil {
		logger.Get().Warn("Failed to increment topic count",
			zap.String("topic", topic),
			zap.Error(err))
	}
}

// shuffledChoices mixes the correct answer into the distractor options
// for mcq play. Open-ended questions have no options.
func shuffledChoices(q *domain.Question) []string {
	if q.QuestionType != domain.GameTypeMCQ {
		return nil
	}
	choices := make([]string, 0, len(q.Options)+1)
	choices = append(choices, q.Answer)
	choices = append(choices, q.Options...)
	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// CheckAnswer implements QuizService
func (s *quizService) CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
	if strings.TrimSpace(req.UserAnswer) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("userAnswer")}
	}

	question, err := s.questionRepo.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(req.QuestionID)
	}

	userAnswer := req.UserAnswer
	question.UserAnswer = &userAnswer

	resp := &dto.CheckAnswerResponse{}
	switch question.QuestionType {
	case domain.GameTypeMCQ:
		isCorrect := gradeMCQ(question.Answer, userAnswer)
		question.IsCorrect = &isCorrect
		resp.IsCorrect = &isCorrect
	case domain.GameTypeOpenEnded:
		percentage := gradeOpenEnded(question.Answer, userAnswer)
		question.PercentageCorrect = &percentage
		resp.PercentageSimilar = &percentage
	default:
		return nil, domain.NewInternalError("Unknown question type: "+string(question.QuestionType), nil)
	}

	if err := s.questionRepo.SaveGrade(ctx, question); err != nil {
		return nil, domain.NewInternalError("Failed to save grade", err)
	}
	return resp, nil
}

// EndGame implements QuizService
func (s *quizService) EndGame(ctx context.Context, userID, gameID string) (*dto.EndGameResponse, error) {
	game, err := s.gameRepo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get game", err)
	}
	if game == nil || game.UserID != userID {
		return nil, domain.NewGameNotFoundError(gameID)
	}

	game, err = s.gameRepo.SetGameEnded(ctx, gameID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to end game", err)
	}
	if game == nil || game.TimeEnded == nil {
		return nil, domain.NewInternalError("Game end time was not recorded", nil)
	}
	return &dto.EndGameResponse{GameID: game.ID, TimeEnded: *game.TimeEnded}, nil
}

// GetGameResult implements QuizService
func (s *quizService) GetGameResult(ctx context.Context, userID, gameID string) (*dto.GameResultResponse, error) {
	// The key is scoped to the owner so a cache hit never leaks another
	// user's game.
	cacheKey := cache.GenerateCacheKey("quiz", "game_result", gameID, userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.GameResultResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				logger.Get().Debug("Game result cache hit", zap.String("gameID", gameID))
				return &resp, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Game result cache read failed", zap.Error(err), zap.String("gameID", gameID))
		}
	}

	game, err := s.gameRepo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get game", err)
	}
	if game == nil || game.UserID != userID {
		return nil, domain.NewGameNotFoundError(gameID)
	}

	resp := buildGameResult(game)

	// Only a finished game is safe to cache: its grades can no longer change.
	if s.cache != nil && game.TimeEnded != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.cfg.CacheTTLs.GameResult); err != nil {
				logger.Get().Warn("Game result cache write failed", zap.Error(err), zap.String("gameID", gameID))
			}
		}
	}

	return resp, nil
}

func buildGameResult(game *domain.Game) *dto.GameResultResponse {
	resp := &dto.GameResultResponse{
		GameID:      game.ID,
		Topic:       game.Topic,
		Type:        string(game.GameType),
		TimeStarted: game.TimeStarted,
		TimeEnded:   game.TimeEnded,
		Questions:   make([]dto.ResultQuestion, 0, len(game.Questions)),
	}

	var graded, sum int
	for _, q := range game.Questions {
		resp.Questions = append(resp.Questions, dto.ResultQuestion{
			ID:                q.ID,
			Question:          q.Question,
			Answer:            q.Answer,
			Options:           q.Options,
			UserAnswer:        q.UserAnswer,
			IsCorrect:         q.IsCorrect,
			PercentageCorrect: q.PercentageCorrect,
		})

		switch game.GameType {
		case domain.GameTypeMCQ:
			if q.IsCorrect != nil {
				graded++
				if *q.IsCorrect {
					sum += 100
				}
			}
		case domain.GameTypeOpenEnded:
			if q.PercentageCorrect != nil {
				graded++
				sum += *q.PercentageCorrect
			}
		}
	}
	if graded > 0 {
		resp.Accuracy = float64(sum) / float64(graded)
	}
	return resp
}

// HotTopics implements QuizService
func (s *quizService) HotTopics(ctx context.Context, limit int) (*dto.HotTopicsResponse, error) {
	if limit <= 0 {
		limit = 5
	}
	if s.cache == nil {
		return &dto.HotTopicsResponse{Topics: []dto.HotTopic{}}, nil
	}

	members, err := s.cache.TopMembers(ctx, cache.HotTopicsKey, int64(limit))
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		return nil, domain.NewInternalError("Failed to get hot topics", err)
	}

	topics := make([]dto.HotTopic, 0, len(members))
	for _, m := range members {
		topics = append(topics, dto.HotTopic{Topic: m.Member, Count: int(m.Score)})
	}
	return &dto.HotTopicsResponse{Topics: topics}, nil
}
