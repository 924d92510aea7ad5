package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/config"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/dto"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/middleware"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "test"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// MockQuizService implements service.QuizService for handler tests.
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) GenerateQuestions(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuestionsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenerateQuestionsResponse), args.Error(1)
}

func (m *MockQuizService) CreateGame(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.CreateGameResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateGameResponse), args.Error(1)
}

func (m *MockQuizService) CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CheckAnswerResponse), args.Error(1)
}

func (m *MockQuizService) EndGame(ctx context.Context, userID, gameID string) (*dto.EndGameResponse, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EndGameResponse), args.Error(1)
}

func (m *MockQuizService) GetGameResult(ctx context.Context, userID, gameID string) (*dto.GameResultResponse, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GameResultResponse), args.Error(1)
}

func (m *MockQuizService) HotTopics(ctx context.Context, limit int) (*dto.HotTopicsResponse, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HotTopicsResponse), args.Error(1)
}

// newQuizApp wires the handler behind the error handler with an
// authenticated test user already in the request context.
func newQuizApp(svc *MockQuizService, authenticated bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	if authenticated {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(middleware.UserIDKey, "user-1")
			return c.Next()
		})
	}

	h := NewQuizHandler(svc)
	api := app.Group("/api")
	api.Post("/questions", h.GenerateQuestions)
	api.Post("/game", h.CreateGame)
	api.Get("/game/:gameId", h.GetGameResult)
	api.Post("/checkAnswer", h.CheckAnswer)
	api.Post("/endGame", h.EndGame)
	api.Get("/topics/hot", h.HotTopics)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestCreateGameHandler(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("CreateGame", mock.Anything, "user-1", mock.MatchedBy(func(req *dto.GenerateQuizRequest) bool {
		return req.Topic == "history" && req.Amount == 3 && req.Type == "mcq"
	})).Return(&dto.CreateGameResponse{
		GameID: "g-1", Topic: "history", Type: "mcq",
		Questions: []dto.GameQuestion{{ID: "q-1", Question: "Q1", Options: []string{"a", "b", "c", "d"}}},
	}, nil)

	app := newQuizApp(svc, true)
	status, body := doJSON(t, app, fiber.MethodPost, "/api/game", dto.GenerateQuizRequest{
		Amount: 3, Topic: "history", Type: "mcq",
	})
	assert.Equal(t, fiber.StatusOK, status)

	var resp dto.CreateGameResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "g-1", resp.GameID)
	require.Len(t, resp.Questions, 1)
	svc.AssertExpectations(t)
}

func TestCreateGameHandlerRejectsInvalidBody(t *testing.T) {
	svc := new(MockQuizService)
	app := newQuizApp(svc, true)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/game", dto.GenerateQuizRequest{
		Amount: 0, Topic: "", Type: "essay",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	var resp middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeValidation), resp.Code)
	assert.Len(t, resp.Errors, 3)
	svc.AssertNotCalled(t, "CreateGame", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateGameHandlerRequiresAuth(t *testing.T) {
	svc := new(MockQuizService)
	app := newQuizApp(svc, false)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/game", dto.GenerateQuizRequest{
		Amount: 3, Topic: "history", Type: "mcq",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeUnauthorized), resp.Code)
}

func TestCheckAnswerHandler(t *testing.T) {
	questionID := util.NewULID()
	isCorrect := true

	svc := new(MockQuizService)
	svc.On("CheckAnswer", mock.Anything, mock.MatchedBy(func(req *dto.CheckAnswerRequest) bool {
		return req.QuestionID == questionID && req.UserAnswer == "paris"
	})).Return(&dto.CheckAnswerResponse{IsCorrect: &isCorrect}, nil)

	app := newQuizApp(svc, true)
	status, body := doJSON(t, app, fiber.MethodPost, "/api/checkAnswer", dto.CheckAnswerRequest{
		QuestionID: questionID, UserAnswer: "paris",
	})
	assert.Equal(t, fiber.StatusOK, status)

	var resp dto.CheckAnswerResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.IsCorrect)
	assert.True(t, *resp.IsCorrect)
	assert.Nil(t, resp.PercentageSimilar)
}

func TestCheckAnswerHandlerQuestionNotFound(t *testing.T) {
	questionID := util.NewULID()

	svc := new(MockQuizService)
	svc.On("CheckAnswer", mock.Anything, mock.Anything).
		Return(nil, domain.NewQuestionNotFoundError(questionID))

	app := newQuizApp(svc, true)
	status, body := doJSON(t, app, fiber.MethodPost, "/api/checkAnswer", dto.CheckAnswerRequest{
		QuestionID: questionID, UserAnswer: "paris",
	})
	assert.Equal(t, fiber.StatusNotFound, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeQuestionNotFound), resp.Code)
}

func TestGetGameResultHandler(t *testing.T) {
	gameID := util.NewULID()

	svc := new(MockQuizService)
	svc.On("GetGameResult", mock.Anything, "user-1", gameID).Return(&dto.GameResultResponse{
		GameID: gameID, Topic: "history", Type: "mcq", Accuracy: 50,
	}, nil)

	app := newQuizApp(svc, true)
	status, body := doJSON(t, app, fiber.MethodGet, "/api/game/"+gameID, nil)
	assert.Equal(t, fiber.StatusOK, status)

	var resp dto.GameResultResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, 50.0, resp.Accuracy)
}

func TestGetGameResultHandlerRejectsBadID(t *testing.T) {
	svc := new(MockQuizService)
	app := newQuizApp(svc, true)

	status, _ := doJSON(t, app, fiber.MethodGet, "/api/game/not-a-ulid", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	svc.AssertNotCalled(t, "GetGameResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestEndGameHandler(t *testing.T) {
	gameID := util.NewULID()

	svc := new(MockQuizService)
	svc.On("EndGame", mock.Anything, "user-1", gameID).Return(&dto.EndGameResponse{GameID: gameID}, nil)

	app := newQuizApp(svc, true)
	status, _ := doJSON(t, app, fiber.MethodPost, "/api/endGame", dto.EndGameRequest{GameID: gameID})
	assert.Equal(t, fiber.StatusOK, status)
	svc.AssertExpectations(t)
}

func TestGenerateQuestionsHandlerServiceUnavailable(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("GenerateQuestions", mock.Anything, mock.Anything).
		Return(nil, domain.NewLLMServiceError(nil))

	app := newQuizApp(svc, true)
	status, _ := doJSON(t, app, fiber.MethodPost, "/api/questions", dto.GenerateQuizRequest{
		Amount: 3, Topic: "history", Type: "open_ended",
	})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestHotTopicsHandler(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("HotTopics", mock.Anything, 3).Return(&dto.HotTopicsResponse{
		Topics: []dto.HotTopic{{Topic: "history", Count: 12}},
	}, nil)

	app := newQuizApp(svc, true)
	status, body := doJSON(t, app, fiber.MethodGet, "/api/topics/hot?limit=3", nil)
	assert.Equal(t, fiber.StatusOK, status)

	var resp dto.HotTopicsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Topics, 1)
	assert.Equal(t, "history", resp.Topics[0].Topic)
}

func TestHotTopicsHandlerRejectsBadLimit(t *testing.T) {
	svc := new(MockQuizService)
	app := newQuizApp(svc, true)

	status, _ := doJSON(t, app, fiber.MethodGet, "/api/topics/hot?limit=banana", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	svc.AssertNotCalled(t, "HotTopics", mock.Anything, mock.Anything)
}
