// @title Quizzzy API
// @version 1.0
// @description AI-powered quiz generation and grading API.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/adapter"
	llmadapter "github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/adapter/llm"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/cache"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/config"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/database"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/handler"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/middleware"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/repository"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/service"

	_ "github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM client
	llmModel, err := openai.New(
		openai.WithToken(cfg.LLM.APIKey),
		openai.WithModel(cfg.LLM.Model),
	)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	structuredClient := llmadapter.NewStructuredClient(llmModel, llmadapter.Options{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxAttempts: cfg.LLM.MaxAttempts,
		Timeout:     cfg.LLM.Timeout,
	})

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	gameRepository := repository.NewGameDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	generationService := service.NewGenerationService(structuredClient, service.DefaultGenerationRounds)
	quizService := service.NewQuizService(generationService, gameRepository, questionRepository, cacheAdapter, cfg)
	chatService := service.NewChatService(llmModel, cfg.LLM)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	appLogger.Info("AuthService initialized")

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	chatHandler := handler.NewChatHandler(chatService)
	authHandler := handler.NewAuthHandler(authService, cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	apiGroup.Get("/users/me", middleware.Protected(authService), authHandler.Me)

	// Quiz and game routes
	apiGroup.Get("/topics/hot", quizHandler.HotTopics)
	apiGroup.Post("/questions", middleware.Protected(authService), quizHandler.GenerateQuestions)
	apiGroup.Post("/game", middleware.Protected(authService), quizHandler.CreateGame)
	apiGroup.Get("/game/:gameId", middleware.Protected(authService), quizHandler.GetGameResult)
	apiGroup.Post("/checkAnswer", middleware.Protected(authService), quizHandler.CheckAnswer)
	apiGroup.Post("/endGame", middleware.Protected(authService), quizHandler.EndGame)
	apiGroup.Post("/chat", middleware.Protected(authService), chatHandler.Chat)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
