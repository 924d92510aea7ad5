package main

import (
	"flag"
	"log"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/config"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/database"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"
)

func main() {
	migrationsPath := flag.String("path", "database/migrations", "path to migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := database.RunMigrations(cfg.GetDSN(), *migrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Get().Info("Migrations applied")
}
