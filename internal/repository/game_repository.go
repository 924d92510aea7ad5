package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/repository/models"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/util"

	"github.com/jmoiron/sqlx"
)

// GameDatabaseAdapter implements domain.GameRepository using sqlx.DB
type GameDatabaseAdapter struct {
	db *sqlx.DB
}

// NewGameDatabaseAdapter creates a new instance of GameDatabaseAdapter
func NewGameDatabaseAdapter(db *sqlx.DB) domain.GameRepository {
	return &GameDatabaseAdapter{db: db}
}

// SaveGame implements domain.GameRepository. The game row and all of its
// question rows go in one transaction.
func (a *GameDatabaseAdapter) SaveGame(ctx context.Context, game *domain.Game) error {
	if game == nil {
		return fmt.Errorf("cannot save nil game")
	}

	now := time.Now()
	if game.ID == "" {
		game.ID = util.NewULID()
	}
	game.CreatedAt = now
	game.UpdatedAt = now

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO games (
		id, user_id, topic, game_type, time_started, time_ended, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		game.ID,
		game.UserID,
		game.Topic,
		string(game.GameType),
		game.TimeStarted,
		util.TimeToNullTime(timeOrZero(game.TimeEnded)),
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	for _, q := range game.Questions {
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.GameID = game.ID
		q.CreatedAt = now
		q.UpdatedAt = now

		_, err = tx.ExecContext(ctx, `INSERT INTO questions (
			id, game_id, question, answer, options, question_type,
			user_answer, is_correct, percentage_correct, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			q.ID,
			q.GameID,
			q.Question,
			q.Answer,
			models.StringSlice(q.Options),
			string(q.QuestionType),
			util.StringPtrToNullString(q.UserAnswer),
			util.BoolPtrToNullBool(q.IsCorrect),
			util.IntPtrToNullInt64(q.PercentageCorrect),
			q.CreatedAt,
			q.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save question for game %s: %w", game.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game save: %w", err)
	}
	return nil
}

// GetGameByID implements domain.GameRepository
func (a *GameDatabaseAdapter) GetGameByID(ctx context.Context, id string) (*domain.Game, error) {
	var modelGame models.Game
	err := a.db.GetContext(ctx, &modelGame, `SELECT
		id, user_id, topic, game_type, time_started, time_ended, created_at, updated_at
	FROM games WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game by ID %s: %w", id, err)
	}

	var modelQuestions []models.Question
	err = a.db.SelectContext(ctx, &modelQuestions, `SELECT
		id, game_id, question, answer, options, question_type,
		user_answer, is_correct, percentage_correct, created_at, updated_at
	FROM questions WHERE game_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for game %s: %w", id, err)
	}

	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, toDomainQuestion(&modelQuestions[i]))
	}

	return toDomainGame(&modelGame, questions), nil
}

// SetGameEnded implements domain.GameRepository
func (a *GameDatabaseAdapter) SetGameEnded(ctx context.Context, id string) (*domain.Game, error) {
	now := time.Now()
	res, err := a.db.ExecContext(ctx,
		`UPDATE games SET time_ended = $1, updated_at = $2 WHERE id = $3 AND time_ended IS NULL`,
		now, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to end game %s: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		// Either absent or already ended; let the caller distinguish.
		return a.GetGameByID(ctx, id)
	}
	return a.GetGameByID(ctx, id)
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
