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

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var modelQuestion models.Question
	err := a.db.GetContext(ctx, &modelQuestion, `SELECT
		id, game_id, question, answer, options, question_type,
		user_answer, is_correct, percentage_correct, created_at, updated_at
	FROM questions WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

// SaveGrade implements domain.QuestionRepository. The submitted answer
// and its grade are written together in a single update.
func (a *QuestionDatabaseAdapter) SaveGrade(ctx context.Context, question *domain.Question) error {
	if question == nil || question.ID == "" {
		return fmt.Errorf("cannot save grade without a question ID")
	}

	question.UpdatedAt = time.Now()
	res, err := a.db.ExecContext(ctx, `UPDATE questions SET
		user_answer = $1,
		is_correct = $2,
		percentage_correct = $3,
		updated_at = $4
	WHERE id = $5`,
		util.StringPtrToNullString(question.UserAnswer),
		util.BoolPtrToNullBool(question.IsCorrect),
		util.IntPtrToNullInt64(question.PercentageCorrect),
		question.UpdatedAt,
		question.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save grade for question %s: %w", question.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("no question updated for ID %s", question.ID)
	}
	return nil
}
