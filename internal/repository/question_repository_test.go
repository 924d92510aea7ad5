package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQuestionByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	now := time.Now()
	mock.ExpectQuery("SELECT(.|\n)+FROM questions WHERE id").
		WithArgs("q-1").
		WillReturnRows(sqlmock.NewRows(questionColumns()).
			AddRow("q-1", "g-1", "Capital of France?", "Paris", `["London","Berlin","Madrid"]`, "mcq",
				sql.NullString{}, sql.NullBool{}, sql.NullInt64{}, now, now))

	question, err := repo.GetQuestionByID(context.Background(), "q-1")
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, "Paris", question.Answer)
	assert.Equal(t, domain.GameTypeMCQ, question.QuestionType)
	assert.Equal(t, []string{"London", "Berlin", "Madrid"}, question.Options)
	assert.Nil(t, question.UserAnswer)
	assert.Nil(t, question.IsCorrect)
	assert.Nil(t, question.PercentageCorrect)
}

func TestGetQuestionByIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery("SELECT(.|\n)+FROM questions WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	question, err := repo.GetQuestionByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, question)
}

func TestSaveGrade(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	userAnswer := "paris"
	isCorrect := true
	question := &domain.Question{
		ID:           "q-1",
		QuestionType: domain.GameTypeMCQ,
		UserAnswer:   &userAnswer,
		IsCorrect:    &isCorrect,
	}

	mock.ExpectExec("UPDATE questions SET(.|\n)+WHERE id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveGrade(context.Background(), question)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveGradeNoRowUpdated(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	percentage := 73
	question := &domain.Question{
		ID:                "q-gone",
		QuestionType:      domain.GameTypeOpenEnded,
		PercentageCorrect: &percentage,
	}

	mock.ExpectExec("UPDATE questions SET(.|\n)+WHERE id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveGrade(context.Background(), question)
	assert.Error(t, err)
}

func TestSaveGradeRequiresID(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()
	repo := NewQuestionDatabaseAdapter(db)

	assert.Error(t, repo.SaveGrade(context.Background(), nil))
	assert.Error(t, repo.SaveGrade(context.Background(), &domain.Question{}))
}
