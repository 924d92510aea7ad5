package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userColumns() []string {
	return []string{"id", "google_id", "email", "name", "profile_picture_url", "created_at", "updated_at"}
}

func TestCreateUserAssignsID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &domain.User{
		GoogleID: "google-1",
		Email:    "user@example.com",
		Name:     "User",
	}
	err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByGoogleID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT(.|\n)+FROM users WHERE google_id").
		WithArgs("google-1").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user-1", "google-1", "user@example.com", "User",
				sql.NullString{String: "http://example.com/pic.jpg", Valid: true}, now, now))

	user, err := repo.GetUserByGoogleID(context.Background(), "google-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "http://example.com/pic.jpg", user.ProfilePictureURL)
}

func TestGetUserByGoogleIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	mock.ExpectQuery("SELECT(.|\n)+FROM users WHERE google_id").
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetUserByGoogleID(context.Background(), "unknown")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetUserByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT(.|\n)+FROM users WHERE id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user-1", "google-1", "user@example.com", "User", sql.NullString{}, now, now))

	user, err := repo.GetUserByID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "", user.ProfilePictureURL)
}

func TestUpdateUser(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateUser(context.Background(), &domain.User{
		ID: "user-1", Email: "new@example.com", Name: "New Name",
	})
	assert.NoError(t, err)

	assert.Error(t, repo.UpdateUser(context.Background(), &domain.User{}))
}

func TestToDomainUser(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	m := &models.User{
		ID:                "user-1",
		GoogleID:          "google-1",
		Email:             "user@example.com",
		Name:              "User",
		ProfilePictureURL: sql.NullString{String: "http://example.com/pic.jpg", Valid: true},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	u := toDomainUser(m)
	assert.Equal(t, m.ID, u.ID)
	assert.Equal(t, m.GoogleID, u.GoogleID)
	assert.Equal(t, m.Email, u.Email)
	assert.Equal(t, m.Name, u.Name)
	assert.Equal(t, "http://example.com/pic.jpg", u.ProfilePictureURL)
	assert.True(t, now.Equal(u.CreatedAt))

	m.ProfilePictureURL = sql.NullString{}
	assert.Equal(t, "", toDomainUser(m).ProfilePictureURL)
}
