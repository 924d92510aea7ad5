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

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// sqlxUserRepository implements UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.db.ExecContext(ctx, `INSERT INTO users (
		id, google_id, email, name, profile_picture_url, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID,
		user.GoogleID,
		user.Email,
		user.Name,
		util.StringToNullString(user.ProfilePictureURL),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByGoogleID fetches a user by their Google account ID.
// Returns nil when no such user exists.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var m models.User
	err := r.db.GetContext(ctx, &m, `SELECT
		id, google_id, email, name, profile_picture_url, created_at, updated_at
	FROM users WHERE google_id = $1`, googleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google_id: %w", err)
	}
	return toDomainUser(&m), nil
}

// GetUserByID fetches a user by ID. Returns nil when no such user exists.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	err := r.db.GetContext(ctx, &m, `SELECT
		id, google_id, email, name, profile_picture_url, created_at, updated_at
	FROM users WHERE id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", userID, err)
	}
	return toDomainUser(&m), nil
}

// UpdateUser updates the mutable profile fields of a user.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return fmt.Errorf("cannot update user with empty ID")
	}
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `UPDATE users SET
		email = $1, name = $2, profile_picture_url = $3, updated_at = $4
	WHERE id = $5`,
		user.Email,
		user.Name,
		util.StringToNullString(user.ProfilePictureURL),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}
