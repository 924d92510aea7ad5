package repository

import (
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/repository/models"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/util"
)

func toDomainGame(m *models.Game, questions []*domain.Question) *domain.Game {
	return &domain.Game{
		ID:          m.ID,
		UserID:      m.UserID,
		Topic:       m.Topic,
		GameType:    domain.GameType(m.GameType),
		TimeStarted: m.TimeStarted,
		TimeEnded:   util.NullTimeToPtr(m.TimeEnded),
		Questions:   questions,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:                m.ID,
		GameID:            m.GameID,
		Question:          m.Question,
		Answer:            m.Answer,
		Options:           m.Options,
		QuestionType:      domain.GameType(m.QuestionType),
		UserAnswer:        util.NullStringToPtr(m.UserAnswer),
		IsCorrect:         util.NullBoolToPtr(m.IsCorrect),
		PercentageCorrect: util.NullInt64ToIntPtr(m.PercentageCorrect),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toDomainUser(m *models.User) *domain.User {
	return &domain.User{
		ID:                m.ID,
		GoogleID:          m.GoogleID,
		Email:             m.Email,
		Name:              m.Name,
		ProfilePictureURL: m.ProfilePictureURL.String,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
