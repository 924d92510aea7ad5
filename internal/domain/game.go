package domain

import (
	"strings"
	"time"
)

// GameType distinguishes the two quiz modes.
type GameType string

const (
	GameTypeMCQ       GameType = "mcq"
	GameTypeOpenEnded GameType = "open_ended"
)

// IsValid reports whether the game type is one of the supported modes.
func (t GameType) IsValid() bool {
	return t == GameTypeMCQ || t == GameTypeOpenEnded
}

// Game represents one quiz run by one user on one topic.
type Game struct {
	ID          string
	UserID      string
	Topic       string
	GameType    GameType
	TimeStarted time.Time
	TimeEnded   *time.Time
	Questions   []*Question
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGame creates a new Game instance
func NewGame(userID, topic string, gameType GameType) *Game {
	now := time.Now()
	return &Game{
		UserID:      userID,
		Topic:       topic,
		GameType:    gameType,
		TimeStarted: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates the game
func (g *Game) Validate() error {
	if g.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if strings.TrimSpace(g.Topic) == "" {
		return NewInvalidInputError("topic is required")
	}
	if !g.GameType.IsValid() {
		return NewInvalidInputError("game type must be mcq or open_ended")
	}
	return nil
}

// Question represents a stored question belonging to a game. A question
// row is written once at generation time and mutated exactly once more,
// when the user submits an answer: the submission and its grade land in
// the same update.
type Question struct {
	ID                string
	GameID            string
	Question          string
	Answer            string
	Options           []string // three distractor-bearing options, mcq only
	QuestionType      GameType
	UserAnswer        *string
	IsCorrect         *bool // mcq grade
	PercentageCorrect *int  // open_ended grade, 0..100
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.GameID == "" {
		return NewInvalidInputError("game ID is required")
	}
	if q.Question == "" {
		return NewInvalidInputError("question text is required")
	}
	if q.Answer == "" {
		return NewInvalidInputError("answer is required")
	}
	if q.QuestionType == GameTypeMCQ && len(q.Options) != 3 {
		return NewInvalidInputError("mcq question requires exactly three options")
	}
	return nil
}

// IsAnswered reports whether the user has already submitted an answer.
func (q *Question) IsAnswered() bool {
	return q.UserAnswer != nil
}
