package domain

import "context"

// GameRepository defines the interface for game persistence
type GameRepository interface {
	// SaveGame persists a new game together with its questions.
	SaveGame(ctx context.Context, game *Game) error

	// GetGameByID retrieves a game and its questions. Returns nil when absent.
	GetGameByID(ctx context.Context, id string) (*Game, error)

	// SetGameEnded records the end time of a game.
	SetGameEnded(ctx context.Context, id string) (*Game, error)
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// GetQuestionByID retrieves a question by its ID. Returns nil when absent.
	GetQuestionByID(ctx context.Context, id string) (*Question, error)

	// SaveGrade stores the submitted answer and its grade in one update.
	SaveGrade(ctx context.Context, question *Question) error
}
