package dto

import "time"

// GenerateQuizRequest is the body of POST /api/questions and POST /api/game.
// @Description Quiz generation request
type GenerateQuizRequest struct {
	Amount int    `json:"amount"`
	Topic  string `json:"topic"`
	Type   string `json:"type"` // "mcq" or "open_ended"
}

// GeneratedQuestion is one freshly generated question, answer included.
// Returned by POST /api/questions, which does not persist anything.
type GeneratedQuestion struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options,omitempty"`
}

// GenerateQuestionsResponse wraps the generated set.
type GenerateQuestionsResponse struct {
	Questions []GeneratedQuestion `json:"questions"`
}

// GameQuestion is a question as shown to the player: no correct answer,
// mcq options shuffled together with the answer.
type GameQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// CreateGameResponse is the body returned by POST /api/game.
type CreateGameResponse struct {
	GameID    string         `json:"gameId"`
	Topic     string         `json:"topic"`
	Type      string         `json:"type"`
	Questions []GameQuestion `json:"questions"`
}

// CheckAnswerRequest is the body of POST /api/checkAnswer.
// @Description Answer submission
type CheckAnswerRequest struct {
	QuestionID string `json:"questionId"`
	UserAnswer string `json:"userAnswer"`
}

// CheckAnswerResponse carries exactly one of the two grades: exact-match
// correctness for mcq, similarity percentage for open_ended.
type CheckAnswerResponse struct {
	IsCorrect         *bool `json:"isCorrect,omitempty"`
	PercentageSimilar *int  `json:"percentageSimilar,omitempty"`
}

// EndGameRequest is the body of POST /api/endGame.
type EndGameRequest struct {
	GameID string `json:"gameId"`
}

// EndGameResponse confirms the recorded end time.
type EndGameResponse struct {
	GameID    string    `json:"gameId"`
	TimeEnded time.Time `json:"timeEnded"`
}

// ResultQuestion is one graded question on the statistics page.
type ResultQuestion struct {
	ID                string   `json:"id"`
	Question          string   `json:"question"`
	Answer            string   `json:"answer"`
	Options           []string `json:"options,omitempty"`
	UserAnswer        *string  `json:"userAnswer,omitempty"`
	IsCorrect         *bool    `json:"isCorrect,omitempty"`
	PercentageCorrect *int     `json:"percentageCorrect,omitempty"`
}

// GameResultResponse is the body of GET /api/game/:gameId.
type GameResultResponse struct {
	GameID      string           `json:"gameId"`
	Topic       string           `json:"topic"`
	Type        string           `json:"type"`
	TimeStarted time.Time        `json:"timeStarted"`
	TimeEnded   *time.Time       `json:"timeEnded,omitempty"`
	Accuracy    float64          `json:"accuracy"`
	Questions   []ResultQuestion `json:"questions"`
}

// HotTopic is one entry of GET /api/topics/hot.
type HotTopic struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// HotTopicsResponse wraps the ranked topics.
type HotTopicsResponse struct {
	Topics []HotTopic `json:"topics"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
