package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// User row in the users table.
type User struct {
	ID                string         `db:"id"`
	GoogleID          string         `db:"google_id"`
	Email             string         `db:"email"`
	Name              string         `db:"name"`
	ProfilePictureURL sql.NullString `db:"profile_picture_url"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// Game row in the games table.
type Game struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	Topic       string       `db:"topic"`
	GameType    string       `db:"game_type"`
	TimeStarted time.Time    `db:"time_started"`
	TimeEnded   sql.NullTime `db:"time_ended"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// Question row in the questions table. Grades stay NULL until the user
// submits an answer.
type Question struct {
	ID                string         `db:"id"`
	GameID            string         `db:"game_id"`
	Question          string         `db:"question"`
	Answer            string         `db:"answer"`
	Options           StringSlice    `db:"options"`
	QuestionType      string         `db:"question_type"`
	UserAnswer        sql.NullString `db:"user_answer"`
	IsCorrect         sql.NullBool   `db:"is_correct"`
	PercentageCorrect sql.NullInt64  `db:"percentage_correct"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}
