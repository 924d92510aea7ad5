package validation

import (
	"regexp"
	"strings"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
)

// ULID is 26 characters long, Crockford's Base32.
var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the quiz generation request body.
func (v *Validator) ValidateGenerateQuizRequest(topic string, amount int, gameType string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if len(topic) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("topic", len(topic), 1, 200))
	}

	if amount < domain.MinQuestionAmount || amount > domain.MaxQuestionAmount {
		errors = append(errors, domain.NewOutOfRangeError("amount", amount, domain.MinQuestionAmount, domain.MaxQuestionAmount))
	}

	if !domain.GameType(gameType).IsValid() {
		errors = append(errors, domain.NewInvalidValueError("type", gameType, "mcq|open_ended"))
	}

	return errors
}

// ValidateCheckAnswerRequest validates the answer submission body.
func (v *Validator) ValidateCheckAnswerRequest(questionID, userAnswer string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("questionId"))
	} else if !isValidULID(questionID) {
		errors = append(errors, domain.NewInvalidFormatError("questionId", questionID))
	}

	if strings.TrimSpace(userAnswer) == "" {
		errors = append(errors, domain.NewMissingFieldError("userAnswer"))
	} else if len(userAnswer) > 2000 {
		errors = append(errors, domain.NewOutOfRangeError("userAnswer", len(userAnswer), 1, 2000))
	}

	return errors
}

// ValidateGameID validates a game identifier from path or body.
func (v *Validator) ValidateGameID(gameID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(gameID) == "" {
		errors = append(errors, domain.NewMissingFieldError("gameId"))
	} else if !isValidULID(gameID) {
		errors = append(errors, domain.NewInvalidFormatError("gameId", gameID))
	}

	return errors
}

func isValidULID(s string) bool {
	return len(s) == 26 && validULID.MatchString(s)
}
