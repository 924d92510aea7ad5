package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Quiz specific errors
	CodeGameNotFound        ErrorCode = "GAME_NOT_FOUND"
	CodeQuestionNotFound    ErrorCode = "QUESTION_NOT_FOUND"
	CodeModelOutputError    ErrorCode = "MODEL_OUTPUT_ERROR"
	CodeGenerationExhausted ErrorCode = "GENERATION_EXHAUSTED"
	CodeLLMServiceError     ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewGameNotFoundError(gameID string) *DomainError {
	return NewError(CodeGameNotFound, fmt.Sprintf("Game not found with ID: %s", gameID), nil)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("Question not found with ID: %s", questionID), nil)
}

// NewModelOutputError reports that the model never produced parseable
// structured output within the attempt budget.
func NewModelOutputError(attempts int, lastReason string) *DomainError {
	return &DomainError{
		Code:    CodeModelOutputError,
		Message: fmt.Sprintf("Failed after %d attempts: %s", attempts, lastReason),
		Context: map[string]interface{}{
			"attempts":    attempts,
			"last_reason": lastReason,
		},
	}
}

// NewGenerationExhaustedError reports that the mcq dedup loop could not
// reach the target count within its round budget. No partial result
// accompanies this error.
func NewGenerationExhaustedError(got, want, rounds int) *DomainError {
	return &DomainError{
		Code:    CodeGenerationExhausted,
		Message: "Failed to generate enough unique questions after multiple attempts",
		Context: map[string]interface{}{
			"accepted": got,
			"target":   want,
			"rounds":   rounds,
		},
	}
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", cause)
}
