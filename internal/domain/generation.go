package domain

import (
	"context"
	"strings"
)

const (
	// MinQuestionAmount and MaxQuestionAmount bound one generation request.
	MinQuestionAmount = 1
	MaxQuestionAmount = 10
)

// GenerationRequest is the immutable input of one generation run.
type GenerationRequest struct {
	Topic  string
	Amount int
	Type   GameType
}

// Validate validates the generation request
func (r GenerationRequest) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(r.Topic) == "" {
		errs = append(errs, NewMissingFieldError("topic"))
	}
	if r.Amount < MinQuestionAmount || r.Amount > MaxQuestionAmount {
		errs = append(errs, NewOutOfRangeError("amount", r.Amount, MinQuestionAmount, MaxQuestionAmount))
	}
	if !r.Type.IsValid() {
		errs = append(errs, NewInvalidValueError("type", string(r.Type), "mcq|open_ended"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CandidateQuestion is a question produced by one generation attempt.
// It is either accepted into the result set or discarded as a duplicate.
type CandidateQuestion struct {
	Question string
	Answer   string
	Options  []string // present only for mcq
}

// NormalizeText lowers and trims question or answer text for comparison.
// Pure function; normalizing twice yields the same string.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsQuestion reports whether the candidate duplicates any accepted
// question, comparing normalized question text. O(len(existing)).
func ContainsQuestion(existing []CandidateQuestion, candidate CandidateQuestion) bool {
	normalized := NormalizeText(candidate.Question)
	for _, q := range existing {
		if NormalizeText(q.Question) == normalized {
			return true
		}
	}
	return false
}

// QuestionGenerator is the port for the batch generation loop.
type QuestionGenerator interface {
	// GenerateQuestions runs one generation request to completion. For mcq
	// requests the result holds exactly Amount unique questions or the call
	// fails with GENERATION_EXHAUSTED; no partial result is returned.
	GenerateQuestions(ctx context.Context, req GenerationRequest) ([]CandidateQuestion, error)
}
