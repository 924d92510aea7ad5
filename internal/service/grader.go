package service

import (
	"math"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// gradeMCQ reports whether the submitted answer matches the stored one,
// comparing trimmed, lower-cased text.
func gradeMCQ(correctAnswer, userAnswer string) bool {
	return domain.NormalizeText(correctAnswer) == domain.NormalizeText(userAnswer)
}

// gradeOpenEnded scores a free-text answer as the Sorensen-Dice bigram
// similarity between the normalized answers, scaled to 0..100 and
// rounded to the nearest integer. Deterministic for identical inputs.
func gradeOpenEnded(correctAnswer, userAnswer string) int {
	similarity := strutil.Similarity(
		domain.NormalizeText(correctAnswer),
		domain.NormalizeText(userAnswer),
		metrics.NewSorensenDice(),
	)
	return int(math.Round(similarity * 100))
}
