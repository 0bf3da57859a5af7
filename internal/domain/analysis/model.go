package analysis

import (
	"context"
	"errors"

	"symptowise/internal/domain/symptom"
)

// Domain errors.
var (
	ErrEmptySelection = errors.New("select at least one symptom to analyze")
	ErrUnknownSymptom = errors.New("unknown symptom id")
)

// Condition is a candidate condition with its match probability.
type Condition struct {
	Name        string           `json:"name"`
	Probability int              `json:"probability"` // integer percent, 0-100
	Severity    symptom.Severity `json:"severity"`
}

// Result is the outcome of analysing a selection.
type Result struct {
	PrimaryConditions []Condition `json:"primaryConditions"`
	Recommendations   []string    `json:"recommendations"`
	SeekImmediate     bool        `json:"seekImmediate"`
}

// Analyzer turns a selection into a Result.
// Implementations must not be handed an empty selection.
type Analyzer interface {
	Analyze(ctx context.Context, selected []symptom.Symptom) (Result, error)
}

// SeekImmediate reports whether any selected symptom is severe.
func SeekImmediate(selected []symptom.Symptom) bool {
	for _, s := range selected {
		if s.IsSevere() {
			return true
		}
	}
	return false
}
