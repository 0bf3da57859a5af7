package analysis

import (
	"context"

	"symptowise/internal/domain/symptom"
)

// MockAnalyzer returns a fixed set of conditions and recommendations.
// Only SeekImmediate depends on the input. It stands in for a real rule engine
// or inference call behind the Analyzer interface.
type MockAnalyzer struct{}

// NewMockAnalyzer creates a MockAnalyzer.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// Analyze never fails.
// PRE: selected is non-empty (callers check)
// POST: conditions and recommendations are the fixed lists; SeekImmediate is true iff a severe symptom is present
func (MockAnalyzer) Analyze(_ context.Context, selected []symptom.Symptom) (Result, error) {
	return Result{
		PrimaryConditions: []Condition{
			{Name: "Common Cold", Probability: 75, Severity: symptom.SeverityMild},
			{Name: "Viral Infection", Probability: 60, Severity: symptom.SeverityModerate},
			{Name: "Stress/Anxiety", Probability: 45, Severity: symptom.SeverityMild},
		},
		Recommendations: []string{
			"Rest and hydration",
			"Over-the-counter pain relievers",
			"Monitor symptoms for 24-48 hours",
		},
		SeekImmediate: SeekImmediate(selected),
	}, nil
}
