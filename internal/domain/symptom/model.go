package symptom

import (
	"errors"
	"strings"
)

// Severity is the ordinal classification of a symptom or condition.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Tone names the colour family a severity is rendered with.
// The same mapping is used for symptom badges and condition badges.
const (
	ToneHealing     = "healing"
	ToneWarning     = "warning"
	ToneDestructive = "destructive"
	ToneSecondary   = "secondary"
)

// Domain errors.
var (
	ErrEmptyID         = errors.New("symptom id cannot be empty")
	ErrEmptyName       = errors.New("symptom name cannot be empty")
	ErrInvalidSeverity = errors.New("symptom severity must be mild, moderate or severe")
)

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Tone returns the badge colour family for the severity.
// PRE: none
// POST: unknown severities map to ToneSecondary
func (s Severity) Tone() string {
	switch s {
	case SeverityMild:
		return ToneHealing
	case SeverityModerate:
		return ToneWarning
	case SeveritySevere:
		return ToneDestructive
	default:
		return ToneSecondary
	}
}

// Symptom is a named, severity-tagged condition indicator a visitor can select.
// INVARIANT: immutable once the catalog is built.
type Symptom struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
}

// Validate checks the symptom's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (s Symptom) Validate() error {
	if s.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if !s.Severity.Valid() {
		return ErrInvalidSeverity
	}
	return nil
}

// IsSevere reports whether the symptom warrants immediate attention.
func (s Symptom) IsSevere() bool {
	return s.Severity == SeveritySevere
}

// Matches reports whether the symptom name contains term, ignoring case.
// An empty term matches every symptom.
func (s Symptom) Matches(term string) bool {
	return strings.Contains(strings.ToLower(s.Name), strings.ToLower(term))
}
