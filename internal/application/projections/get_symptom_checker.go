package projections

import (
	"context"

	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/domain/analysis"
	"symptowise/internal/domain/symptom"
)

// Headings of the available-symptoms list.
const (
	HeadingCommon  = "Common Symptoms:"
	HeadingResults = "Search Results:"
)

// SessionReader reads visitor state.
type SessionReader interface {
	Get(id string) (middleware.Session, bool)
}

// GetSymptomCheckerQuery carries query parameters.
type GetSymptomCheckerQuery struct {
	SessionID string
	Search    string
}

// GetSymptomCheckerDeps holds dependencies for GetSymptomChecker.
type GetSymptomCheckerDeps struct {
	Catalog  *symptom.Catalog
	Sessions SessionReader
}

// SymptomBadge is a symptom as rendered in the selected and available lists.
type SymptomBadge struct {
	ID       string
	Name     string
	Severity symptom.Severity
	Tone     string
}

// ConditionRow is one line of the result's possible conditions.
type ConditionRow struct {
	Name        string
	Probability int
	Severity    symptom.Severity
	Tone        string
}

// ResultView is the presentable analysis result.
type ResultView struct {
	SeekImmediate   bool
	Conditions      []ConditionRow
	Recommendations []string
}

// SymptomCheckerView carries everything the symptom checker page renders.
type SymptomCheckerView struct {
	Search     string
	Heading    string
	Selected   []SymptomBadge
	Available  []SymptomBadge
	CanAnalyze bool
	Result     *ResultView // nil until the visitor has analyzed
	Error      string      // set by the caller when an action was rejected
}

// QueryGetSymptomChecker builds the symptom checker view for a visitor.
// PRE: deps.Catalog is set
// POST: Available never contains a selected id; an unknown session renders as empty
// INVARIANT: Available follows catalog order, Selected follows selection order
func QueryGetSymptomChecker(_ context.Context, query GetSymptomCheckerQuery, deps GetSymptomCheckerDeps) (SymptomCheckerView, error) {
	sess, _ := deps.Sessions.Get(query.SessionID)
	selected := sess.Selection.Symptoms()

	view := SymptomCheckerView{
		Search:     query.Search,
		Heading:    HeadingCommon,
		Selected:   badges(selected),
		Available:  badges(symptom.Filter(deps.Catalog, query.Search, selected)),
		CanAnalyze: len(selected) > 0,
	}
	if query.Search != "" {
		view.Heading = HeadingResults
	}
	if sess.Result != nil {
		view.Result = PresentResult(*sess.Result)
	}
	return view, nil
}

// PresentResult maps an analysis result onto display rows with severity tones.
func PresentResult(res analysis.Result) *ResultView {
	rows := make([]ConditionRow, 0, len(res.PrimaryConditions))
	for _, c := range res.PrimaryConditions {
		rows = append(rows, ConditionRow{
			Name:        c.Name,
			Probability: c.Probability,
			Severity:    c.Severity,
			Tone:        c.Severity.Tone(),
		})
	}
	return &ResultView{
		SeekImmediate:   res.SeekImmediate,
		Conditions:      rows,
		Recommendations: append([]string(nil), res.Recommendations...),
	}
}

func badges(ss []symptom.Symptom) []SymptomBadge {
	out := make([]SymptomBadge, 0, len(ss))
	for _, s := range ss {
		out = append(out, SymptomBadge{ID: s.ID, Name: s.Name, Severity: s.Severity, Tone: s.Severity.Tone()})
	}
	return out
}
