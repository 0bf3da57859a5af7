package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/domain/analysis"
	"symptowise/internal/domain/selection"
	"symptowise/internal/domain/symptom"
)

// AnalyzeSymptomsCommand identifies whose selection to analyze.
type AnalyzeSymptomsCommand struct {
	SessionID string
}

// AnalyzeSymptomsDeps holds dependencies for AnalyzeSymptoms.
type AnalyzeSymptomsDeps struct {
	Analyzer analysis.Analyzer
	Sessions SessionStore
}

// ExecuteAnalyzeSymptoms runs the analyzer over the visitor's selection and keeps the result.
// PRE: cmd.SessionID refers to a live session
// POST: the session's latest result is replaced; an empty selection yields ErrEmptySelection
func ExecuteAnalyzeSymptoms(ctx context.Context, cmd AnalyzeSymptomsCommand, deps AnalyzeSymptomsDeps) (analysis.Result, error) {
	sess, ok := deps.Sessions.Get(cmd.SessionID)
	if !ok {
		return analysis.Result{}, ErrSessionExpired
	}

	res, err := analyze(ctx, deps.Analyzer, sess.Selection)
	if err != nil {
		return analysis.Result{}, err
	}

	if !deps.Sessions.Update(cmd.SessionID, func(s *middleware.Session) {
		s.Result = &res
	}) {
		return analysis.Result{}, ErrSessionExpired
	}
	return res, nil
}

// AnalyzeSymptomIDsCommand carries an explicit selection for the JSON API.
type AnalyzeSymptomIDsCommand struct {
	SymptomIDs []string
}

// AnalyzeSymptomIDsDeps holds dependencies for AnalyzeSymptomIDs.
type AnalyzeSymptomIDsDeps struct {
	Catalog  *symptom.Catalog
	Analyzer analysis.Analyzer
}

// ExecuteAnalyzeSymptomIDs resolves ids against the catalog and analyzes them statelessly.
// PRE: none
// POST: repeated ids count once; any unknown id yields ErrUnknownSymptom; none yields ErrEmptySelection
func ExecuteAnalyzeSymptomIDs(ctx context.Context, cmd AnalyzeSymptomIDsCommand, deps AnalyzeSymptomIDsDeps) (analysis.Result, error) {
	var set selection.Set
	for _, id := range cmd.SymptomIDs {
		s, ok := deps.Catalog.Lookup(id)
		if !ok {
			return analysis.Result{}, fmt.Errorf("symptom %q: %w", id, analysis.ErrUnknownSymptom)
		}
		set.Add(s)
	}
	return analyze(ctx, deps.Analyzer, set)
}

func analyze(ctx context.Context, a analysis.Analyzer, set selection.Set) (analysis.Result, error) {
	if set.IsEmpty() {
		return analysis.Result{}, analysis.ErrEmptySelection
	}
	res, err := a.Analyze(ctx, set.Symptoms())
	if err != nil {
		return analysis.Result{}, fmt.Errorf("analyze: %w", err)
	}
	slog.Info("symptoms_analyzed",
		"selected", set.Len(),
		"seek_immediate", res.SeekImmediate,
	)
	return res, nil
}
