package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/domain/analysis"
	"symptowise/internal/domain/symptom"
)

// SelectSymptomCommand names the symptom to add to or remove from a visitor's selection.
type SelectSymptomCommand struct {
	SessionID string
	SymptomID string
}

// SelectSymptomDeps holds dependencies for the selection orchestrators.
type SelectSymptomDeps struct {
	Catalog  *symptom.Catalog
	Sessions SessionStore
}

// ExecuteAddSymptom appends a catalog symptom to the visitor's selection.
// PRE: cmd.SessionID refers to a live session
// POST: the symptom is in the selection exactly once; adding it again is a no-op
func ExecuteAddSymptom(ctx context.Context, cmd SelectSymptomCommand, deps SelectSymptomDeps) error {
	s, ok := deps.Catalog.Lookup(cmd.SymptomID)
	if !ok {
		return fmt.Errorf("add symptom %q: %w", cmd.SymptomID, analysis.ErrUnknownSymptom)
	}

	added := false
	if !deps.Sessions.Update(cmd.SessionID, func(sess *middleware.Session) {
		added = sess.Selection.Add(s)
	}) {
		return ErrSessionExpired
	}

	if added {
		slog.Debug("symptom_added", "symptom_id", s.ID)
	}
	return nil
}

// ExecuteRemoveSymptom drops a symptom from the visitor's selection.
// PRE: cmd.SessionID refers to a live session
// POST: the id is absent from the selection; removing an absent id is a no-op
func ExecuteRemoveSymptom(ctx context.Context, cmd SelectSymptomCommand, deps SelectSymptomDeps) error {
	removed := false
	if !deps.Sessions.Update(cmd.SessionID, func(sess *middleware.Session) {
		removed = sess.Selection.Remove(cmd.SymptomID)
	}) {
		return ErrSessionExpired
	}

	if removed {
		slog.Debug("symptom_removed", "symptom_id", cmd.SymptomID)
	}
	return nil
}
