package web

import (
	"errors"
	"net/http"

	"symptowise/internal/application/orchestrators"
	"symptowise/internal/application/projections"
	"symptowise/internal/domain/analysis"
)

// renderSymptoms renders the checker page, optionally with a rejection message.
func renderSymptoms(w http.ResponseWriter, r *http.Request, status int, search, errMsg string) {
	view, err := projections.QueryGetSymptomChecker(r.Context(), projections.GetSymptomCheckerQuery{
		SessionID: sessionID(r),
		Search:    search,
	}, projections.GetSymptomCheckerDeps{
		Catalog:  app.Catalog,
		Sessions: sessions,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}
	view.Error = errMsg
	renderTemplate(w, r, status, "symptoms.html", page{
		Title:  "Symptom Checker",
		Active: "symptoms",
		View:   view,
	})
}

// handleSymptomsPage handles GET /symptoms?q=
func handleSymptomsPage(w http.ResponseWriter, r *http.Request) {
	renderSymptoms(w, r, http.StatusOK, r.URL.Query().Get("q"), "")
}

func selectDeps() orchestrators.SelectSymptomDeps {
	return orchestrators.SelectSymptomDeps{Catalog: app.Catalog, Sessions: sessions}
}

// handleSymptomAdd handles POST /symptoms/add
// The visitor's session starts here if they have none yet.
func handleSymptomAdd(w http.ResponseWriter, r *http.Request) {
	q := r.PostFormValue("q")
	symptomID := r.PostFormValue("id")
	if _, ok := app.Catalog.Lookup(symptomID); !ok {
		renderSymptoms(w, r, http.StatusBadRequest, q, "That symptom is not in our list.")
		return
	}
	r, id := sessions.Ensure(w, r)
	err := orchestrators.ExecuteAddSymptom(r.Context(), orchestrators.SelectSymptomCommand{
		SessionID: id,
		SymptomID: symptomID,
	}, selectDeps())
	switch {
	case err == nil, errors.Is(err, orchestrators.ErrSessionExpired):
		http.Redirect(w, r, symptomsURL(q), http.StatusSeeOther)
	case errors.Is(err, analysis.ErrUnknownSymptom):
		renderSymptoms(w, r, http.StatusBadRequest, q, "That symptom is not in our list.")
	default:
		internalError(w, r, err)
	}
}

// handleSymptomRemove handles POST /symptoms/remove
func handleSymptomRemove(w http.ResponseWriter, r *http.Request) {
	q := r.PostFormValue("q")
	err := orchestrators.ExecuteRemoveSymptom(r.Context(), orchestrators.SelectSymptomCommand{
		SessionID: sessionID(r),
		SymptomID: r.PostFormValue("id"),
	}, selectDeps())
	if err != nil && !errors.Is(err, orchestrators.ErrSessionExpired) {
		internalError(w, r, err)
		return
	}
	http.Redirect(w, r, symptomsURL(q), http.StatusSeeOther)
}

// handleSymptomAnalyze handles POST /symptoms/analyze
func handleSymptomAnalyze(w http.ResponseWriter, r *http.Request) {
	q := r.PostFormValue("q")
	_, err := orchestrators.ExecuteAnalyzeSymptoms(r.Context(), orchestrators.AnalyzeSymptomsCommand{
		SessionID: sessionID(r),
	}, orchestrators.AnalyzeSymptomsDeps{
		Analyzer: app.Analyzer,
		Sessions: sessions,
	})
	switch {
	case err == nil:
		http.Redirect(w, r, symptomsURL(q)+"#results", http.StatusSeeOther)
	case errors.Is(err, analysis.ErrEmptySelection), errors.Is(err, orchestrators.ErrSessionExpired):
		renderSymptoms(w, r, http.StatusBadRequest, q, analysis.ErrEmptySelection.Error())
	default:
		internalError(w, r, err)
	}
}
