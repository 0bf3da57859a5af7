package web

import (
	"errors"
	"net/http"
	"strings"

	"symptowise/internal/application/orchestrators"
	"symptowise/internal/application/projections"
	"symptowise/internal/domain/analysis"
	"symptowise/internal/domain/symptom"
)

// symptomListResponse is the body of GET /api/symptoms.
type symptomListResponse struct {
	Heading  string            `json:"heading"`
	Symptoms []symptom.Symptom `json:"symptoms"`
}

// analyzeRequest is the body of POST /api/analyze.
type analyzeRequest struct {
	SymptomIDs []string `json:"symptomIds"`
}

// handleAPISymptoms handles GET /api/symptoms?q=&selected=1,2
func handleAPISymptoms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	var selected []symptom.Symptom
	if raw := r.URL.Query().Get("selected"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			s, ok := app.Catalog.Lookup(id)
			if !ok {
				writeJSONError(w, http.StatusBadRequest, analysis.ErrUnknownSymptom.Error()+": "+id)
				return
			}
			selected = append(selected, s)
		}
	}

	resp := symptomListResponse{
		Heading:  projections.HeadingCommon,
		Symptoms: symptom.Filter(app.Catalog, q, selected),
	}
	if q != "" {
		resp.Heading = projections.HeadingResults
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAPIAnalyze handles POST /api/analyze
func handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := strictDecode(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := orchestrators.ExecuteAnalyzeSymptomIDs(r.Context(),
		orchestrators.AnalyzeSymptomIDsCommand{SymptomIDs: req.SymptomIDs},
		orchestrators.AnalyzeSymptomIDsDeps{Catalog: app.Catalog, Analyzer: app.Analyzer})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, analysis.ErrEmptySelection), errors.Is(err, analysis.ErrUnknownSymptom):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, r, err)
	}
}
