package web

import "net/http"

// registerRoutes maps every path to its handler.
// debug adds /debug/perf, which must not be reachable in production.
func registerRoutes(mux *http.ServeMux, debug bool) {
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /about", handleAbout)

	mux.HandleFunc("GET /symptoms", handleSymptomsPage)
	mux.HandleFunc("POST /symptoms/add", handleSymptomAdd)
	mux.HandleFunc("POST /symptoms/remove", handleSymptomRemove)
	mux.HandleFunc("POST /symptoms/analyze", handleSymptomAnalyze)

	mux.HandleFunc("GET /contact", handleContactPage)
	mux.HandleFunc("POST /contact", handleContactSubmit)

	mux.HandleFunc("GET /api/symptoms", handleAPISymptoms)
	mux.HandleFunc("POST /api/analyze", handleAPIAnalyze)

	mux.HandleFunc("GET /healthz", handleHealthz)
	if debug {
		mux.HandleFunc("GET /debug/perf", handlePerf)
	}

	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("/", handleNotFound)
}
