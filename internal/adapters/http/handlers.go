package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/adapters/http/perf"
	"symptowise/internal/domain/contact"
	"symptowise/internal/domain/content"
	"symptowise/internal/domain/symptom"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal_error",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"error", err.Error(),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 64<<10))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

// writeJSONError writes {"error": msg}.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sessionID returns the visitor session attached by the Sessions middleware.
func sessionID(r *http.Request) string {
	id, _ := middleware.SessionIDFromContext(r.Context())
	return id
}

// page is the data every template receives. View holds the page-specific projection.
type page struct {
	Title  string
	Active string // nav key of the current page
	Site   content.Site
	Flash  *contact.Notification
	Year   int
	View   any
}

var icons = map[string]string{
	"brain":       "🧠",
	"clock":       "🕒",
	"mail":        "✉",
	"map-pin":     "📍",
	"phone":       "📞",
	"shield":      "🛡",
	"stethoscope": "🩺",
	"users":       "👥",
}

// renderTemplate executes layout.html plus the named page into a buffer and
// writes it with status. The visitor's pending notification is consumed once the page renders.
func renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName string, p page) {
	p.Site = app.Site
	p.Year = timeNow().Year()
	id := sessionID(r)
	if id != "" && sessions != nil {
		if n, ok := sessions.TakeFlash(id); ok {
			p.Flash = &n
		}
	}
	// An unrendered flash goes back so the next page can show it.
	failed := func(err error) {
		if p.Flash != nil {
			sessions.Update(id, func(s *middleware.Session) {
				if s.Flash == nil {
					s.Flash = p.Flash
				}
			})
		}
		internalError(w, r, err)
	}

	funcMap := template.FuncMap{
		"csrfToken":      func() string { return csrf.Token(r) },
		"csrfFieldName":  func() string { return "gorilla.csrf.Token" },
		"renderMarkdown": renderMarkdown,
		"tone":           func(s symptom.Severity) string { return s.Tone() },
		"icon": func(name string) string {
			if g, ok := icons[name]; ok {
				return g
			}
			return "•"
		},
		"navClass": func(key string) string {
			if key == p.Active {
				return "nav-link active"
			}
			return "nav-link"
		},
	}

	start := time.Now()
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		failed(err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, p); err != nil {
		failed(err)
		return
	}
	if perfCollector != nil {
		perfCollector.Record(perf.Entry{
			Kind:       perf.KindRender,
			Name:       templateName,
			DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
			Timestamp:  start,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderMarkdown converts trusted site copy to HTML.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// symptomsURL is the checker page, keeping the current search term.
func symptomsURL(q string) string {
	if q == "" {
		return "/symptoms"
	}
	return "/symptoms?" + url.Values{"q": {q}}.Encode()
}

// handleNotFound renders the 404 page for unknown paths.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	renderTemplate(w, r, http.StatusNotFound, "404.html", page{Title: "Page not found"})
}

// handleHealthz reports liveness.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handlePerf returns the perf snapshot as JSON.
// ?window= is a Go duration (default 15m); ?top= caps the slowest lists (default 10).
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "perf collection disabled")
		return
	}
	window := 15 * time.Minute
	if v := r.URL.Query().Get("window"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeJSONError(w, http.StatusBadRequest, "window must be a positive duration")
			return
		}
		window = d
	}
	top := 10
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSONError(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		top = n
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-window), top))
}
