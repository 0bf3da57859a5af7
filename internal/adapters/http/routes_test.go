package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	contentAdapter "symptowise/internal/adapters/content"
	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/adapters/http/perf"
)

// newTestMux builds the full middleware chain around the routes.
func newTestMux(t *testing.T, production bool) http.Handler {
	t.Helper()
	h, _ := newTestMuxWithStore(t, production)
	return h
}

// newTestMuxWithStore is newTestMux exposing the visitor session store.
func newTestMuxWithStore(t *testing.T, production bool) (http.Handler, *middleware.SessionStore) {
	t.Helper()
	site, err := contentAdapter.Load()
	if err != nil {
		t.Fatalf("load site copy: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	prevRate, prevSecure := RateLimitPerSecond, middleware.SecureCookies
	RateLimitPerSecond = 1000
	t.Cleanup(func() {
		cancel()
		RateLimitPerSecond = prevRate
		middleware.SecureCookies = prevSecure
	})
	store := middleware.NewSessionStore(time.Hour)
	return NewMux(ctx, Deps{
		Site:       site,
		Sessions:   store,
		CSRFKey:    make([]byte, 32),
		Production: production,
	}, perf.NewCollector(100)), store
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestRoutes_Pages tests that every page renders through the full chain.
func TestRoutes_Pages(t *testing.T) {
	h := newTestMux(t, false)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "Check Your Symptoms"},
		{"/symptoms", http.StatusOK, "AI Symptom Checker"},
		{"/symptoms?q=chest", http.StatusOK, "Chest Pain"},
		{"/about", http.StatusOK, "Dr. Sarah Johnson"},
		{"/contact", http.StatusOK, "1-800-SYMPTO-1"},
		{"/does-not-exist", http.StatusNotFound, "Page not found"},
		{"/healthz", http.StatusOK, "ok"},
		{"/static/site.css", http.StatusOK, "--healing"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
		})
	}
}

// TestRoutes_BrowsingCreatesNoSession tests that cookie-less page views, assets
// and unknown paths leave the session store empty, and that headers are still set.
func TestRoutes_BrowsingCreatesNoSession(t *testing.T) {
	h, store := newTestMuxWithStore(t, false)

	for _, path := range []string{"/", "/symptoms", "/about", "/contact", "/favicon.ico", "/wp-login.php"} {
		rec := serve(h, httptest.NewRequest("GET", path, nil))
		for _, c := range rec.Result().Cookies() {
			if c.Name == "symptowise_session" {
				t.Errorf("GET %s set a session cookie", path)
			}
		}
		if rec.Header().Get("Content-Security-Policy") == "" {
			t.Errorf("GET %s missing Content-Security-Policy", path)
		}
		if rec.Header().Get(middleware.RequestIDHeader) == "" {
			t.Errorf("GET %s missing request id header", path)
		}
	}
	if store.Len() != 0 {
		t.Errorf("store has %d sessions after browsing, want 0", store.Len())
	}
}

// TestRoutes_FormPostRequiresCSRF tests that form posts without a token are rejected.
func TestRoutes_FormPostRequiresCSRF(t *testing.T) {
	h := newTestMux(t, false)
	for _, path := range []string{"/symptoms/add", "/symptoms/analyze", "/contact"} {
		req := httptest.NewRequest("POST", path, strings.NewReader(url.Values{"id": {"1"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if rec := serve(h, req); rec.Code != http.StatusForbidden {
			t.Errorf("POST %s status = %d, want 403", path, rec.Code)
		}
	}
}

// TestRoutes_JSONAPI tests that the JSON API bypasses CSRF and sessions.
func TestRoutes_JSONAPI(t *testing.T) {
	h := newTestMux(t, false)

	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"symptomIds":["8"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. Body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"seekImmediate":true`) {
		t.Errorf("body = %s, want seekImmediate true", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("API response should not set a session cookie")
	}

	rec = serve(h, httptest.NewRequest("GET", "/api/symptoms?q=fever", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name":"Fever"`) {
		t.Errorf("GET /api/symptoms = %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(h, httptest.NewRequest("GET", "/api/nothing", nil))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("unknown API path = %d %s, want JSON 404", rec.Code, rec.Body.String())
	}
}

// TestRoutes_DebugPerfHiddenInProduction tests that /debug/perf is development-only.
func TestRoutes_DebugPerfHiddenInProduction(t *testing.T) {
	if rec := serve(newTestMux(t, false), httptest.NewRequest("GET", "/debug/perf", nil)); rec.Code != http.StatusOK {
		t.Errorf("development status = %d, want 200", rec.Code)
	}
	if rec := serve(newTestMux(t, true), httptest.NewRequest("GET", "/debug/perf", nil)); rec.Code != http.StatusNotFound {
		t.Errorf("production status = %d, want 404", rec.Code)
	}
}

// TestRoutes_WrongMethod tests that an unsupported method falls through to the 404 page.
func TestRoutes_WrongMethod(t *testing.T) {
	h := newTestMux(t, false)
	req := httptest.NewRequest("DELETE", "/about", nil)
	if rec := serve(h, req); rec.Code == http.StatusOK {
		t.Errorf("DELETE /about status = 200, want an error status")
	}
}

// TestParseCSRFKey tests key decoding and the production requirement.
func TestParseCSRFKey(t *testing.T) {
	good := strings.Repeat("ab", 32)
	if key, err := ParseCSRFKey(good, true); err != nil || len(key) != 32 {
		t.Errorf("ParseCSRFKey(valid) = %d bytes, %v", len(key), err)
	}
	if _, err := ParseCSRFKey("abcd", false); err == nil {
		t.Error("short key accepted")
	}
	if _, err := ParseCSRFKey(strings.Repeat("zz", 32), false); err == nil {
		t.Error("non-hex key accepted")
	}
	if _, err := ParseCSRFKey("", true); err == nil {
		t.Error("missing key accepted in production")
	}
	if key, err := ParseCSRFKey("", false); err != nil || len(key) != 32 {
		t.Errorf("ParseCSRFKey(dev) = %d bytes, %v", len(key), err)
	}
}
