package web

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"symptowise/internal/adapters/email"
	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/adapters/http/perf"
	"symptowise/internal/domain/analysis"
	"symptowise/internal/domain/content"
	"symptowise/internal/domain/symptom"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Site     content.Site
	Catalog  *symptom.Catalog
	Analyzer analysis.Analyzer
	Sessions *middleware.SessionStore

	// Contact relay. A nil Sender or empty SupportInbox keeps submissions simulated.
	Sender       email.Sender
	MailFrom     string
	SupportInbox string
	ContactDelay time.Duration

	CSRFKey       []byte // 32 bytes; see ParseCSRFKey
	Production    bool
	SlowRequestMs int
}

// ErrCSRFKey is returned for a malformed or missing CSRF key.
var ErrCSRFKey = errors.New("CSRF key must be 64 hex characters (32 bytes)")

// ParseCSRFKey decodes a hex CSRF secret. An empty value outside production
// yields a random key that does not survive restarts.
// PRE: none
// POST: returns a 32-byte key or ErrCSRFKey
func ParseCSRFKey(keyHex string, production bool) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, ErrCSRFKey
		}
		return key, nil
	}
	if production {
		return nil, errors.New("CSRF key is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	slog.Warn("csrf_key_random", "hint", "form tokens won't survive restart; set SYMPTOWISE_CSRF_KEY")
	return key, nil
}

// Global dependencies (set by NewMux)
var app Deps

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// contactSleep is a variable for testability.
var contactSleep = time.Sleep

// NewMux wires HTTP handlers for the app.
// ctx bounds the rate limiter's background cleanup.
func NewMux(ctx context.Context, d Deps, collector *perf.Collector) http.Handler {
	app = d
	if app.Catalog == nil {
		app.Catalog = symptom.DefaultCatalog()
	}
	if app.Analyzer == nil {
		app.Analyzer = analysis.NewMockAnalyzer()
	}
	if app.Sessions == nil {
		app.Sessions = middleware.NewSessionStore(middleware.DefaultSessionTTL)
	}
	sessions = app.Sessions
	perfCollector = collector
	middleware.SecureCookies = d.Production

	mux := http.NewServeMux()
	registerRoutes(mux, !d.Production)

	limiter := middleware.NewRateLimiter(ctx, RateLimitPerSecond, time.Second)

	// Apply middleware: RequestID -> Recover -> Timing -> RateLimit -> SecurityHeaders -> CSRF -> Sessions -> Mux
	return middleware.Chain(mux,
		middleware.Sessions(sessions),
		middleware.CSRF(d.CSRFKey, d.Production, nil),
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
		middleware.Timing(collector, d.SlowRequestMs),
		middleware.Recover,
		middleware.RequestID,
	)
}
