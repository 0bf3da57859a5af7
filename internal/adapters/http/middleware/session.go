package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"symptowise/internal/domain/analysis"
	"symptowise/internal/domain/contact"
	"symptowise/internal/domain/selection"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionIDContextKey contextKey = "session_id"

// DefaultSessionTTL is how long an idle visitor session is kept.
const DefaultSessionTTL = 24 * time.Hour

// Session is one visitor's in-memory state.
// Nothing here is persisted; it is discarded when the session expires.
type Session struct {
	ID        string
	Selection selection.Set
	Result    *analysis.Result      // latest analysis, nil until the visitor analyzes
	Flash     *contact.Notification // one-shot notification for the next page render
	CreatedAt time.Time
	LastSeen  time.Time
}

// clone returns a copy that shares no mutable state with s.
func (s *Session) clone() Session {
	out := *s
	out.Selection = s.Selection.Clone()
	if s.Result != nil {
		r := *s.Result
		r.PrimaryConditions = append([]analysis.Condition(nil), s.Result.PrimaryConditions...)
		r.Recommendations = append([]string(nil), s.Result.Recommendations...)
		out.Result = &r
	}
	if s.Flash != nil {
		f := *s.Flash
		out.Flash = &f
	}
	return out
}

// SessionStore is an in-memory visitor session store.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a new in-memory session store.
// PRE: none
// POST: ttl <= 0 falls back to DefaultSessionTTL
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts an empty session and returns its id.
// PRE: none
// POST: a new session with a random UUID id is stored
func (ss *SessionStore) Create() string {
	id := uuid.NewString()
	now := ss.now()
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[id] = &Session{ID: id, CreatedAt: now, LastSeen: now}
	return id
}

// Get returns a copy of the session and refreshes its idle timer.
// PRE: id is non-empty
// POST: returns false if the session is unknown or expired
func (ss *SessionStore) Get(id string) (Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.live(id)
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// Update applies fn to the live session under the store lock.
// PRE: fn does not retain the pointer
// POST: returns false if the session is unknown or expired
func (ss *SessionStore) Update(id string, fn func(*Session)) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.live(id)
	if !ok {
		return false
	}
	fn(s)
	return true
}

// TakeFlash returns and clears the pending notification.
func (ss *SessionStore) TakeFlash(id string) (contact.Notification, bool) {
	var n contact.Notification
	found := false
	ss.Update(id, func(s *Session) {
		if s.Flash != nil {
			n, found = *s.Flash, true
			s.Flash = nil
		}
	})
	return n, found
}

// Len returns the number of stored sessions, expired or not.
func (ss *SessionStore) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}

// live returns the session if present and not idle past the TTL.
// Caller holds ss.mu.
func (ss *SessionStore) live(id string) (*Session, bool) {
	s, ok := ss.sessions[id]
	if !ok {
		return nil, false
	}
	now := ss.now()
	if now.Sub(s.LastSeen) > ss.ttl {
		delete(ss.sessions, id)
		return nil, false
	}
	s.LastSeen = now
	return s, true
}

// Sweep drops expired sessions.
// PRE: none
// POST: returns how many sessions were removed
func (ss *SessionStore) Sweep() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	now := ss.now()
	removed := 0
	for id, s := range ss.sessions {
		if now.Sub(s.LastSeen) > ss.ttl {
			delete(ss.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps expired sessions every interval until ctx is cancelled.
func (ss *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := ss.Sweep(); n > 0 {
				slog.Debug("sessions_swept", "removed", n)
			}
		}
	}
}

const sessionCookieName = "symptowise_session"

// SecureCookies marks the session cookie Secure. Set in production.
var SecureCookies = false

// Sessions returns middleware that attaches the visitor's existing session to
// page requests. It never creates one: sessions start on the first state change
// (see Ensure), so cookie-less crawlers and probes leave the store untouched.
// Static assets, health checks and the JSON API are stateless and skipped.
func Sessions(store *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isStateless(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				if _, ok := store.Get(cookie.Value); ok {
					r = r.WithContext(ContextWithSessionID(r.Context(), cookie.Value))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Ensure returns r carrying a live session, creating the session and its
// cookie when the visitor has none yet.
// PRE: response headers have not been written
// POST: SessionIDFromContext on the returned request yields a live id
func (ss *SessionStore) Ensure(w http.ResponseWriter, r *http.Request) (*http.Request, string) {
	if id, ok := SessionIDFromContext(r.Context()); ok {
		if _, live := ss.Get(id); live {
			return r, id
		}
	}
	id := ss.Create()
	setSessionCookie(w, id, ss.ttl)
	return r.WithContext(ContextWithSessionID(r.Context(), id)), id
}

func isStateless(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/debug/") ||
		path == "/healthz"
}

// SessionIDFromContext extracts the visitor session id from the request context.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDContextKey).(string)
	return id, ok && id != ""
}

// ContextWithSessionID returns a context carrying the given session id.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey, id)
}

func setSessionCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}
