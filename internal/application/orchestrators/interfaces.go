package orchestrators

import (
	"context"
	"errors"

	"symptowise/internal/adapters/http/middleware"
)

// ErrSessionExpired is returned when the visitor session vanished between
// the request arriving and the orchestrator running.
var ErrSessionExpired = errors.New("visitor session expired")

// SessionStore is the visitor state the symptom orchestrators read and mutate.
type SessionStore interface {
	Get(id string) (middleware.Session, bool)
	Update(id string, fn func(*middleware.Session)) bool
}

// Notifier shows a transient confirmation to the visitor behind ctx.
type Notifier interface {
	Display(ctx context.Context, title, description string)
}
