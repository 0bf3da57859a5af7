package web

import (
	"context"
	"errors"
	"net/http"

	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/application/orchestrators"
	"symptowise/internal/application/projections"
	"symptowise/internal/domain/contact"
)

// relayFailedMessage is shown when a valid message could not be forwarded.
const relayFailedMessage = "We couldn't send your message right now. Please try again shortly or call our Emergency Line."

// sessionNotifier displays notifications as a one-shot flash in the visitor session.
// A visitor without a session gets one here, the first point their state changes.
type sessionNotifier struct {
	store *middleware.SessionStore
	w     http.ResponseWriter
	r     *http.Request
}

// Display implements orchestrators.Notifier.
// PRE: response headers have not been written
// POST: the notification replaces any pending one and is shown on the next page render
func (n sessionNotifier) Display(ctx context.Context, title, description string) {
	id, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		_, id = n.store.Ensure(n.w, n.r)
	}
	n.store.Update(id, func(s *middleware.Session) {
		s.Flash = &contact.Notification{Title: title, Description: description}
	})
}

func isContactValidation(err error) bool {
	for _, target := range []error{
		contact.ErrNameRequired,
		contact.ErrEmailRequired,
		contact.ErrEmailInvalid,
		contact.ErrSubjectRequired,
		contact.ErrMessageRequired,
		contact.ErrInvalidUrgency,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// renderContact renders the Contact page around the given form state.
func renderContact(w http.ResponseWriter, r *http.Request, status int, form contact.Form, errMsg string) {
	renderTemplate(w, r, status, "contact.html", page{
		Title:  "Contact",
		Active: "contact",
		View:   projections.QueryGetContact(app.Site, form, errMsg),
	})
}

// handleContactPage handles GET /contact
func handleContactPage(w http.ResponseWriter, r *http.Request) {
	renderContact(w, r, http.StatusOK, contact.NewForm(), "")
}

// handleContactSubmit handles POST /contact
func handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	form := contact.Form{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
		Urgency: contact.Urgency(r.PostFormValue("urgency")),
	}

	_, err := orchestrators.ExecuteSubmitContact(r.Context(), orchestrators.SubmitContactCommand{Form: form},
		orchestrators.SubmitContactDeps{
			Sender:       app.Sender,
			SupportInbox: app.SupportInbox,
			From:         app.MailFrom,
			Notifier:     sessionNotifier{store: sessions, w: w, r: r},
			Delay:        app.ContactDelay,
			Sleep:        contactSleep,
			GenerateID:   generateID,
			Now:          timeNow,
		})
	switch {
	case err == nil:
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
	case isContactValidation(err):
		renderContact(w, r, http.StatusBadRequest, form, errors.Unwrap(err).Error())
	case errors.Is(err, orchestrators.ErrRelayUnavailable):
		renderContact(w, r, http.StatusServiceUnavailable, form, relayFailedMessage)
	default:
		internalError(w, r, err)
	}
}
