package orchestrators

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"golang.org/x/crypto/blake2b"

	emailAdapter "symptowise/internal/adapters/email"
	"symptowise/internal/domain/contact"
)

// DefaultContactDelay is the simulated processing time of a contact submission.
const DefaultContactDelay = 1500 * time.Millisecond

// ErrRelayUnavailable means the message passed validation but could not be forwarded.
var ErrRelayUnavailable = errors.New("contact relay unavailable")

// SubmitContactCommand carries the form as the visitor entered it.
type SubmitContactCommand struct {
	Form contact.Form
}

// SubmitContactDeps are the external dependencies for this orchestrator.
type SubmitContactDeps struct {
	Sender       emailAdapter.Sender // nil or empty SupportInbox disables the relay
	SupportInbox string
	From         string
	Notifier     Notifier
	Delay        time.Duration
	Sleep        func(time.Duration) // defaults to time.Sleep
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSubmitContact validates the form, waits the simulated delay, relays the
// message when configured and shows the sent notification.
// PRE: deps.Notifier, GenerateID and Now are set
// POST: on success the visitor is notified once; validation errors return before any delay
// INVARIANT: the visitor's e-mail address is only logged as a fingerprint
func ExecuteSubmitContact(ctx context.Context, cmd SubmitContactCommand, deps SubmitContactDeps) (contact.Submission, error) {
	form := cmd.Form.Normalize()
	if err := form.Validate(); err != nil {
		return contact.Submission{}, fmt.Errorf("validation: %w", err)
	}

	sleep := deps.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	// Not cancelled by client disconnect.
	sleep(deps.Delay)

	sub := contact.Submission{
		ID:          deps.GenerateID(),
		Form:        form,
		SubmittedAt: deps.Now().UTC(),
	}

	if deps.Sender != nil && deps.SupportInbox != "" {
		msg, err := buildContactEmail(sub, deps.SupportInbox, deps.From)
		if err != nil {
			return contact.Submission{}, fmt.Errorf("build relay message: %w", err)
		}
		if _, err := deps.Sender.Send(ctx, msg); err != nil {
			slog.Error("contact_relay_failed", "submission_id", sub.ID, "error", err.Error())
			return contact.Submission{}, fmt.Errorf("%w: %v", ErrRelayUnavailable, err)
		}
	}

	slog.Info("contact_submitted",
		"submission_id", sub.ID,
		"urgency", string(form.Urgency),
		"sender", EmailFingerprint(form.Email),
	)
	deps.Notifier.Display(ctx, contact.SentNotification.Title, contact.SentNotification.Description)
	return sub, nil
}

// EmailFingerprint returns a short stable BLAKE2b digest of an address for logs.
func EmailFingerprint(addr string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(addr))))
	return hex.EncodeToString(sum[:8])
}

// buildContactEmail renders the support-inbox copy of a submission.
// The visitor's message is treated as markdown; raw HTML in it is dropped.
func buildContactEmail(sub contact.Submission, inbox, from string) (emailAdapter.Message, error) {
	f := sub.Form

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(f.Message), &body); err != nil {
		return emailAdapter.Message{}, err
	}

	header := fmt.Sprintf("From: %s <%s>\nUrgency: %s\nSubmitted: %s\nReference: %s\n",
		f.Name, f.Email, f.Urgency.Label(), sub.SubmittedAt.Format(time.RFC3339), sub.ID)

	var b strings.Builder
	b.WriteString("<p>")
	b.WriteString(strings.ReplaceAll(html.EscapeString(header), "\n", "<br>"))
	b.WriteString("</p><hr>")
	b.Write(body.Bytes())

	return emailAdapter.Message{
		To:      []string{inbox},
		From:    from,
		ReplyTo: f.Email,
		Subject: fmt.Sprintf("[%s] %s", f.Urgency.Label(), f.Subject),
		HTML:    b.String(),
		Text:    header + "\n" + f.Message,
		Tags:    map[string]string{"category": "contact", "urgency": string(f.Urgency)},
		Ref:     sub.ID,
	}, nil
}
