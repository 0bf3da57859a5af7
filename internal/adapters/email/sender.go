package email

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Errors returned by Message.Validate.
var (
	ErrNoRecipients = errors.New("email has no recipients")
	ErrNoSubject    = errors.New("email has no subject")
	ErrNoBody       = errors.New("email has neither an HTML nor a text body")
)

// Message is one outbound e-mail, typically a contact submission relayed to the support inbox.
type Message struct {
	To      []string
	From    string // empty uses the sender's default
	ReplyTo string
	Subject string
	HTML    string
	Text    string

	// Tags are provider-side labels for filtering (e.g. urgency=emergency).
	Tags map[string]string
	// Ref is a stable reference (the submission id). Providers put it in a
	// header so mail clients do not thread unrelated submissions together.
	Ref string
}

// Validate checks the fields every provider needs.
// PRE: none
// POST: returns nil if the message can be handed to a provider
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	if strings.TrimSpace(m.Subject) == "" {
		return ErrNoSubject
	}
	if m.HTML == "" && m.Text == "" {
		return ErrNoBody
	}
	return nil
}

// Receipt is the provider's acknowledgement of a queued message.
type Receipt struct {
	ID         string
	AcceptedAt time.Time
}

// Sender delivers messages through an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
