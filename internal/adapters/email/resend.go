package email

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/resend/resend-go/v2"
)

// refHeader carries Message.Ref. Gmail and others use it to keep
// identical subjects from collapsing into one thread.
const refHeader = "X-Entity-Ref-ID"

// ResendSender relays messages through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	now    func() time.Time
}

// NewResendSender creates a ResendSender.
// PRE: apiKey is a Resend API key; from is a verified sender address
// POST: returns a ready-to-use sender; no network call is made
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		now:    time.Now,
	}
}

// Send queues msg with Resend.
// PRE: none
// POST: invalid messages are rejected before any network call; otherwise returns the Resend id
func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	params, err := s.buildParams(msg)
	if err != nil {
		return Receipt{}, err
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Error("resend_send_failed", "ref", msg.Ref, "to_count", len(msg.To), "error", err.Error())
		return Receipt{}, fmt.Errorf("resend: %w", err)
	}

	slog.Info("resend_sent", "ref", msg.Ref, "message_id", sent.Id)
	return Receipt{ID: sent.Id, AcceptedAt: s.now()}, nil
}

func (s *ResendSender) buildParams(msg Message) (*resend.SendEmailRequest, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	from := msg.From
	if from == "" {
		from = s.from
	}
	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}
	if msg.Ref != "" {
		params.Headers = map[string]string{refHeader: msg.Ref}
	}
	if len(msg.Tags) > 0 {
		names := make([]string, 0, len(msg.Tags))
		for name := range msg.Tags {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			params.Tags = append(params.Tags, resend.Tag{Name: name, Value: msg.Tags[name]})
		}
	}
	return params, nil
}
