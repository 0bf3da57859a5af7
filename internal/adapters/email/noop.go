package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// NoopSender accepts messages without delivering them. Contact submissions
// stay purely simulated when no provider key is configured.
type NoopSender struct {
	now   func() time.Time
	count atomic.Int64
}

// NewNoopSender creates a NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{now: time.Now}
}

// Send validates and logs msg.
// PRE: none
// POST: a valid message gets a receipt with a process-unique noop id
func (s *NoopSender) Send(_ context.Context, msg Message) (Receipt, error) {
	if err := msg.Validate(); err != nil {
		return Receipt{}, err
	}
	n := s.count.Add(1)
	slog.Info("relay_noop", "ref", msg.Ref, "to_count", len(msg.To), "tags", msg.Tags)
	return Receipt{ID: fmt.Sprintf("noop-%d", n), AcceptedAt: s.now()}, nil
}
