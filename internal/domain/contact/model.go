package contact

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Urgency classifies a contact message.
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyGeneral   Urgency = "general"
	UrgencyFeedback  Urgency = "feedback"
)

// DefaultUrgency is preselected on a fresh form.
const DefaultUrgency = UrgencyGeneral

// UrgencyOption describes how an urgency is offered on the form.
type UrgencyOption struct {
	Value Urgency
	Label string
	Tone  string // colour family: destructive, warning, healing, primary
}

// UrgencyOptions lists the choices in display order.
var UrgencyOptions = []UrgencyOption{
	{Value: UrgencyEmergency, Label: "Medical Emergency", Tone: "destructive"},
	{Value: UrgencyUrgent, Label: "Urgent Question", Tone: "warning"},
	{Value: UrgencyGeneral, Label: "General Inquiry", Tone: "healing"},
	{Value: UrgencyFeedback, Label: "Feedback", Tone: "primary"},
}

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	for _, o := range UrgencyOptions {
		if o.Value == u {
			return true
		}
	}
	return false
}

// Label returns the display label, or the raw value if unknown.
func (u Urgency) Label() string {
	for _, o := range UrgencyOptions {
		if o.Value == u {
			return o.Label
		}
	}
	return string(u)
}

// Domain errors.
var (
	ErrNameRequired    = errors.New("full name is required")
	ErrEmailRequired   = errors.New("email address is required")
	ErrEmailInvalid    = errors.New("email address is not valid")
	ErrSubjectRequired = errors.New("subject is required")
	ErrMessageRequired = errors.New("message is required")
	ErrInvalidUrgency  = errors.New("urgency must be emergency, urgent, general or feedback")
)

// Form is the visitor-entered contact form state.
type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
	Urgency Urgency
}

// NewForm returns a form with every field at its default.
func NewForm() Form {
	return Form{Urgency: DefaultUrgency}
}

// Normalize trims whitespace and applies the default urgency when none was chosen.
// PRE: none
// POST: returns a copy; the receiver is unchanged
func (f Form) Normalize() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
	if f.Urgency == "" {
		f.Urgency = DefaultUrgency
	}
	return f
}

// Validate checks required fields in form order.
// PRE: f has been normalized
// POST: returns nil if valid, error describing the first violation otherwise
func (f Form) Validate() error {
	if f.Name == "" {
		return ErrNameRequired
	}
	if f.Email == "" {
		return ErrEmailRequired
	}
	if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
		return ErrEmailInvalid
	}
	if f.Subject == "" {
		return ErrSubjectRequired
	}
	if !f.Urgency.Valid() {
		return ErrInvalidUrgency
	}
	if f.Message == "" {
		return ErrMessageRequired
	}
	return nil
}

// Submission is an accepted contact message.
// INVARIANT: Form passed Validate.
type Submission struct {
	ID          string
	Form        Form
	SubmittedAt time.Time
}

// Notification is a transient confirmation shown to the visitor.
type Notification struct {
	Title       string
	Description string
}

// SentNotification is shown after a successful submission.
var SentNotification = Notification{
	Title:       "Message sent successfully!",
	Description: "We'll get back to you within 24 hours.",
}
