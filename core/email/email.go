package email

import (
	"context"
	"fmt"
	"net/mail"
)

// Sender delivers one message.
type Sender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams is a single outgoing message.
type SendEmailParams struct {
	SendTo   string
	Subject  string
	BodyHTML string
	// Tag groups messages for analytics, e.g. "verification".
	Tag string
}

// Validate checks the required fields and the recipient address.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidParams)
	}
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: recipient %q: %w", ErrInvalidParams, p.SendTo, err)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}
