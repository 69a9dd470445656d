package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

const (
	TagVerification    = "verification"
	TagPasswordUpdated = "password_updated"
)

var (
	verificationTmpl = template.Must(template.New("verification").Parse(
		`<p>Welcome!</p><p>Confirm your email address by opening <a href="{{.Link}}">this link</a>.</p>` +
			`<p>The link expires in 24 hours.</p>`))
	passwordUpdatedTmpl = template.Must(template.New("password_updated").Parse(
		`<p>Your password was changed.</p><p>If this was not you, reset it at <a href="{{.Link}}">{{.Link}}</a>.</p>`))
)

// Mailer composes account emails and hands them to a Sender.
type Mailer struct {
	sender  Sender
	baseURL string

	// VerifyPath and ResetPath are joined to the base URL.
	VerifyPath string
	ResetPath  string
}

// NewMailer creates a Mailer. baseURL is the public site address used to
// build links.
func NewMailer(sender Sender, baseURL string) *Mailer {
	if sender == nil {
		panic("email: sender is required")
	}
	return &Mailer{
		sender:     sender,
		baseURL:    strings.TrimRight(baseURL, "/"),
		VerifyPath: "/verify",
		ResetPath:  "/password/reset",
	}
}

// SendVerification mails a link carrying the verification token.
func (m *Mailer) SendVerification(ctx context.Context, to, token string) error {
	if token == "" {
		return fmt.Errorf("%w: verification token is required", ErrInvalidParams)
	}
	link := m.baseURL + m.VerifyPath + "?" + url.Values{"token": {token}}.Encode()
	return m.send(ctx, to, "Confirm your email address", TagVerification, verificationTmpl, link)
}

// SendPasswordUpdated notifies the user that their password changed.
func (m *Mailer) SendPasswordUpdated(ctx context.Context, to string) error {
	return m.send(ctx, to, "Your password was changed", TagPasswordUpdated, passwordUpdatedTmpl, m.baseURL+m.ResetPath)
}

func (m *Mailer) send(ctx context.Context, to, subject, tag string, tmpl *template.Template, link string) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, struct{ Link string }{link}); err != nil {
		return fmt.Errorf("%w: render %s: %w", ErrFailedToSendEmail, tag, err)
	}
	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  subject,
		BodyHTML: body.String(),
		Tag:      tag,
	})
}
