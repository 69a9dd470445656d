package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/webutils/core/email"
)

// Client implements email.Sender over SMTP. Every message uses its own
// connection.
type Client struct {
	config Config
	auth   smtp.Auth
	now    func() time.Time
}

// New validates cfg and creates a sender.
func New(cfg Config) (*Client, error) {
	if cfg.TLSMode == "" {
		cfg.TLSMode = ModeSTARTTLS
	}
	switch {
	case cfg.Host == "":
		return nil, fmt.Errorf("%w: smtp host is required", email.ErrInvalidConfig)
	case cfg.Port <= 0 || cfg.Port > 65535:
		return nil, fmt.Errorf("%w: smtp port %d is out of range", email.ErrInvalidConfig, cfg.Port)
	case cfg.TLSMode != ModeSTARTTLS && cfg.TLSMode != ModeTLS && cfg.TLSMode != ModePlain:
		return nil, fmt.Errorf("%w: unknown smtp tls mode %q", email.ErrInvalidConfig, cfg.TLSMode)
	}
	for name, addr := range map[string]string{"sender": cfg.SenderEmail, "support": cfg.SupportEmail} {
		if _, err := mail.ParseAddress(addr); err != nil {
			return nil, fmt.Errorf("%w: %s email %q is invalid", email.ErrInvalidConfig, name, addr)
		}
	}

	c := &Client{config: cfg, now: time.Now}
	if cfg.Username != "" {
		c.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return c, nil
}

// SendEmail implements email.Sender. The context deadline bounds the whole
// SMTP exchange.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := c.send(ctx, params); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, params email.SendEmailParams) error {
	addr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsCfg := &tls.Config{ServerName: c.config.Host, MinVersion: tls.VersionTLS12}
	if c.config.TLSMode == ModeTLS {
		tc := tls.Client(conn, tlsCfg)
		if err := tc.HandshakeContext(ctx); err != nil {
			return fmt.Errorf("tls handshake: %w", err)
		}
		conn = tc
	}

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer client.Close()

	if c.config.TLSMode == ModeSTARTTLS {
		if err := client.StartTLS(tlsCfg); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if c.auth != nil {
		if err := client.Auth(c.auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	if err := client.Mail(c.config.SenderEmail); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(params.SendTo); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(c.message(params)); err != nil {
		_ = w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end data: %w", err)
	}
	// the message is accepted at this point
	_ = client.Quit()
	return nil
}

func (c *Client) message(params email.SendEmailParams) []byte {
	headers := [][2]string{
		{"From", c.config.SenderEmail},
		{"To", params.SendTo},
		{"Reply-To", c.config.SupportEmail},
		{"Subject", mime.QEncoding.Encode("utf-8", params.Subject)},
		{"Date", c.now().Format(time.RFC1123Z)},
		{"Message-ID", "<" + uuid.NewString() + "@" + c.config.Host + ">"},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/html; charset="UTF-8"`},
	}
	if params.Tag != "" {
		headers = append(headers, [2]string{"X-Tag", params.Tag})
	}

	var b strings.Builder
	for _, h := range headers {
		b.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(params.BodyHTML)
	return []byte(b.String())
}
