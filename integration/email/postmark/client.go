package postmark

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/webutils/core/email"
)

// Config is the Postmark sender configuration.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail  string `env:"SENDER_EMAIL"`
	SupportEmail string `env:"SUPPORT_EMAIL"`
	// BaseURL overrides the API endpoint; empty means Postmark's default.
	BaseURL string `env:"POSTMARK_BASE_URL"`
}

func (c Config) validate() error {
	switch {
	case c.ServerToken == "":
		return fmt.Errorf("%w: postmark server token is required", email.ErrInvalidConfig)
	case c.AccountToken == "":
		return fmt.Errorf("%w: postmark account token is required", email.ErrInvalidConfig)
	}
	for name, addr := range map[string]string{"sender": c.SenderEmail, "support": c.SupportEmail} {
		if _, err := mail.ParseAddress(addr); err != nil {
			return fmt.Errorf("%w: %s email %q is invalid", email.ErrInvalidConfig, name, addr)
		}
	}
	return nil
}

// Client implements email.Sender.
type Client struct {
	client *postmark.Client
	config Config
}

// New creates a Postmark sender.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return &Client{client: c, config: cfg}, nil
}

// MustNew is New that panics on invalid configuration.
func MustNew(cfg Config) *Client {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// SendEmail implements email.Sender.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    c.config.SupportEmail,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(email.ErrFailedToSendEmail,
			fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
