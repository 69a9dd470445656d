// Package email sends transactional mail through a pluggable Sender.
//
// DevSender writes messages to disk for local development, LogSender only
// logs them, and integration/email/postmark delivers them for real. Mailer
// builds the account emails (verification link, password changed) on top
// of any Sender.
//
//	sender := email.NewDevSender("./dev_emails")
//	mailer := email.NewMailer(sender, "https://example.com")
//	err := mailer.SendVerification(ctx, "alice@example.com", tok)
package email
