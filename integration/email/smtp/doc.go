// Package smtp sends email.SendEmailParams through an SMTP server, over
// implicit TLS, STARTTLS or a plain connection (local relays and tests).
//
//	sender, err := smtp.New(smtp.Config{
//		Host:         "smtp.example.com",
//		Port:         587,
//		Username:     "mailer",
//		Password:     os.Getenv("SMTP_PASSWORD"),
//		SenderEmail:  "no-reply@example.com",
//		SupportEmail: "support@example.com",
//	})
package smtp
