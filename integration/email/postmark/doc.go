// Package postmark delivers email.SendEmailParams through the Postmark
// transactional API.
//
//	sender, err := postmark.New(postmark.Config{
//		ServerToken:  os.Getenv("POSTMARK_SERVER_TOKEN"),
//		AccountToken: os.Getenv("POSTMARK_ACCOUNT_TOKEN"),
//		SenderEmail:  "noreply@example.com",
//		SupportEmail: "support@example.com",
//	})
//
// Opens and HTML link clicks are tracked; replies go to SupportEmail.
package postmark
