package mailer

// Service is the outbound mail transport. Implementations: MailerSend for
// production, SMTP for staging, dev (log-only) for local work.
type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
}
