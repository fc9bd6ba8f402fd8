// File: /services/email_service.go
package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"carservice-api/config"
)

// ReminderMailer delivers the email rendition of a reminder.
type ReminderMailer interface {
	SendReminderEmail(ctx context.Context, to string, msg ReminderMessage) error
}

type EmailService struct {
	config *config.Config
	send   func(m ...*gomail.Message) error
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		send:   dialer.DialAndSend,
	}
}

// NewEmailServiceWithSender delivers through s instead of dialing SMTP.
func NewEmailServiceWithSender(cfg *config.Config, s gomail.Sender) *EmailService {
	return &EmailService{
		config: cfg,
		send: func(m ...*gomail.Message) error {
			return gomail.Send(s, m...)
		},
	}
}

func (es *EmailService) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}

// SendReminderEmail sends a due-service reminder as plain text with an HTML
// alternative.
func (es *EmailService) SendReminderEmail(ctx context.Context, to string, msg ReminderMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := es.newMessage(to, msg.Subject)
	m.SetBody("text/plain", reminderText(msg))
	m.AddAlternative("text/html", reminderHTML(msg))

	if err := es.send(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	log.WithFields(log.Fields{
		"to":          to,
		"reminder_id": msg.Payload.ReminderID,
	}).Info("Reminder email sent")
	return nil
}

func reminderText(msg ReminderMessage) string {
	var b strings.Builder
	b.WriteString(msg.Greeting + "\n\n")
	for _, line := range msg.Lines {
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\n%s: %s\n\n", msg.ActionText, msg.ActionURL))
	b.WriteString(msg.Closing + "\n\n")
	b.WriteString("CarService\nThis is an automated email, please do not reply.\n")
	return b.String()
}

func reminderHTML(msg ReminderMessage) string {
	var lines strings.Builder
	for _, line := range msg.Lines {
		lines.WriteString(fmt.Sprintf("            <p>%s</p>\n", html.EscapeString(line)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #1f6feb; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
        .btn { display: inline-block; background: #1f6feb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>CarService</h1>
            <p>Service Reminder</p>
        </div>
        <div class="content">
            <h2>%s</h2>
%s
            <p><a class="btn" href="%s">%s</a></p>
            <p>%s</p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`,
		html.EscapeString(msg.Subject),
		html.EscapeString(msg.Greeting),
		lines.String(),
		html.EscapeString(msg.ActionURL),
		html.EscapeString(msg.ActionText),
		html.EscapeString(msg.Closing),
	)
}

// SendWelcomeEmail greets a newly registered user.
func (es *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := es.newMessage(email, "Welcome to CarService!")

	textBody := fmt.Sprintf(`Hello %s!

Your CarService account is ready. Add your cars, log their services and we
will remind you when the next one is due.

Open CarService: %s

The CarService Team
`, name, es.config.FrontendURL)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Welcome to CarService</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>Hello %s!</h2>
    <p>Your CarService account is ready. Add your cars, log their services and we will remind you when the next one is due.</p>
    <p><a href="%s">Open CarService</a></p>
    <p><strong>The CarService Team</strong></p>
</body>
</html>`, html.EscapeString(name), html.EscapeString(es.config.FrontendURL))

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.send(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	log.WithField("to", email).Info("Welcome email sent")
	return nil
}
