package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/ChurchSite/models"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailService tells the church office about new website submissions.
type EmailService struct {
	emails emailSender
	from   string
	to     string
}

// NewEmailService returns nil when the Resend key or the inbox address is
// missing; a nil service is treated as not ready.
func NewEmailService(apiKey, from, to string) *EmailService {
	if apiKey == "" || to == "" {
		log.Warn().Msg("RESEND_API_KEY or NOTIFY_EMAIL not set, email notifications disabled")
		return nil
	}
	return &EmailService{
		emails: resend.NewClient(apiKey).Emails,
		from:   from,
		to:     to,
	}
}

func (s *EmailService) IsReady() bool {
	return s != nil && s.emails != nil
}

func (s *EmailService) SendMessageNotification(ctx context.Context, m models.Message) error {
	rows := [][2]string{
		{"Name", m.Name},
		{"Email", m.Email},
		{"Phone", deref(m.Phone)},
		{"Subject", m.Subject},
	}
	return s.send(ctx, m.Email, "New contact message: "+m.Subject, "New contact message", rows, m.Message)
}

func (s *EmailService) SendPrayerRequestNotification(ctx context.Context, p models.PrayerRequest) error {
	subject := "New prayer request from " + p.Name
	if p.IsUrgent {
		subject = "URGENT " + subject
	}
	rows := [][2]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Phone", deref(p.Phone)},
		{"Urgent", yesNo(p.IsUrgent)},
		{"Private", yesNo(p.IsPrivate)},
	}
	return s.send(ctx, p.Email, subject, "New prayer request", rows, p.Message)
}

func (s *EmailService) send(ctx context.Context, replyTo, subject, heading string, rows [][2]string, body string) error {
	if !s.IsReady() {
		return fmt.Errorf("email service not initialized")
	}

	var htmlRows, textRows strings.Builder
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(&htmlRows, "<tr><td><strong>%s</strong></td><td>%s</td></tr>", row[0], html.EscapeString(row[1]))
		fmt.Fprintf(&textRows, "%s: %s\n", row[0], row[1])
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
    <h2>%s</h2>
    <table cellpadding="6">%s</table>
    <p style="white-space: pre-wrap; border-left: 3px solid #8a6d3b; padding-left: 12px;">%s</p>
    <p style="font-size: 12px; color: #666;">Sent from the church website. Reply to this email to answer the sender.</p>
</body>
</html>`, heading, htmlRows.String(), html.EscapeString(body))

	textBody := fmt.Sprintf("%s\n\n%s\n%s\n", heading, textRows.String(), body)

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: replyTo,
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("email_id", sent.Id).Str("subject", subject).Msg("notification email sent")
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
