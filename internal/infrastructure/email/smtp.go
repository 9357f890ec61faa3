package email

import (
	"context"
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/consultkit/consultkit/internal/shared/config"
)

// QuotaReached describes a tool whose period quota a user just used up.
type QuotaReached struct {
	To       string
	Name     string
	ToolName string
	Limit    int
	ResetsAt time.Time
}

type SMTPEmailService struct {
	fromAddress string
	fromName    string
	baseURL     string
	dialer      *gomail.Dialer
}

func NewSMTPEmailService(cfg config.EmailConfig, baseURL string) *SMTPEmailService {
	return &SMTPEmailService{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		baseURL:     baseURL,
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
	}
}

func (s *SMTPEmailService) SendQuotaReached(ctx context.Context, q QuotaReached) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(s.quotaMessage(q))
}

func (s *SMTPEmailService) quotaMessage(q QuotaReached) *gomail.Message {
	usageURL := s.baseURL + "/api/usage"
	resets := q.ResetsAt.UTC().Format("January 2, 2006")
	subject := fmt.Sprintf("You've used all your %s runs", q.ToolName)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hi %s,</h2>
			<p>You have used all %d runs of <strong>%s</strong> included in your plan for this period.</p>
			<p>Your quota resets on %s.</p>
			<p><a href="%s">View your usage</a></p>
		</body>
		</html>
	`, html.EscapeString(q.Name), q.Limit, html.EscapeString(q.ToolName), resets, usageURL)

	plainBody := fmt.Sprintf(`
Hi %s,

You have used all %d runs of %s included in your plan for this period.
Your quota resets on %s.

View your usage: %s
	`, q.Name, q.Limit, q.ToolName, resets, usageURL)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", q.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}

func (s *SMTPEmailService) send(m *gomail.Message) error {
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopEmailService is used when SMTP is not configured.
type NoopEmailService struct{}

func (NoopEmailService) SendQuotaReached(context.Context, QuotaReached) error { return nil }
