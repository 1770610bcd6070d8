package services

import (
	"fmt"
	"time"

	"github.com/monitorly-dev/monitorly/internal/models"
	"github.com/monitorly-dev/monitorly/internal/types"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers alert emails over SMTP.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(host string, port int, username, password, from string) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *EmailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}

func (d *Dispatcher) sendEmailAlert(cfg types.EmailConfig, monitor models.Monitor, user *models.User, transition, errorDetail string) error {
	if d.email == nil {
		return fmt.Errorf("email transport not configured")
	}

	var subject string
	if transition == types.TransitionDown {
		subject = fmt.Sprintf("🚨 %s is DOWN", monitor.Name)
	} else {
		subject = fmt.Sprintf("✅ %s is back UP", monitor.Name)
	}

	errorLine := ""
	if transition == types.TransitionDown && errorDetail != "" {
		errorLine = fmt.Sprintf("<p><strong>Error:</strong> %s</p>", errorDetail)
	}

	greeting := ""
	if user != nil && user.Name != "" {
		greeting = fmt.Sprintf("<p>Hi %s,</p>", user.Name)
	}

	html := fmt.Sprintf(`
    <h2>%s</h2>
    %s<p><strong>Monitor:</strong> %s</p>
    <p><strong>URL:</strong> %s</p>
    <p><strong>Status:</strong> %s</p>
    %s<p><strong>Time:</strong> %s</p>
    <hr>
    <p>Powered by Monitorly</p>
  `, subject, greeting, monitor.Name, monitor.URL, statusWord(transition), errorLine, d.now().UTC().Format(time.RFC3339))

	return d.email.Send(cfg.Email, subject, html)
}

func statusWord(transition string) string {
	if transition == types.TransitionDown {
		return types.StatusDown
	}
	return types.StatusUp
}
