// Package mail delivers contact form submissions.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/Zachkp/folio/internal/config"
	"go.uber.org/zap"
)

// Message is one contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Sender delivers contact messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks a Sender from the mail configuration.
func New(cfg config.Mail, logger *zap.Logger) (Sender, error) {
	switch cfg.Provider {
	case "log":
		return &LogSender{logger: logger}, nil
	case "smtp":
		if cfg.User == "" || cfg.Pass == "" {
			return nil, fmt.Errorf("SMTP credentials not configured")
		}
		return &SMTPSender{
			host: cfg.Host,
			port: cfg.Port,
			user: cfg.User,
			pass: cfg.Pass,
			to:   cfg.To,
			send: smtp.SendMail,
		}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}

// LogSender logs messages instead of sending them. Used in development.
type LogSender struct {
	logger *zap.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("contact message",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.Int("length", len(msg.Body)),
	)
	return nil
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender relays messages through an authenticated SMTP server.
type SMTPSender struct {
	host string
	port string
	user string
	pass string
	to   string
	send sendFunc
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	if err := s.send(s.host+":"+s.port, auth, s.user, []string{s.to}, compose(s.user, s.to, msg)); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	return nil
}

func compose(from, to string, msg Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", oneLine(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + oneLine(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// oneLine strips CR and LF so user input cannot inject headers.
func oneLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\r' || r == '\n' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
