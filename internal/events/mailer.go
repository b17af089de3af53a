package events

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"
	"strings"
)

type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain-text mail. Without a host it only logs the message.
type SMTPMailer struct {
	config SMTPConfig
	send   smtpSendFunc
	logger *slog.Logger
}

func NewSMTPMailer(config SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		send:   smtp.SendMail,
		logger: logger,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	if m.config.Host == "" {
		m.logger.Warn("SMTP not configured - email not sent",
			"to", strings.Join(to, ","),
			"subject", subject,
			"body", body)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	headers := []string{
		"From: " + m.config.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	addr := m.config.Host + ":" + strconv.Itoa(m.config.Port)
	if err := m.send(addr, auth, m.config.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
