package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// ConsoleMailer writes magic links to the log instead of delivering email.
// Default provider for local development.
type ConsoleMailer struct {
	logger *zap.SugaredLogger
}

func NewConsoleMailer(logger *zap.SugaredLogger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) SendMagicLink(_ context.Context, email, link string) error {
	m.logger.Infow("magic link email",
		"to", email,
		"link", link,
	)
	return nil
}

// SMTPConfig holds connection settings for the SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers magic links over plain-auth SMTP.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *zap.SugaredLogger
}

func NewSMTPMailer(cfg SMTPConfig, logger *zap.SugaredLogger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) SendMagicLink(_ context.Context, email, link string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your ShelterLink sign-in link\r\n\r\nSign in to ShelterLink:\r\n\r\n%s\r\n\r\nThis link expires in one hour.\r\n",
		m.cfg.From, email, link,
	)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(msg)); err != nil {
		m.logger.Errorw("magic link delivery failed", "to", email, "error", err)
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}
