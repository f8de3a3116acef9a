package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/morphergyx/inquiry-api/internal/config"
	"go.uber.org/zap"
)

// EmailSender delivers a single email. Implementations can be swapped
// (SendGrid, SES, SMTP, log) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is an email ready to be sent
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Sender identifies the From header of outgoing mail
type Sender struct {
	Name  string
	Email string
}

// Address formats the sender as "Name <email>"
func (s Sender) Address() string {
	if s.Name == "" {
		return s.Email
	}
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}

// NewSender builds the transport selected by email.provider
func NewSender(ctx context.Context, cfg *config.EmailConfig, logger *zap.Logger) (EmailSender, error) {
	from := Sender{Name: cfg.FromName, Email: cfg.FromEmail}

	switch strings.ToLower(cfg.Provider) {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("email.sendGridAPIKey is required for the sendgrid provider")
		}
		return NewSendGridSender(cfg.SendGridAPIKey, from, logger), nil
	case "ses":
		return NewSESSenderFromRegion(ctx, cfg.SESRegion, from, logger)
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("email.smtpHost is required for the smtp provider")
		}
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}, from, logger), nil
	case "log", "":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

// LogSender logs emails instead of sending them
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("email not sent (log provider)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

var _ EmailSender = (*LogSender)(nil)
